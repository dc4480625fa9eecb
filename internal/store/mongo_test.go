package store

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestParseExclude_DropsInvalidEntries(t *testing.T) {
	valid := bson.NewObjectID()

	ids := parseExclude([]string{
		valid.Hex(),
		"not-an-object-id",
		"",
		"  ",
		"12345", // too short
	})

	require.Len(t, ids, 1)
	assert.Equal(t, valid, ids[0])
}

func TestParseExclude_TrimsWhitespace(t *testing.T) {
	valid := bson.NewObjectID()

	ids := parseExclude([]string{" " + valid.Hex() + " "})

	require.Len(t, ids, 1)
	assert.Equal(t, valid, ids[0])
}

func TestNormalize_WireShape(t *testing.T) {
	id := bson.NewObjectID()
	doc := questionDoc{
		ID:            id,
		Question:      "Which lab value indicates warfarin effectiveness?",
		Options:       map[string]string{"A": "aPTT", "B": "INR", "C": "Platelets", "D": "Hemoglobin"},
		CorrectAnswer: "B",
		Explanation:   "INR measures warfarin's effect.",
		Category:      "Pharmacology",
	}

	q := doc.normalize()

	assert.Equal(t, id.Hex(), q.ID)
	assert.Equal(t, doc.Question, q.Question)
	assert.Equal(t, doc.Options, q.Options)
	assert.Equal(t, "B", q.CorrectAnswer)
	assert.Equal(t, "Pharmacology", q.Category)
	// Fields absent in storage stay absent in the output.
	assert.Empty(t, q.Subcategory)
	assert.Empty(t, q.NCLEXCategory)
	assert.NoError(t, q.Validate())
}

func TestNormalize_MalformedFailsValidation(t *testing.T) {
	doc := questionDoc{
		ID:            bson.NewObjectID(),
		Question:      "Incomplete question",
		Options:       map[string]string{"A": "Only option"},
		CorrectAnswer: "B", // not an option key
	}

	assert.Error(t, doc.normalize().Validate())
}

func TestRandomQuestion_FailsFastBeforeConnect(t *testing.T) {
	s := NewMongo("mongodb://localhost:27017", "nclex", "questions", slog.Default())

	_, err := s.RandomQuestion(context.Background(), nil)

	assert.ErrorIs(t, err, ErrUnavailable)
}
