package question_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nclex-prep/backend/internal/question"
)

func validQuestion() question.Question {
	return question.Question{
		ID:       "665f1e9aab3c2d4e5f600001",
		Question: "Which finding should the nurse report first?",
		Options: map[string]string{
			"A": "Option A",
			"B": "Option B",
			"C": "Option C",
			"D": "Option D",
		},
		CorrectAnswer: "C",
		Explanation:   "Because C.",
	}
}

func TestValidate_AcceptsValidQuestion(t *testing.T) {
	q := validQuestion()
	assert.NoError(t, q.Validate())
}

func TestValidate_CorrectAnswerMustBeAnOptionKey(t *testing.T) {
	q := validQuestion()
	q.CorrectAnswer = "E"
	assert.Error(t, q.Validate())
}

func TestValidate_RejectsMissingFields(t *testing.T) {
	q := validQuestion()
	q.Question = ""
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.Options = nil
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.CorrectAnswer = ""
	assert.Error(t, q.Validate())
}

func TestSeed_AllQuestionsValid(t *testing.T) {
	seed := question.Seed()
	require.NotEmpty(t, seed)

	for _, q := range seed {
		assert.NoError(t, q.Validate(), "bundled question %q", q.Question)
		assert.Len(t, q.Options, 4)
	}
}
