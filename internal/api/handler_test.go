package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nclex-prep/backend/internal/api"
	"github.com/nclex-prep/backend/internal/question"
	"github.com/nclex-prep/backend/internal/store"
)

// memStore samples uniformly from an in-memory population, honoring the
// exclusion contract the way the aggregation pipeline does.
type memStore struct {
	questions []question.Question
	err       error
}

func (m *memStore) RandomQuestion(_ context.Context, exclude []string) (*question.Question, error) {
	if m.err != nil {
		return nil, m.err
	}
	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[strings.TrimSpace(id)] = struct{}{}
	}
	var eligible []question.Question
	for _, q := range m.questions {
		if _, skip := excluded[q.ID]; !skip {
			eligible = append(eligible, q)
		}
	}
	if len(eligible) == 0 {
		return nil, question.ErrExhausted
	}
	q := eligible[rand.Intn(len(eligible))]
	return &q, nil
}

func newTestServer(s store.Store) *httptest.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, api.NewHandler(s, logger))
	return httptest.NewServer(mux)
}

func population(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:            fmt.Sprintf("%024d", i+1),
			Question:      fmt.Sprintf("Question %d", i+1),
			Options:       map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
			CorrectAnswer: "A",
			Explanation:   "Because A.",
		}
	}
	return qs
}

func TestRandomQuestion_ReturnsQuestionJSON(t *testing.T) {
	srv := newTestServer(&memStore{questions: population(3)})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/questions/random")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var q question.Question
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&q))
	assert.NoError(t, q.Validate())
	assert.NotEmpty(t, q.ID)
}

func TestRandomQuestion_NeverReturnsExcludedID(t *testing.T) {
	qs := population(5)
	srv := newTestServer(&memStore{questions: qs})
	defer srv.Close()

	exclude := qs[0].ID + "," + qs[1].ID

	for i := 0; i < 50; i++ {
		resp, err := http.Get(srv.URL + "/questions/random?exclude=" + exclude)
		require.NoError(t, err)

		var q question.Question
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&q))
		resp.Body.Close()

		assert.NotEqual(t, qs[0].ID, q.ID)
		assert.NotEqual(t, qs[1].ID, q.ID)
	}
}

func TestRandomQuestion_ExhaustedIsNoContent(t *testing.T) {
	qs := population(2)
	srv := newTestServer(&memStore{questions: qs})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/questions/random?exclude=" + qs[0].ID + "," + qs[1].ID)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRandomQuestion_EmptyPopulationIsNoContent(t *testing.T) {
	srv := newTestServer(&memStore{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/questions/random")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRandomQuestion_MalformedSampleIsNotFound(t *testing.T) {
	srv := newTestServer(&memStore{err: fmt.Errorf("%w: no options", store.ErrMalformed)})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/questions/random")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestRandomQuestion_StoreFailureIsInternalError(t *testing.T) {
	srv := newTestServer(&memStore{err: store.ErrUnavailable})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/questions/random")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&memStore{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["ok"])
}
