package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nclex-prep/backend/internal/apiclient"
	"github.com/nclex-prep/backend/internal/question"
)

func TestFetchRandomQuestion_DecodesQuestion(t *testing.T) {
	want := question.Question{
		ID:            "665f1e9aab3c2d4e5f600001",
		Question:      "What should the nurse do first?",
		Options:       map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
		CorrectAnswer: "A",
		Explanation:   "Because A.",
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/questions/random", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("exclude"))
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	got, err := apiclient.New(srv.URL).FetchRandomQuestion(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, &want, got)
}

func TestFetchRandomQuestion_SendsExcludeList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "q1,q2,q3", r.URL.Query().Get("exclude"))
		json.NewEncoder(w).Encode(question.Question{
			Question:      "q",
			Options:       map[string]string{"A": "a"},
			CorrectAnswer: "A",
		})
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL).FetchRandomQuestion(context.Background(), []string{"q1", "q2", "q3"})
	require.NoError(t, err)
}

func TestFetchRandomQuestion_NoContentMeansExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	q, err := apiclient.New(srv.URL).FetchRandomQuestion(context.Background(), nil)
	assert.Nil(t, q)
	assert.ErrorIs(t, err, question.ErrExhausted)
}

func TestFetchRandomQuestion_ServerErrorIsNotExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL).FetchRandomQuestion(context.Background(), nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, question.ErrExhausted)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/questions/random", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL + "/").FetchRandomQuestion(context.Background(), nil)
	assert.ErrorIs(t, err, question.ErrExhausted)
}
