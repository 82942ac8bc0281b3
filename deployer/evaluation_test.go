package deployer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify(t *testing.T) {
	var received Notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(srv.Client(), nil)
	dep := Deployment{RepoName: "llm-app-x", RepoURL: "https://github.com/u/x", CommitSHA: "abc123", PagesURL: "https://u.github.io/x"}
	res := n.Notify(context.Background(), srv.URL, "a@example.com", "Calculator", 1, "nonce-1", dep, map[string]any{"title": "Calc"})

	assert.True(t, res.Sent)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "a@example.com", received.Email)
	assert.Equal(t, "llm-app-x", received.Deployment.RepoName)
	assert.True(t, received.Deployment.Success)
	assert.NotEmpty(t, received.Timestamp)
}

func TestNotifyNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	n := NewNotifier(srv.Client(), nil)
	res := n.Notify(context.Background(), srv.URL, "a@example.com", "t", 1, "n", Deployment{}, nil)
	assert.False(t, res.Sent)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, res.Error, "status 400")
}

func TestNotifyUnreachable(t *testing.T) {
	n := NewNotifier(nil, nil)
	res := n.Notify(context.Background(), "http://127.0.0.1:1/evaluate", "a@example.com", "t", 1, "n", Deployment{}, nil)
	assert.False(t, res.Sent)
	assert.NotEmpty(t, res.Error)
}

func TestValidateEvaluationURL(t *testing.T) {
	assert.True(t, ValidateEvaluationURL("https://example.com/evaluate"))
	assert.True(t, ValidateEvaluationURL("http://localhost:8080/evaluate"))
	assert.False(t, ValidateEvaluationURL(""))
	assert.False(t, ValidateEvaluationURL("ftp://example.com"))
	assert.False(t, ValidateEvaluationURL("not a url"))
}

func TestFormatSummary(t *testing.T) {
	dep := Deployment{RepoName: "llm-app-x", CommitSHA: "abcdef012345"}
	out := FormatSummary(dep, map[string]any{"title": "Calc", "description": "demo"})
	assert.Contains(t, out, "llm-app-x")
	assert.Contains(t, out, "abcdef01")
	assert.Contains(t, out, "success")
	assert.Contains(t, out, "Calc")

	failed := FormatSummary(Deployment{}, nil)
	assert.Contains(t, failed, "failed")
}
