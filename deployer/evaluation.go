package deployer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Notifier posts deployment results to evaluation callback URLs.
type Notifier struct {
	client *http.Client
	log    *logrus.Logger
}

// NewNotifier returns a Notifier with a 30 second request timeout unless the
// provided client overrides it.
func NewNotifier(client *http.Client, log *logrus.Logger) *Notifier {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Notifier{client: client, log: log}
}

// Notification is the payload sent to the evaluation API.
type Notification struct {
	Email       string         `json:"email"`
	Task        string         `json:"task"`
	Round       int            `json:"round"`
	Nonce       string         `json:"nonce"`
	Timestamp   string         `json:"timestamp"`
	Deployment  deploymentInfo `json:"deployment"`
	AppMetadata map[string]any `json:"app_metadata"`
}

type deploymentInfo struct {
	RepoName  string `json:"repo_name"`
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
	Success   bool   `json:"success"`
}

// Result reports the outcome of a notification attempt.
type Result struct {
	Sent       bool   `json:"sent"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Notify sends deployment metadata to the evaluation URL. Failures are
// reported in the Result rather than as an error so the request pipeline can
// degrade without aborting.
func (n *Notifier) Notify(ctx context.Context, evaluationURL string, email, task string, round int, nonce string, dep Deployment, metadata map[string]any) Result {
	payload := Notification{
		Email:     email,
		Task:      task,
		Round:     round,
		Nonce:     nonce,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Deployment: deploymentInfo{
			RepoName:  dep.RepoName,
			RepoURL:   dep.RepoURL,
			CommitSHA: dep.CommitSHA,
			PagesURL:  dep.PagesURL,
			Success:   dep.CommitSHA != "",
		},
		AppMetadata: metadata,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Error: fmt.Sprintf("marshal payload: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, evaluationURL, bytes.NewReader(body))
	if err != nil {
		return Result{Error: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "LLM-Code-Deployment/1.0")

	n.log.WithField("url", evaluationURL).Info("sending evaluation notification")
	resp, err := n.client.Do(req)
	if err != nil {
		return Result{Error: fmt.Sprintf("request error: %v", err)}
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode != http.StatusOK {
		return Result{
			StatusCode: resp.StatusCode,
			Error:      fmt.Sprintf("evaluation API returned status %d: %s", resp.StatusCode, truncate(respBody, 256)),
		}
	}
	return Result{Sent: true, StatusCode: resp.StatusCode}
}

// ValidateEvaluationURL reports whether url looks like a usable callback.
func ValidateEvaluationURL(url string) bool {
	if url == "" {
		return false
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return false
	}
	rest := strings.SplitN(url, "://", 2)[1]
	return strings.Contains(rest, ".") || strings.Contains(rest, "localhost") || strings.Contains(rest, ":")
}

// FormatSummary renders a human-readable deployment summary for logs.
func FormatSummary(dep Deployment, metadata map[string]any) string {
	status := "failed"
	if dep.CommitSHA != "" {
		status = "success"
	}
	sha := dep.CommitSHA
	if len(sha) > 8 {
		sha = sha[:8]
	}
	title, _ := metadata["title"].(string)
	description, _ := metadata["description"].(string)
	return strings.TrimSpace(fmt.Sprintf(`Deployment Summary
==================
Repository: %s
Repository URL: %s
Pages: %s
Commit SHA: %s
Status: %s
Title: %s
Description: %s`,
		dep.RepoName, dep.RepoURL, dep.PagesURL, sha, status, title, description))
}
