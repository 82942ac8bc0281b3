package deployer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"llm_code_deployment/generator"
)

const defaultAPIBase = "https://api.github.com"

// Client talks to the GitHub REST API with a personal access token.
type Client struct {
	token      string
	username   string
	baseURL    string
	client     *http.Client
	log        *logrus.Logger
	retryDelay time.Duration
}

// Options configures a Client.
type Options struct {
	Token      string
	Username   string
	BaseURL    string // defaults to the public GitHub API
	HTTPClient *http.Client
	Logger     *logrus.Logger
}

// NewClient validates credentials and returns a ready client.
func NewClient(opts Options) (*Client, error) {
	if opts.Token == "" || opts.Username == "" {
		return nil, errors.New("github token and username are required")
	}
	base := opts.BaseURL
	if base == "" {
		base = defaultAPIBase
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		token:      opts.Token,
		username:   opts.Username,
		baseURL:    base,
		client:     httpClient,
		log:        log,
		retryDelay: time.Second,
	}, nil
}

// Request describes one deployment.
type Request struct {
	AppName      string
	App          generator.App
	Revision     bool
	ExistingRepo string
}

// Deploy creates (or for revisions, reuses) a repository, commits the app
// files, and returns the deployment metadata including the Pages URL.
func (c *Client) Deploy(ctx context.Context, req Request) (Deployment, error) {
	var repoName string
	var err error
	if req.Revision && req.ExistingRepo != "" {
		repoName = req.ExistingRepo
		c.log.WithField("repo", repoName).Info("updating existing repository")
	} else {
		repoName, err = c.createRepository(ctx, RepoName(req.AppName), req.App.Description("LLM Generated Web Application"))
		if err != nil {
			return Deployment{}, err
		}
		c.log.WithField("repo", repoName).Info("created repository")
	}

	files := PrepareFiles(req.App)
	commitSHA, err := c.commitFiles(ctx, repoName, files, req.Revision)
	if err != nil {
		return Deployment{}, err
	}

	return Deployment{
		RepoName:  repoName,
		RepoURL:   fmt.Sprintf("https://github.com/%s/%s", c.username, repoName),
		CommitSHA: commitSHA,
		PagesURL:  fmt.Sprintf("https://%s.github.io/%s", c.username, repoName),
	}, nil
}

type createRepoPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
	AutoInit    bool   `json:"auto_init"`
}

type repoResp struct {
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// createRepository creates a public auto-initialized repo under the
// authenticated user. A 422 means the name is taken; retry once with a
// fresh time suffix.
func (c *Client) createRepository(ctx context.Context, name, description string) (string, error) {
	for attempt := 0; ; attempt++ {
		payload := createRepoPayload{
			Name:        name,
			Description: description,
			Private:     false,
			AutoInit:    true,
		}
		status, body, err := c.do(ctx, http.MethodPost, "/user/repos", payload)
		if err != nil {
			return "", fmt.Errorf("create repository: %w", err)
		}
		if status == http.StatusUnprocessableEntity && attempt == 0 {
			name = fmt.Sprintf("%s-%s", name, time.Now().Format("150405"))
			continue
		}
		if status != http.StatusCreated {
			return "", fmt.Errorf("create repository: github returned status %d: %s", status, truncate(body, 256))
		}
		var repo repoResp
		if err := json.Unmarshal(body, &repo); err != nil {
			return "", fmt.Errorf("create repository: decode response: %w", err)
		}
		if repo.Name == "" {
			repo.Name = name
		}
		return repo.Name, nil
	}
}

type contentResp struct {
	SHA string `json:"sha"`
}

type putContentPayload struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

type putContentResp struct {
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// commitFiles writes each file through the contents API, updating in place
// when the path already exists. Each file gets a bounded number of attempts.
func (c *Client) commitFiles(ctx context.Context, repo string, files map[string]string, revision bool) (string, error) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var lastCommit string
	for _, path := range paths {
		attempts := 5
		for {
			sha, err := c.commitFile(ctx, repo, path, files[path], revision)
			if err == nil {
				lastCommit = sha
				break
			}
			attempts--
			if attempts <= 0 {
				return "", fmt.Errorf("commit %s: %w", path, err)
			}
			c.log.WithError(err).WithField("path", path).Warn("commit failed, retrying")
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}
	return lastCommit, nil
}

func (c *Client) commitFile(ctx context.Context, repo, path, content string, revision bool) (string, error) {
	contentsPath := fmt.Sprintf("/repos/%s/%s/contents/%s", c.username, repo, path)

	// Existing files need their blob SHA for an update.
	var existingSHA string
	status, body, err := c.do(ctx, http.MethodGet, contentsPath, nil)
	if err != nil {
		return "", err
	}
	switch status {
	case http.StatusOK:
		var existing contentResp
		if err := json.Unmarshal(body, &existing); err != nil {
			return "", fmt.Errorf("decode contents response: %w", err)
		}
		existingSHA = existing.SHA
	case http.StatusNotFound:
		// new file
	default:
		return "", fmt.Errorf("github returned status %d: %s", status, truncate(body, 256))
	}

	message := "Add file " + path
	if revision && existingSHA != "" {
		message = "Update file " + path
	}
	payload := putContentPayload{
		Message: message,
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
		SHA:     existingSHA,
	}
	status, body, err = c.do(ctx, http.MethodPut, contentsPath, payload)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", fmt.Errorf("github returned status %d: %s", status, truncate(body, 256))
	}
	var put putContentResp
	if err := json.Unmarshal(body, &put); err != nil {
		return "", fmt.Errorf("decode commit response: %w", err)
	}
	return put.Commit.SHA, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
