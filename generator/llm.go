package generator

import "context"

// LLMClient abstracts the completion API so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings holds the configuration a concrete client needs.
type LLMSettings struct {
	Model   string
	APIKey  string
	BaseURL string
}
