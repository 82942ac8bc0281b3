package generator

import (
	"context"
	"encoding/json"
)

// MockLLM is a placeholder client for local runs and tests; it produces a
// valid self-contained app without calling an external model.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	app := map[string]any{
		"html_content": `<!doctype html><html><head><meta charset="utf-8"><title>Mock App</title><style>body{font-family:sans-serif}</style></head><body><h1>Mock App</h1><pre id="prompt"></pre><script>document.getElementById('prompt').textContent='generated locally';</script></body></html>`,
		"css_content":  "",
		"js_content":   "",
		"metadata": map[string]any{
			"title":       "Mock App",
			"description": "Locally generated placeholder application",
		},
	}
	out, err := json.Marshal(app)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
