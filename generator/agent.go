package generator

import (
	"context"
	"errors"
)

// ErrNoLLM is returned when no builder matched and no LLM client is
// configured.
var ErrNoLLM = errors.New("llm client not configured and no deterministic builder matched")

// ErrInvalidApp is returned when the model output parsed but does not look
// like a runnable app.
var ErrInvalidApp = errors.New("generated app failed validation")

// Agent produces apps from briefs, via deterministic builders or the LLM.
type Agent struct {
	llm LLMClient
}

// NewAgent creates an Agent. The LLM client may be nil; the agent then only
// serves briefs covered by deterministic builders.
func NewAgent(llm LLMClient) *Agent {
	return &Agent{llm: llm}
}

// Generate builds the app for a brief. prev is the previously generated app
// when this is a revision round, nil otherwise.
func (a *Agent) Generate(ctx context.Context, b Brief, prev *App) (App, error) {
	if app, ok := BuildKnown(b); ok {
		return app, nil
	}
	if a.llm == nil {
		return App{}, ErrNoLLM
	}

	var prompt Prompt
	if b.Round <= 1 || prev == nil {
		prompt = BuildInitialPrompt(b)
	} else {
		prompt = BuildRevisionPrompt(b, *prev)
	}

	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return App{}, err
	}
	app, err := ParseApp(raw)
	if err != nil {
		return App{}, err
	}
	if !Validate(app) {
		return App{}, ErrInvalidApp
	}
	return app, nil
}
