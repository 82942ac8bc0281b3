package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInitialPrompt(t *testing.T) {
	b := Brief{
		Task:  "Create a calculator",
		Brief: "Basic arithmetic with a clean interface",
		Round: 1,
	}
	p := BuildInitialPrompt(b)
	assert.Contains(t, p.System, "strict JSON")
	assert.Contains(t, p.User, "TASK: Create a calculator")
	assert.Contains(t, p.User, "BRIEF: Basic arithmetic")
	assert.NotContains(t, p.User, "Attachments:")
}

func TestBuildInitialPromptWithAttachments(t *testing.T) {
	b := Brief{
		Task:        "Viewer",
		Brief:       "Show the data",
		Attachments: []Attachment{{Name: "data.csv", URL: "data:text/csv,a"}},
	}
	p := BuildInitialPrompt(b)
	assert.Contains(t, p.User, "Attachments:")
	assert.Contains(t, p.User, "data.csv")
}

func TestBuildRevisionPrompt(t *testing.T) {
	prev := App{HTMLContent: "<html><body>v1</body></html>"}
	b := Brief{Task: "Calculator", Brief: "Fix the layout", Round: 2}
	p := BuildRevisionPrompt(b, prev)
	assert.Contains(t, p.User, "ROUND: 2")
	assert.Contains(t, p.User, "<html><body>v1</body></html>")
	assert.Contains(t, p.User, "Revise the previous app")
}
