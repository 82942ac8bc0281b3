package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt is the message pair sent to the LLM.
type Prompt struct {
	System string
	User   string
}

const systemPrompt = "You are an expert web developer. " +
	"Always respond in strict JSON format with keys: " +
	"html_content, css_content, js_content, metadata."

// BuildInitialPrompt produces the round-1 prompt.
func BuildInitialPrompt(b Brief) Prompt {
	var sb strings.Builder
	sb.WriteString("Create a complete, minimal web app based on:\n\n")
	sb.WriteString(fmt.Sprintf("TASK: %s\n", b.Task))
	sb.WriteString(fmt.Sprintf("BRIEF: %s\n\n", b.Brief))
	sb.WriteString("Requirements:\n")
	sb.WriteString("1. Single-page HTML5 app (self-contained)\n")
	sb.WriteString("2. Include embedded CSS and JavaScript\n")
	sb.WriteString("3. Be functional and visually appealing\n")
	sb.WriteString("4. Responsive and works directly in browser\n\n")
	sb.WriteString("Respond strictly as JSON with:\n")
	sb.WriteString("- html_content\n- css_content\n- js_content\n- metadata (title, description)\n")
	appendAttachments(&sb, b.Attachments, "Attachments")

	return Prompt{System: systemPrompt, User: sb.String()}
}

// BuildRevisionPrompt produces the round-N prompt, carrying the previous
// app's markup so the model revises instead of starting over.
func BuildRevisionPrompt(b Brief, prev App) Prompt {
	var sb strings.Builder
	sb.WriteString("Revise the previous app as per feedback.\n\n")
	sb.WriteString(fmt.Sprintf("TASK: %s\n", b.Task))
	sb.WriteString(fmt.Sprintf("BRIEF: %s\n", b.Brief))
	sb.WriteString(fmt.Sprintf("ROUND: %d\n\n", b.Round))
	sb.WriteString("Previous html_content:\n")
	sb.WriteString(prev.HTMLContent)
	sb.WriteString("\n\nKeep same functionality but improve UI/UX and fix issues.\n")
	sb.WriteString("Respond with JSON (same keys as before).\n")
	appendAttachments(&sb, b.Attachments, "Revision context")

	return Prompt{System: systemPrompt, User: sb.String()}
}

func appendAttachments(sb *strings.Builder, atts []Attachment, label string) {
	if len(atts) == 0 {
		return
	}
	data, err := json.MarshalIndent(atts, "", "  ")
	if err != nil {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n%s\n", label, data))
}
