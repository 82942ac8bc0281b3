package generator

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseApp extracts an App from the model's reply. Models frequently wrap
// their JSON in code fences or prepend prose, so the parser trims down to the
// fenced or outermost JSON object before reading fields.
func ParseApp(raw string) (App, error) {
	payload := extractJSON(strings.TrimSpace(raw))
	if payload == "" {
		return App{}, errors.New("model returned empty reply")
	}
	if !gjson.Valid(payload) {
		return App{}, errors.New("model reply is not valid JSON")
	}

	root := gjson.Parse(payload)
	app := App{
		HTMLContent: root.Get("html_content").String(),
		CSSContent:  root.Get("css_content").String(),
		JSContent:   root.Get("js_content").String(),
		Metadata:    map[string]any{},
	}
	root.Get("metadata").ForEach(func(key, value gjson.Result) bool {
		app.Metadata[key.String()] = value.Value()
		return true
	})
	if app.HTMLContent == "" {
		return App{}, errors.New("model reply missing html_content")
	}
	return app, nil
}

// extractJSON trims code fences and surrounding prose down to the JSON object.
func extractJSON(s string) string {
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// Validate reports whether the app is plausibly runnable in a browser.
func Validate(app App) bool {
	lower := strings.ToLower(app.HTMLContent)
	if app.HTMLContent == "" || !strings.Contains(lower, "<html") {
		return false
	}
	if app.CSSContent == "" && !strings.Contains(lower, "style") {
		return false
	}
	if app.JSContent == "" && !strings.Contains(lower, "script") {
		return false
	}
	return true
}

// Fallback returns a minimal self-contained app, used when generation fails
// or the model's output does not validate.
func Fallback(task string) App {
	title := task
	if title == "" {
		title = "LLM App"
	}
	esc := html.EscapeString(title)
	htmlContent := fmt.Sprintf(`<!doctype html><html><head><meta charset="utf-8"><title>%s</title><link rel="stylesheet" href="styles.css"></head><body><div id="app"><h1>%s</h1><p>Your app was generated in fallback mode.</p><script src="script.js"></script></div></body></html>`, esc, esc)
	css := "body{font-family:system-ui,Segoe UI,Arial,sans-serif;margin:40px;background:#fafafa;color:#222}#app{max-width:800px;margin:auto;padding:24px;border:1px solid #e5e5e5;border-radius:12px;background:#fff}h1{margin-top:0}"
	js := "console.log('Fallback app initialized');"
	return App{
		HTMLContent: htmlContent,
		CSSContent:  css,
		JSContent:   js,
		Metadata: map[string]any{
			"title":       title,
			"description": "Fallback generated application",
		},
	}
}
