package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReply = `{"html_content":"<!doctype html><html><head><style>body{}</style></head><body><script>1;</script></body></html>","css_content":"body{margin:0}","js_content":"console.log(1);","metadata":{"title":"Demo","description":"A demo"}}`

func TestParseAppPlainJSON(t *testing.T) {
	app, err := ParseApp(validReply)
	require.NoError(t, err)
	assert.Contains(t, app.HTMLContent, "<html")
	assert.Equal(t, "body{margin:0}", app.CSSContent)
	assert.Equal(t, "Demo", app.Title(""))
	assert.Equal(t, "A demo", app.Description(""))
}

func TestParseAppFencedJSON(t *testing.T) {
	raw := "Here is your app:\n```json\n" + validReply + "\n```\nEnjoy!"
	app, err := ParseApp(raw)
	require.NoError(t, err)
	assert.Contains(t, app.HTMLContent, "<html")
}

func TestParseAppSurroundingProse(t *testing.T) {
	raw := "Sure thing! " + validReply + " Let me know if you need changes."
	app, err := ParseApp(raw)
	require.NoError(t, err)
	assert.Equal(t, "console.log(1);", app.JSContent)
}

func TestParseAppErrors(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"not json":     "I could not generate the app, sorry.",
		"missing html": `{"css_content":"body{}"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseApp(raw)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	app, err := ParseApp(validReply)
	require.NoError(t, err)
	assert.True(t, Validate(app))

	assert.False(t, Validate(App{HTMLContent: "plain text"}))

	// Inline style/script markers satisfy validation even with empty CSS/JS.
	inline := App{HTMLContent: `<html><head><style>a{}</style></head><body><script>1;</script></body></html>`}
	assert.True(t, Validate(inline))

	noStyling := App{HTMLContent: `<html><body><script>1;</script></body></html>`}
	assert.False(t, Validate(noStyling))
}

func TestFallback(t *testing.T) {
	app := Fallback("Sales <Dashboard>")
	assert.True(t, Validate(app))
	assert.Contains(t, app.HTMLContent, "Sales &lt;Dashboard&gt;")
	assert.Equal(t, "Sales <Dashboard>", app.Title(""))

	unnamed := Fallback("")
	assert.Equal(t, "LLM App", unnamed.Title(""))
}
