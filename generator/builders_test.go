package generator

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataURL(content string) string {
	return "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte(content))
}

func TestDecodeDataURL(t *testing.T) {
	mime, text := DecodeDataURL("data:text/csv;base64," + base64.StdEncoding.EncodeToString([]byte("a,b\n1,2")))
	assert.Equal(t, "text/csv", mime)
	assert.Equal(t, "a,b\n1,2", text)

	mime, text = DecodeDataURL("data:text/plain,hello%20world")
	assert.Equal(t, "text/plain", mime)
	assert.Equal(t, "hello world", text)

	_, text = DecodeDataURL("https://example.com/file.txt")
	assert.Empty(t, text)

	_, text = DecodeDataURL("data:text/plain;base64,!!!not-base64!!!")
	assert.Empty(t, text)
}

func TestCollectAttachments(t *testing.T) {
	b := Brief{Attachments: []Attachment{
		{Name: "data.csv", URL: dataURL("product,sales\nWidget,10")},
		{Name: "", URL: dataURL("ignored")},
		{Name: "empty.txt", URL: ""},
	}}
	files := CollectAttachments(b)
	assert.Equal(t, "product,sales\nWidget,10", files["data.csv"])
	assert.NotContains(t, files, "")
	assert.NotContains(t, files, "empty.txt")
}

func TestBuildKnownSumOfSales(t *testing.T) {
	b := Brief{
		Task:  "Sales dashboard",
		Brief: "Build a sum-of-sales viewer",
		Attachments: []Attachment{
			{Name: "data.csv", URL: dataURL("product,sales,region\nWidget,10,EU")},
		},
	}
	app, ok := BuildKnown(b)
	require.True(t, ok)
	assert.Contains(t, app.HTMLContent, "Sales Summary")
	assert.Contains(t, app.HTMLContent, "region-filter")
	assert.Equal(t, "product,sales,region\nWidget,10,EU", app.ExtraFiles["data.csv"])
}

func TestBuildKnownMarkdownViewer(t *testing.T) {
	b := Brief{
		Brief: "Build a markdown-to-html converter",
		Attachments: []Attachment{
			{Name: "input.md", URL: dataURL("# Title\n\nSome *emphasis* here.")},
		},
	}
	app, ok := BuildKnown(b)
	require.True(t, ok)
	// Markdown is rendered server-side.
	assert.Contains(t, app.HTMLContent, "<h1")
	assert.Contains(t, app.HTMLContent, "<em>emphasis</em>")
	assert.Contains(t, app.HTMLContent, "markdown-word-count")
	assert.Equal(t, "# Title\n\nSome *emphasis* here.", app.ExtraFiles["input.md"])
}

func TestBuildKnownGitHubUser(t *testing.T) {
	app, ok := BuildKnown(Brief{Brief: "Show github-user account age"})
	require.True(t, ok)
	assert.Contains(t, app.HTMLContent, "github-created-at")
	assert.Contains(t, app.HTMLContent, "api.github.com/users/")
}

func TestBuildKnownNoMatch(t *testing.T) {
	_, ok := BuildKnown(Brief{Brief: "Build a pomodoro timer"})
	assert.False(t, ok)
}
