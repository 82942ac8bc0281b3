package deployer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"llm_code_deployment/generator"
)

func TestRepoName(t *testing.T) {
	name := RepoName("My Calculator App!")
	assert.True(t, strings.HasPrefix(name, "llm-app-mycalculatorapp-"), name)

	empty := RepoName("???")
	assert.True(t, strings.HasPrefix(empty, "llm-app-app-"), empty)

	kept := RepoName("sum_of-sales")
	assert.True(t, strings.HasPrefix(kept, "llm-app-sum_of-sales-"), kept)
}

func TestPrepareFiles(t *testing.T) {
	app := generator.App{
		HTMLContent: "<html></html>",
		CSSContent:  "body{}",
		JSContent:   "1;",
		Metadata:    map[string]any{"title": "Demo", "description": "A demo app"},
		ExtraFiles:  map[string]string{"data.csv": "a,b"},
	}
	files := PrepareFiles(app)

	assert.Equal(t, "<html></html>", files["index.html"])
	assert.Equal(t, "body{}", files["styles.css"])
	assert.Equal(t, "1;", files["script.js"])
	assert.Equal(t, "a,b", files["data.csv"])
	assert.Contains(t, files["README.md"], "# Demo")
	assert.Contains(t, files["README.md"], "A demo app")
	assert.Contains(t, files["LICENSE"], "MIT License")
}

func TestPrepareFilesOmitsEmptyAssets(t *testing.T) {
	app := generator.App{HTMLContent: "<html></html>", CSSContent: "  ", JSContent: ""}
	files := PrepareFiles(app)
	assert.NotContains(t, files, "styles.css")
	assert.NotContains(t, files, "script.js")
	assert.Contains(t, files["README.md"], "LLM Generated Application")
}
