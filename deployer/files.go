package deployer

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"llm_code_deployment/generator"
)

// RepoName derives a unique repository name from the app name.
func RepoName(appName string) string {
	clean := sanitize(appName)
	if clean == "" {
		clean = "app"
	}
	return fmt.Sprintf("llm-app-%s-%s", clean, time.Now().Format("20060102150405"))
}

func sanitize(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

// PrepareFiles assembles the repository contents for a generated app.
func PrepareFiles(app generator.App) map[string]string {
	files := map[string]string{
		"index.html": app.HTMLContent,
	}
	if strings.TrimSpace(app.CSSContent) != "" {
		files["styles.css"] = app.CSSContent
	}
	if strings.TrimSpace(app.JSContent) != "" {
		files["script.js"] = app.JSContent
	}
	files["README.md"] = renderReadme(app)
	files["LICENSE"] = mitLicense
	for name, content := range app.ExtraFiles {
		if name == "" {
			continue
		}
		files[name] = content
	}
	return files
}

func renderReadme(app generator.App) string {
	title := app.Title("LLM Generated Application")
	description := app.Description("A web application generated by LLM Code Deployment")
	return fmt.Sprintf(`# %s

%s

## About

Automatically generated by LLM Code Deployment.

## Usage

Open `+"`index.html`"+` in your browser to run the app.

## Files

- `+"`index.html`"+` - main HTML
- `+"`styles.css`"+` - CSS (optional)
- `+"`script.js`"+` - JS (optional)

Generated on %s
`, title, description, time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
}

const mitLicense = `MIT License

Copyright (c) 2024 LLM Code Deployment

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`
