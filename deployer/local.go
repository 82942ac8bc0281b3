package deployer

import (
	"fmt"
	"os"
	"path/filepath"

	"llm_code_deployment/generator"
)

// LocalDeploy writes the app files under dir/<repo-name> and returns a
// deployment whose pages URL is a file:// link. Used when GitHub deployment
// is unavailable or failed.
func LocalDeploy(dir, appName string, app generator.App) (Deployment, error) {
	repoName := RepoName(appName)
	outDir := filepath.Join(dir, repoName)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Deployment{}, fmt.Errorf("create output dir: %w", err)
	}

	for name, content := range PrepareFiles(app) {
		if err := os.WriteFile(filepath.Join(outDir, name), []byte(content), 0o644); err != nil {
			return Deployment{}, fmt.Errorf("write %s: %w", name, err)
		}
	}

	abs, err := filepath.Abs(outDir)
	if err != nil {
		abs = outDir
	}
	return Deployment{
		RepoName:  repoName,
		RepoURL:   abs,
		CommitSHA: "local-fallback",
		PagesURL:  "file://" + filepath.Join(abs, "index.html"),
		Fallback:  true,
	}, nil
}
