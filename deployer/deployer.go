// Package deployer publishes generated apps as GitHub repositories served
// through GitHub Pages, with a local filesystem fallback, and notifies
// evaluation callbacks about the result.
package deployer

// Deployment describes where an app ended up.
type Deployment struct {
	RepoName  string `json:"repo_name"`
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
	Fallback  bool   `json:"fallback,omitempty"`
}
