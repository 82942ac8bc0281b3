package generator

// Attachment is a named file passed along with a brief, carried as a data URL.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Brief describes the app to generate or revise.
type Brief struct {
	Task        string
	Brief       string
	Round       int
	Nonce       string
	Attachments []Attachment
}

// App is a generated static application ready to deploy.
type App struct {
	HTMLContent string         `json:"html_content"`
	CSSContent  string         `json:"css_content"`
	JSContent   string         `json:"js_content"`
	Metadata    map[string]any `json:"metadata"`
	// ExtraFiles carries additional repo files (e.g. data.csv from attachments).
	ExtraFiles map[string]string `json:"extra_files,omitempty"`
}

// Title returns the metadata title, falling back to def.
func (a App) Title(def string) string {
	if t, ok := a.Metadata["title"].(string); ok && t != "" {
		return t
	}
	return def
}

// Description returns the metadata description, falling back to def.
func (a App) Description(def string) string {
	if d, ok := a.Metadata["description"].(string); ok && d != "" {
		return d
	}
	return def
}
