package research

type Result struct {
	Content string `json:"content,omitempty"`

	Summary []string `json:"summary,omitempty"`
	Sources []Source `json:"sources,omitempty"`
}

type Source struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}
