package domain

type TemplateMetadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Icon        string   `json:"icon"`
	Badge       string   `json:"badge,omitempty"`
	Features    []string `json:"features"`
}

// Template is a named Handlebars markup string plus display metadata.
type Template struct {
	ID       string           `json:"id"`
	HTML     string           `json:"html"`
	Metadata TemplateMetadata `json:"metadata"`
}
