// Package templates holds the built-in resume templates. Markup is
// restricted to Handlebars built-ins and the helpers in pkg/helpers.
package templates

import (
	"embed"
	"fmt"

	"resume-studio/internal/domain"
)

//go:embed *.html
var markupFS embed.FS

// DefaultID is the template used when a caller does not pick one.
const DefaultID = "modern"

var catalog = []struct {
	id   string
	file string
	meta domain.TemplateMetadata
}{
	{
		id:   "modern",
		file: "modern.html",
		meta: domain.TemplateMetadata{
			Name:        "Modern",
			Description: "Single column with accent headings and grouped skills",
			Color:       "#2563eb",
			Icon:        "sparkles",
			Badge:       "Popular",
			Features:    []string{"Skill buckets", "Role durations", "Link labels"},
		},
	},
	{
		id:   "classic",
		file: "classic.html",
		meta: domain.TemplateMetadata{
			Name:        "Classic",
			Description: "Serif layout in the traditional chronological order",
			Color:       "#111827",
			Icon:        "document-text",
			Features:    []string{"ATS friendly", "All sections"},
		},
	},
	{
		id:   "minimal",
		file: "minimal.html",
		meta: domain.TemplateMetadata{
			Name:        "Minimal",
			Description: "One page summary with the most recent roles",
			Color:       "#6b7280",
			Icon:        "minus",
			Badge:       "New",
			Features:    []string{"Compact", "Top projects"},
		},
	},
}

// All loads every built-in template in catalog order.
func All() ([]domain.Template, error) {
	out := make([]domain.Template, 0, len(catalog))
	for _, c := range catalog {
		b, err := markupFS.ReadFile(c.file)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", c.id, err)
		}
		meta := c.meta
		meta.Features = append([]string(nil), c.meta.Features...)
		out = append(out, domain.Template{ID: c.id, HTML: string(b), Metadata: meta})
	}
	return out, nil
}
