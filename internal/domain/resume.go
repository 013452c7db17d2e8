package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResumeRecord is a stored resume. Content holds the persisted-record
// sections (see usecase.ToPersistedRecord); ParsedSections is whatever the
// upload parser could not map onto a known section.
type ResumeRecord struct {
	ID             uuid.UUID              `json:"id"`
	UserID         uuid.UUID              `json:"user_id"`
	Title          string                 `json:"title"`
	TemplateID     string                 `json:"template_id"`
	Content        map[string]interface{} `json:"content"`
	ParsedSections map[string]interface{} `json:"parsed_sections"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// Persisted is the record as the normalizer's persisted-record entry point
// reads it: the content sections plus the record's own columns.
func (r *ResumeRecord) Persisted() map[string]interface{} {
	out := make(map[string]interface{}, len(r.Content)+4)
	for k, v := range r.Content {
		out[k] = v
	}
	out["id"] = r.ID.String()
	out["title"] = r.Title
	out["template_id"] = r.TemplateID
	if _, ok := out["parsed_sections"]; !ok && r.ParsedSections != nil {
		out["parsed_sections"] = r.ParsedSections
	}
	return out
}
