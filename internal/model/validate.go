package model

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// FieldError is a single validation failure addressed by a field path
// such as "experience[2].title".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	IsValid bool         `json:"isValid"`
	Errors  []FieldError `json:"errors"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the fields a resume cannot be submitted without. All
// failures are collected; nothing short-circuits.
func Validate(doc *Document) ValidationResult {
	res := ValidationResult{Errors: []FieldError{}}
	if doc == nil {
		doc = EmptyDocument()
	}

	if strings.TrimSpace(doc.Personal.FullName) == "" {
		res.add("personal.full_name", "Full name is required")
	}

	email := strings.TrimSpace(doc.Personal.Email)
	if email == "" {
		res.add("personal.email", "Email is required")
	} else if !emailPattern.MatchString(email) {
		res.add("personal.email", "Email address is invalid")
	}

	for i, exp := range doc.Experience {
		if strings.TrimSpace(exp.Title) == "" {
			res.add(fmt.Sprintf("experience[%d].title", i), "Job title is required")
		}
		if strings.TrimSpace(exp.Company) == "" {
			res.add(fmt.Sprintf("experience[%d].company", i), "Company is required")
		}
	}

	for i, edu := range doc.Education {
		if strings.TrimSpace(edu.Degree) == "" {
			res.add(fmt.Sprintf("education[%d].degree", i), "Degree is required")
		}
		if strings.TrimSpace(edu.Institution) == "" {
			res.add(fmt.Sprintf("education[%d].institution", i), "Institution is required")
		}
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func (r *ValidationResult) add(field, msg string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: msg})
}

//go:embed schema/document.schema.json
var documentSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

// ValidateShape checks the structural contract of a document (every
// declared field present, every list an array) against the embedded JSON
// schema. It accepts the typed document or any value that encodes to the
// same JSON.
func ValidateShape(v interface{}) error {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(documentSchema))
	})
	if schemaErr != nil {
		return fmt.Errorf("load document schema: %w", schemaErr)
	}

	res, err := compiledSchema.Validate(gojsonschema.NewGoLoader(v))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
