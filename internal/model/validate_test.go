package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(res ValidationResult) []string {
	out := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateEmptyDocument(t *testing.T) {
	res := Validate(EmptyDocument())

	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"personal.full_name", "personal.email"}, fields(res))
	assert.Equal(t, "Full name is required", res.Errors[0].Message)
	assert.Equal(t, "Email is required", res.Errors[1].Message)
}

func TestValidateNilDocument(t *testing.T) {
	res := Validate(nil)
	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 2)
}

func TestValidateEmailFormat(t *testing.T) {
	doc := EmptyDocument()
	doc.Personal.FullName = "Jane Doe"

	for _, bad := range []string{"jane", "jane@", "jane@example", "ja ne@example.com"} {
		doc.Personal.Email = bad
		res := Validate(doc)
		require.Len(t, res.Errors, 1, bad)
		assert.Equal(t, "Email address is invalid", res.Errors[0].Message, bad)
	}

	doc.Personal.Email = "  jane@example.com "
	assert.True(t, Validate(doc).IsValid)
}

func TestValidateEntryPaths(t *testing.T) {
	doc := EmptyDocument()
	doc.Personal.FullName = "Jane Doe"
	doc.Personal.Email = "jane@example.com"
	doc.Experience = []Experience{
		{Title: "Engineer", Company: "Acme"},
		{Title: " ", Company: ""},
	}
	doc.Education = []Education{{Degree: "BSc"}}

	res := Validate(doc)

	assert.False(t, res.IsValid)
	assert.Equal(t, []string{
		"experience[1].title",
		"experience[1].company",
		"education[0].institution",
	}, fields(res))
}

func TestValidateShape(t *testing.T) {
	require.NoError(t, ValidateShape(EmptyDocument()))

	doc := EmptyDocument()
	doc.Experience = nil
	err := ValidateShape(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "experience")

	assert.Error(t, ValidateShape(map[string]interface{}{"personal": map[string]interface{}{}}))
}
