package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenMissingSkills(t *testing.T) {
	var out map[string]interface{}
	require.NotPanics(t, func() {
		out = Flatten(map[string]interface{}{"personal": map[string]interface{}{"full_name": "Jane"}})
	})

	assert.Equal(t, false, out["hasTechnicalSkills"])
	assert.Equal(t, false, out["hasSkills"])
	assert.Equal(t, []interface{}{}, out["technical_skills"])
	skills := out["skills"].(map[string]interface{})
	assert.Equal(t, []interface{}{}, skills["technical"])
}

func TestFlattenMalformedInput(t *testing.T) {
	raw := map[string]interface{}{
		"personal":   "Jane",
		"skills":     []interface{}{"Go"},
		"experience": "lots",
		"summary":    42,
	}
	var out map[string]interface{}
	require.NotPanics(t, func() { out = Flatten(raw) })

	assert.Equal(t, map[string]interface{}{}, out["personal"])
	assert.Equal(t, []interface{}{}, out["experience"])
	assert.Equal(t, "", out["summary"])
	assert.Equal(t, false, out["hasExperience"])
	assert.Equal(t, false, out["hasSummary"])
	assert.Equal(t, "", out["full_name"])

	assert.Equal(t, false, Flatten(nil)["hasSkills"])
}

func TestFlattenAliasesAndFlags(t *testing.T) {
	raw := DocumentMap(sampleDocument())
	raw["personal"].(map[string]interface{})["github_url"] = "https://github.com/jane"
	raw["summary"] = "Builds things"

	out := Flatten(raw)

	assert.Equal(t, "Jane Doe", out["full_name"])
	assert.Equal(t, "Jane Doe", out["name"])
	assert.Equal(t, "jane@example.com", out["email"])
	assert.Equal(t, "https://linkedin.com/in/jane", out["linkedin"])
	assert.Equal(t, "https://github.com/jane", out["github"])
	assert.Equal(t, "", out["website"])
	assert.Equal(t, true, out["hasLinkedin"])
	assert.Equal(t, true, out["hasGithub"])
	assert.Equal(t, false, out["hasPersonalUrl"])
	assert.Equal(t, true, out["hasExperience"])
	assert.Equal(t, true, out["hasEducation"])
	assert.Equal(t, false, out["hasProjects"])
	assert.Equal(t, true, out["hasLanguages"])
	assert.Equal(t, true, out["hasTechnicalSkills"])
	assert.Equal(t, false, out["hasSoftSkills"])
	assert.Equal(t, true, out["hasSkills"])
	assert.Equal(t, true, out["hasSummary"])

	personal := out["personal"].(map[string]interface{})
	assert.Equal(t, "Jane Doe", personal["full_name"])
}

func TestFlattenKeepsExplicitLegacyKeys(t *testing.T) {
	out := Flatten(map[string]interface{}{
		"personal": map[string]interface{}{"linkedin_url": "https://linkedin.com/in/canonical"},
		"linkedin": "https://linkedin.com/in/legacy",
		"name":     "Legacy Name",
	})

	assert.Equal(t, "https://linkedin.com/in/legacy", out["linkedin"])
	assert.Equal(t, "Legacy Name", out["name"])
	assert.Equal(t, "", out["full_name"])
}

func TestFlattenCertificationLabels(t *testing.T) {
	out := Flatten(map[string]interface{}{
		"certifications": []interface{}{
			map[string]interface{}{"name": "CKA", "url": "https://www.credly.com/badges/123"},
			map[string]interface{}{"name": "AWS", "url": "bogus"},
			"bare",
		},
	})

	certs := out["certifications"].([]interface{})
	require.Len(t, certs, 3)
	first := certs[0].(map[string]interface{})
	assert.Equal(t, "credly.com", first["url_label"])
	second := certs[1].(map[string]interface{})
	assert.Equal(t, "", second["url"])
	assert.Equal(t, "", second["url_label"])
	assert.Equal(t, "bare", certs[2])
}

func TestFlattenDoesNotMutateInput(t *testing.T) {
	personal := map[string]interface{}{"full_name": "Jane"}
	raw := map[string]interface{}{"personal": personal}

	_ = Flatten(raw)

	assert.Len(t, raw, 1)
	assert.Len(t, personal, 1)
}
