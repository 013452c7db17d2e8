package usecase

import (
	"testing"

	"resume-studio/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertWellFormed(t *testing.T, doc *model.Document) {
	t.Helper()
	require.NotNil(t, doc)
	assert.NotNil(t, doc.Experience)
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Projects)
	assert.NotNil(t, doc.Skills.Technical)
	assert.NotNil(t, doc.Skills.Soft)
	assert.NotNil(t, doc.Skills.Languages)
	assert.NotNil(t, doc.Certifications)
	assert.NotNil(t, doc.Languages)
	assert.NotNil(t, doc.Publications)
	assert.NotNil(t, doc.Awards)
	assert.NotNil(t, doc.Volunteering)
	assert.NotNil(t, doc.Interests)
	assert.NotNil(t, doc.CustomSections)
}

func TestNormalizerInputShapes(t *testing.T) {
	flat := map[string]interface{}{"name": "Jane Doe", "email": "jane@example.com"}

	cases := map[string]*model.Document{
		"nil":         FromLegacyFlat(nil),
		"flat object": FromLegacyFlat(flat),
		"array":       FromLegacyFlat([]interface{}{flat}),
		"empty array": FromLegacyFlat([]interface{}{}),
		"json string": FromLegacyFlat(`{"name":"Jane Doe","email":"jane@example.com"}`),
		"bad json":    FromLegacyFlat(`{"name":`),
		"bytes":       FromLegacyFlat([]byte(`[{"name":"Jane Doe"}]`)),
		"number":      FromLegacyFlat(42),
		"persisted":   FromPersistedRecord(map[string]interface{}{"personal_info": map[string]interface{}{"full_name": "Jane Doe"}}),
		"persist nil": FromPersistedRecord(nil),
		"empty":       EmptyDocument(),
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			assertWellFormed(t, doc)
		})
	}

	assert.Equal(t, "Jane Doe", cases["flat object"].Personal.FullName)
	assert.Equal(t, "Jane Doe", cases["array"].Personal.FullName)
	assert.Equal(t, "Jane Doe", cases["json string"].Personal.FullName)
	assert.Equal(t, "Jane Doe", cases["bytes"].Personal.FullName)
	assert.Equal(t, "Jane Doe", cases["persisted"].Personal.FullName)
	assert.Empty(t, cases["bad json"].Personal.FullName)
	assert.Empty(t, cases["empty array"].Personal.FullName)
}

func TestFromLegacyFlatSynthesizesHandleURLs(t *testing.T) {
	doc := FromLegacyFlat(map[string]interface{}{
		"name":     "Jane",
		"linkedin": "jane-doe",
		"github":   "@janedoe",
		"website":  "jane.dev/portfolio",
	})

	assert.Equal(t, "https://linkedin.com/in/jane-doe", doc.Personal.LinkedinURL)
	assert.Equal(t, "https://github.com/janedoe", doc.Personal.GithubURL)
	assert.Equal(t, "https://jane.dev/portfolio", doc.Personal.PortfolioURL)
}

func TestFromLegacyFlatPrefersExplicitURL(t *testing.T) {
	doc := FromLegacyFlat(map[string]interface{}{
		"linkedin":         "jane-doe",
		"linkedin_url":     "https://www.linkedin.com/in/jane-explicit",
		"linkedin_display": "Jane on LinkedIn",
		"github":           "janedoe",
		"github_url":       "not a url",
	})

	assert.Equal(t, "https://www.linkedin.com/in/jane-explicit", doc.Personal.LinkedinURL)
	assert.Equal(t, "Jane on LinkedIn", doc.Personal.LinkedinDisplay)
	// an unusable explicit url falls back to the handle
	assert.Equal(t, "https://github.com/janedoe", doc.Personal.GithubURL)
}

func TestFromPersistedRecordDoesNotSynthesize(t *testing.T) {
	doc := FromPersistedRecord(map[string]interface{}{
		"linkedin": "jane-doe",
		"personal_info": map[string]interface{}{
			"full_name": "Jane",
			"github":    "janedoe",
		},
	})

	assert.Empty(t, doc.Personal.LinkedinURL)
	assert.Empty(t, doc.Personal.GithubURL)
}

func TestFromPersistedRecordRejectsWrappedInput(t *testing.T) {
	assert.Empty(t, FromPersistedRecord(`{"personal_info":{"full_name":"Jane"}}`).Personal.FullName)
	assert.Empty(t, FromPersistedRecord([]interface{}{
		map[string]interface{}{"personal_info": map[string]interface{}{"full_name": "Jane"}},
	}).Personal.FullName)
}

func TestFromLegacyFlatNonArrayLists(t *testing.T) {
	doc := FromLegacyFlat(map[string]interface{}{
		"experience":     "Acme, 2020-2022",
		"education":      map[string]interface{}{"degree": "BSc"},
		"projects":       nil,
		"skills":         "Go",
		"certifications": []interface{}{"AWS SAA", 12, map[string]interface{}{"name": "CKA", "url": "nope"}},
		"interests":      []interface{}{"chess", "  ", 3},
	})

	assertWellFormed(t, doc)
	assert.Empty(t, doc.Experience)
	assert.Empty(t, doc.Education)
	assert.Empty(t, doc.Projects)
	assert.Empty(t, doc.Skills.Technical)
	require.Len(t, doc.Certifications, 2)
	assert.Equal(t, "AWS SAA", doc.Certifications[0].Name)
	assert.Equal(t, "CKA", doc.Certifications[1].Name)
	assert.Empty(t, doc.Certifications[1].URL)
	assert.Equal(t, []string{"chess", "3"}, doc.Interests)
}

func TestFromLegacyFlatAssignsEntryIDs(t *testing.T) {
	doc := FromLegacyFlat(map[string]interface{}{
		"experience": []interface{}{
			map[string]interface{}{"title": "Engineer", "company": "Acme"},
			map[string]interface{}{"id": "keep-me", "position": "Lead", "employer": "Beta"},
		},
		"education": []interface{}{map[string]interface{}{"degree": "BSc", "school": "MIT"}},
		"projects":  []interface{}{map[string]interface{}{"name": "Site", "link": "https://site.dev"}},
	})

	require.Len(t, doc.Experience, 2)
	assert.NotEmpty(t, doc.Experience[0].ID)
	assert.Equal(t, "keep-me", doc.Experience[1].ID)
	assert.Equal(t, "Lead", doc.Experience[1].Title)
	assert.Equal(t, "Beta", doc.Experience[1].Company)
	require.Len(t, doc.Education, 1)
	assert.NotEmpty(t, doc.Education[0].ID)
	assert.Equal(t, "MIT", doc.Education[0].Institution)
	require.Len(t, doc.Projects, 1)
	assert.NotEmpty(t, doc.Projects[0].ID)
	assert.Equal(t, "https://site.dev", doc.Projects[0].URL)
	assert.NotEqual(t, doc.Experience[0].ID, doc.Education[0].ID)
}

func TestNormalizerLanguageShapes(t *testing.T) {
	legacy := FromLegacyFlat(map[string]interface{}{
		"languages": []interface{}{
			map[string]interface{}{"language": "French", "proficiency": "B2"},
			"German",
		},
	})
	require.Len(t, legacy.Languages, 2)
	assert.Equal(t, model.Language{Language: "French", Proficiency: "B2"}, legacy.Languages[0])
	assert.Equal(t, "German", legacy.Languages[1].Language)

	persisted := FromPersistedRecord(map[string]interface{}{
		"languages":       []interface{}{map[string]interface{}{"name": "Spanish", "level": "Native"}},
		"parsed_sections": map[string]interface{}{"talks": []interface{}{"GopherCon"}},
	})
	require.Len(t, persisted.Languages, 1)
	assert.Equal(t, model.Language{Language: "Spanish", Proficiency: "Native"}, persisted.Languages[0])
	assert.Contains(t, persisted.CustomSections, "talks")
}

func TestNormalizerDoesNotMutateInput(t *testing.T) {
	in := map[string]interface{}{
		"name":       "Jane",
		"experience": []interface{}{map[string]interface{}{"title": "Engineer"}},
	}
	_ = FromLegacyFlat(in)

	exp := in["experience"].([]interface{})[0].(map[string]interface{})
	_, hasID := exp["id"]
	assert.False(t, hasID)
	assert.Len(t, in, 2)
}
