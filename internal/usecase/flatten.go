package usecase

import (
	"encoding/json"
	"net/url"
	"strings"

	"resume-studio/pkg/helpers"

	"golang.org/x/net/publicsuffix"
)

var listSections = []string{
	"experience", "education", "projects", "certifications", "languages",
	"publications", "awards", "volunteering", "interests",
}

// personalAliases are exposed at the top level for templates written
// against the flat shape.
var personalAliases = []string{
	"full_name", "job_title", "headline", "email", "phone", "location",
	"portfolio_url", "portfolio_display", "linkedin_url", "linkedin_display",
	"github_url", "github_display",
}

// DocumentMap turns a document (or anything JSON-shaped) into the loosely
// typed map Flatten works on. Non-object input gives an empty map.
func DocumentMap(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil || m == nil {
		return map[string]interface{}{}
	}
	return m
}

// Flatten builds the projection templates bind against: the nested
// sections with every missing part defaulted, the legacy top-level names,
// and has* presence flags. raw is not modified.
func Flatten(raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw)+48)
	for k, v := range raw {
		out[k] = v
	}

	personal := asMap(raw["personal"])
	out["personal"] = personal

	summary := asString(raw["summary"])
	out["summary"] = summary

	for _, k := range listSections {
		out[k] = asList(raw[k])
	}
	out["certifications"] = labelCertifications(out["certifications"].([]interface{}))

	skills := asMap(raw["skills"])
	technical := asList(skills["technical"])
	soft := asList(skills["soft"])
	langSkills := asList(skills["languages"])
	skills["technical"], skills["soft"], skills["languages"] = technical, soft, langSkills
	out["skills"] = skills

	out["customSections"] = asMap(raw["customSections"])

	for _, k := range personalAliases {
		out[k] = firstString(personal[k], raw[k])
	}
	out["name"] = firstString(personal["full_name"], raw["name"], raw["full_name"])
	out["technical_skills"] = technical
	out["soft_skills"] = soft
	out["language_skills"] = langSkills

	website := backfill(raw, "website", out["portfolio_url"])
	linkedin := backfill(raw, "linkedin", out["linkedin_url"])
	github := backfill(raw, "github", out["github_url"])
	out["website"], out["linkedin"], out["github"] = website, linkedin, github

	out["hasExperience"] = helpers.Exists(out["experience"])
	out["hasEducation"] = helpers.Exists(out["education"])
	out["hasProjects"] = helpers.Exists(out["projects"])
	out["hasCertifications"] = helpers.Exists(out["certifications"])
	out["hasLanguages"] = helpers.Exists(out["languages"])
	out["hasPublications"] = helpers.Exists(out["publications"])
	out["hasAwards"] = helpers.Exists(out["awards"])
	out["hasVolunteering"] = helpers.Exists(out["volunteering"])
	out["hasInterests"] = helpers.Exists(out["interests"])
	out["hasTechnicalSkills"] = len(technical) > 0
	out["hasSoftSkills"] = len(soft) > 0
	out["hasLanguageSkills"] = len(langSkills) > 0
	out["hasSkills"] = len(technical)+len(soft)+len(langSkills) > 0
	out["hasSummary"] = helpers.Exists(summary)
	out["hasPersonalUrl"] = website != ""
	out["hasLinkedin"] = linkedin != ""
	out["hasGithub"] = github != ""

	return out
}

// labelCertifications copies each certification and adds url_label, the
// registrable domain of its url. Invalid urls are blanked.
func labelCertifications(items []interface{}) []interface{} {
	out := make([]interface{}, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]interface{})
		if !ok {
			out = append(out, it)
			continue
		}
		c := make(map[string]interface{}, len(m)+1)
		for k, v := range m {
			c[k] = v
		}
		u := cleanURL(asString(m["url"]))
		c["url"] = u
		c["url_label"] = hostLabel(u)
		out = append(out, c)
	}
	return out
}

func hostLabel(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "link"
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return host
}

// backfill keeps a non-blank legacy value, falling back to the canonical
// URL.
func backfill(raw map[string]interface{}, key string, canonical interface{}) string {
	if s := strings.TrimSpace(asString(raw[key])); s != "" {
		return s
	}
	return asString(canonical)
}

func firstString(vals ...interface{}) string {
	for _, v := range vals {
		if s := asString(v); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asList(v interface{}) []interface{} {
	switch l := v.(type) {
	case []interface{}:
		return l
	case []string:
		out := make([]interface{}, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	}
	return []interface{}{}
}

func asMap(v interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	if m, ok := v.(map[string]interface{}); ok {
		for k, val := range m {
			out[k] = val
		}
	}
	return out
}
