package usecase

import (
	"strings"

	"resume-studio/internal/model"

	"github.com/tidwall/gjson"
)

// fieldPaths is an ordered list of gjson paths. The first path holding a
// usable value wins, so a new legacy alias is one more entry in a table.
type fieldPaths []string

func (p fieldPaths) str(r gjson.Result) string {
	for _, path := range p {
		v := r.Get(path)
		switch v.Type {
		case gjson.String:
			if strings.TrimSpace(v.Str) != "" {
				return v.Str
			}
		case gjson.Number:
			return v.Raw
		}
	}
	return ""
}

func (p fieldPaths) boolean(r gjson.Result) bool {
	for _, path := range p {
		v := r.Get(path)
		switch v.Type {
		case gjson.True:
			return true
		case gjson.False:
			return false
		case gjson.String:
			return strings.EqualFold(strings.TrimSpace(v.Str), "true")
		case gjson.Number:
			return v.Num != 0
		}
	}
	return false
}

// list returns the elements of the first candidate that is an array.
// Candidates holding anything else are skipped; no candidate gives nil.
func (p fieldPaths) list(r gjson.Result) []gjson.Result {
	for _, path := range p {
		if v := r.Get(path); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}

// labels flattens a list of labels. Object items contribute their name
// or title; blank items are dropped.
func (p fieldPaths) labels(r gjson.Result) []string {
	out := []string{}
	for _, it := range p.list(r) {
		s := ""
		switch {
		case it.Type == gjson.String:
			s = it.Str
		case it.Type == gjson.Number:
			s = it.Raw
		case it.IsObject():
			s = labelPaths.str(it)
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (p fieldPaths) object(r gjson.Result) map[string]interface{} {
	for _, path := range p {
		v := r.Get(path)
		if !v.IsObject() {
			continue
		}
		if m, ok := v.Value().(map[string]interface{}); ok {
			return m
		}
	}
	return map[string]interface{}{}
}

type personalField struct {
	paths fieldPaths
	set   func(p *model.Personal, v string)
}

// handleURL derives a profile URL from a bare handle ("jane-doe") when the
// input has no explicit URL for it.
type handleURL struct {
	paths  fieldPaths
	prefix string
	target func(p *model.Personal) *string
}

// sourceTable describes one input provenance.
type sourceTable struct {
	name     string
	personal []personalField
	handles  []handleURL

	summary        fieldPaths
	experience     fieldPaths
	education      fieldPaths
	projects       fieldPaths
	certifications fieldPaths
	languages      fieldPaths
	publications   fieldPaths
	awards         fieldPaths
	volunteering   fieldPaths
	interests      fieldPaths

	technicalSkills fieldPaths
	softSkills      fieldPaths
	languageSkills  fieldPaths

	languageName  fieldPaths
	languageLevel fieldPaths

	custom fieldPaths
}

// Entry-level lookups shared by every provenance.
var (
	labelPaths = fieldPaths{"name", "title", "label", "language"}
	idPaths    = fieldPaths{"id", "_id"}

	startPaths   = fieldPaths{"start_date", "startDate", "from", "start"}
	endPaths     = fieldPaths{"end_date", "endDate", "to", "end"}
	currentPaths = fieldPaths{"current", "is_current", "isCurrent", "present"}
	locPaths     = fieldPaths{"location", "city"}
	descPaths    = fieldPaths{"description", "summary", "details"}
	urlPaths     = fieldPaths{"url", "link", "website"}
	datePaths    = fieldPaths{"date", "issue_date", "issued", "year"}

	expTitlePaths        = fieldPaths{"title", "position", "role", "job_title"}
	expCompanyPaths      = fieldPaths{"company", "employer", "organization"}
	expAchievementPaths  = fieldPaths{"achievements", "highlights", "bullets", "responsibilities"}
	eduDegreePaths       = fieldPaths{"degree", "qualification", "field_of_study"}
	eduInstitutionPaths  = fieldPaths{"institution", "school", "university"}
	eduGradePaths        = fieldPaths{"grade", "gpa", "score"}
	projNamePaths        = fieldPaths{"name", "title"}
	projTechPaths        = fieldPaths{"technologies", "tech_stack", "stack", "tools"}
	projHighlightPaths   = fieldPaths{"highlights", "achievements", "bullets"}
	certNamePaths        = fieldPaths{"name", "title"}
	certIssuerPaths      = fieldPaths{"issuer", "organization", "authority"}
	certURLPaths         = fieldPaths{"url", "link", "credential_url"}
	pubTitlePaths        = fieldPaths{"title", "name"}
	pubPublisherPaths    = fieldPaths{"publisher", "journal", "venue"}
	pubDescPaths         = fieldPaths{"description", "summary", "outline"}
	awardTitlePaths      = fieldPaths{"title", "name"}
	awardIssuerPaths     = fieldPaths{"issuer", "awarder", "organization"}
	volRolePaths         = fieldPaths{"role", "position", "title"}
	volOrganizationPaths = fieldPaths{"organization", "company"}
)

func setFullName(p *model.Personal, v string)         { p.FullName = v }
func setJobTitle(p *model.Personal, v string)         { p.JobTitle = v }
func setHeadline(p *model.Personal, v string)         { p.Headline = v }
func setEmail(p *model.Personal, v string)            { p.Email = v }
func setPhone(p *model.Personal, v string)            { p.Phone = v }
func setLocation(p *model.Personal, v string)         { p.Location = v }
func setPortfolioURL(p *model.Personal, v string)     { p.PortfolioURL = v }
func setPortfolioDisplay(p *model.Personal, v string) { p.PortfolioDisplay = v }
func setLinkedinURL(p *model.Personal, v string)      { p.LinkedinURL = v }
func setLinkedinDisplay(p *model.Personal, v string)  { p.LinkedinDisplay = v }
func setGithubURL(p *model.Personal, v string)        { p.GithubURL = v }
func setGithubDisplay(p *model.Personal, v string)    { p.GithubDisplay = v }

// legacyTable covers upload-parse results and old form state: flat
// top-level names, optionally nested under "personal".
var legacyTable = sourceTable{
	name: "legacy",
	personal: []personalField{
		{fieldPaths{"personal.full_name", "personal.name", "full_name", "name", "fullName"}, setFullName},
		{fieldPaths{"personal.job_title", "job_title", "jobTitle", "position"}, setJobTitle},
		{fieldPaths{"personal.headline", "headline", "tagline"}, setHeadline},
		{fieldPaths{"personal.email", "email", "contact.email"}, setEmail},
		{fieldPaths{"personal.phone", "phone", "phone_number", "contact.phone"}, setPhone},
		{fieldPaths{"personal.location", "location", "address", "contact.location"}, setLocation},
		{fieldPaths{"personal.portfolio_url", "portfolio_url", "website_url"}, setPortfolioURL},
		{fieldPaths{"personal.portfolio_display", "portfolio_display", "website_display"}, setPortfolioDisplay},
		{fieldPaths{"personal.linkedin_url", "linkedin_url"}, setLinkedinURL},
		{fieldPaths{"personal.linkedin_display", "linkedin_display"}, setLinkedinDisplay},
		{fieldPaths{"personal.github_url", "github_url"}, setGithubURL},
		{fieldPaths{"personal.github_display", "github_display"}, setGithubDisplay},
	},
	handles: []handleURL{
		{fieldPaths{"personal.linkedin", "linkedin"}, "https://linkedin.com/in/", func(p *model.Personal) *string { return &p.LinkedinURL }},
		{fieldPaths{"personal.github", "github"}, "https://github.com/", func(p *model.Personal) *string { return &p.GithubURL }},
		{fieldPaths{"personal.website", "website", "portfolio"}, "https://", func(p *model.Personal) *string { return &p.PortfolioURL }},
	},
	summary:         fieldPaths{"summary", "professional_summary", "objective", "about"},
	experience:      fieldPaths{"experience", "work_experience", "experiences"},
	education:       fieldPaths{"education"},
	projects:        fieldPaths{"projects"},
	certifications:  fieldPaths{"certifications", "certificates"},
	languages:       fieldPaths{"languages"},
	publications:    fieldPaths{"publications"},
	awards:          fieldPaths{"awards", "honors"},
	volunteering:    fieldPaths{"volunteering", "volunteer", "volunteer_experience"},
	interests:       fieldPaths{"interests", "hobbies"},
	technicalSkills: fieldPaths{"skills.technical", "technical_skills", "skills"},
	softSkills:      fieldPaths{"skills.soft", "soft_skills"},
	languageSkills:  fieldPaths{"skills.languages", "language_skills"},
	languageName:    fieldPaths{"language", "name"},
	languageLevel:   fieldPaths{"proficiency", "level"},
	custom:          fieldPaths{"customSections", "custom_sections"},
}

// persistedTable covers records read back from the resumes store. It has
// no handle synthesis: stored records always carry explicit URLs.
var persistedTable = sourceTable{
	name: "persisted",
	personal: []personalField{
		{fieldPaths{"personal_info.full_name", "personal.full_name"}, setFullName},
		{fieldPaths{"personal_info.job_title", "personal.job_title"}, setJobTitle},
		{fieldPaths{"personal_info.headline", "personal.headline"}, setHeadline},
		{fieldPaths{"personal_info.email", "personal.email"}, setEmail},
		{fieldPaths{"personal_info.phone", "personal.phone"}, setPhone},
		{fieldPaths{"personal_info.location", "personal.location"}, setLocation},
		{fieldPaths{"personal_info.portfolio_url", "personal.portfolio_url"}, setPortfolioURL},
		{fieldPaths{"personal_info.portfolio_display", "personal.portfolio_display"}, setPortfolioDisplay},
		{fieldPaths{"personal_info.linkedin_url", "personal.linkedin_url"}, setLinkedinURL},
		{fieldPaths{"personal_info.linkedin_display", "personal.linkedin_display"}, setLinkedinDisplay},
		{fieldPaths{"personal_info.github_url", "personal.github_url"}, setGithubURL},
		{fieldPaths{"personal_info.github_display", "personal.github_display"}, setGithubDisplay},
	},
	summary:         fieldPaths{"summary"},
	experience:      fieldPaths{"experience", "work_experience"},
	education:       fieldPaths{"education"},
	projects:        fieldPaths{"projects"},
	certifications:  fieldPaths{"certifications"},
	languages:       fieldPaths{"languages"},
	publications:    fieldPaths{"publications"},
	awards:          fieldPaths{"awards"},
	volunteering:    fieldPaths{"volunteering"},
	interests:       fieldPaths{"interests"},
	technicalSkills: fieldPaths{"skills.technical"},
	softSkills:      fieldPaths{"skills.soft"},
	languageSkills:  fieldPaths{"skills.languages"},
	languageName:    fieldPaths{"name", "language"},
	languageLevel:   fieldPaths{"level", "proficiency"},
	custom:          fieldPaths{"parsed_sections", "customSections"},
}
