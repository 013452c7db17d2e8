package usecase

import (
	"resume-studio/internal/model"
)

// ToLegacyFlat projects a document onto the flat shape older backends
// expect. Every URL is re-checked and dropped to "" when it does not
// parse strictly; the function never fails.
func ToLegacyFlat(doc *model.Document) map[string]interface{} {
	if doc == nil {
		doc = model.EmptyDocument()
	}
	p := doc.Personal
	portfolio := cleanURL(p.PortfolioURL)

	out := map[string]interface{}{
		"name":              p.FullName,
		"job_title":         p.JobTitle,
		"headline":          p.Headline,
		"email":             p.Email,
		"phone":             p.Phone,
		"location":          p.Location,
		"website":           portfolio,
		"portfolio_url":     portfolio,
		"portfolio_display": p.PortfolioDisplay,
		"linkedin_url":      cleanURL(p.LinkedinURL),
		"linkedin_display":  p.LinkedinDisplay,
		"github_url":        cleanURL(p.GithubURL),
		"github_display":    p.GithubDisplay,
		"summary":           doc.Summary,
		"technical_skills":  copyStrings(doc.Skills.Technical),
		"soft_skills":       copyStrings(doc.Skills.Soft),
		"language_skills":   copyStrings(doc.Skills.Languages),
		"interests":         copyStrings(doc.Interests),
		"custom_sections":   copyMap(doc.CustomSections),
	}

	experience := make([]interface{}, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		experience = append(experience, experienceMap(e))
	}
	out["experience"] = experience

	education := make([]interface{}, 0, len(doc.Education))
	for _, e := range doc.Education {
		education = append(education, educationMap(e))
	}
	out["education"] = education

	projects := make([]interface{}, 0, len(doc.Projects))
	for _, pr := range doc.Projects {
		projects = append(projects, projectMap(pr))
	}
	out["projects"] = projects

	certs := make([]interface{}, 0, len(doc.Certifications))
	for _, c := range doc.Certifications {
		certs = append(certs, map[string]interface{}{
			"name":        c.Name,
			"issuer":      c.Issuer,
			"date":        c.Date,
			"url":         cleanURL(c.URL),
			"description": c.Description,
		})
	}
	out["certifications"] = certs

	langs := make([]interface{}, 0, len(doc.Languages))
	for _, l := range doc.Languages {
		langs = append(langs, map[string]interface{}{"language": l.Language, "proficiency": l.Proficiency})
	}
	out["languages"] = langs

	out["publications"] = publicationMaps(doc.Publications)
	out["awards"] = awardMaps(doc.Awards)
	out["volunteering"] = volunteeringMaps(doc.Volunteering)
	return out
}

// ToPersistedRecord is the inverse of FromPersistedRecord: the content
// stored in the resumes table.
func ToPersistedRecord(doc *model.Document) map[string]interface{} {
	if doc == nil {
		doc = model.EmptyDocument()
	}
	p := doc.Personal

	experience := make([]interface{}, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		experience = append(experience, experienceMap(e))
	}
	education := make([]interface{}, 0, len(doc.Education))
	for _, e := range doc.Education {
		education = append(education, educationMap(e))
	}
	projects := make([]interface{}, 0, len(doc.Projects))
	for _, pr := range doc.Projects {
		projects = append(projects, projectMap(pr))
	}
	certs := make([]interface{}, 0, len(doc.Certifications))
	for _, c := range doc.Certifications {
		certs = append(certs, map[string]interface{}{
			"name": c.Name, "issuer": c.Issuer, "date": c.Date, "url": cleanURL(c.URL), "description": c.Description,
		})
	}
	langs := make([]interface{}, 0, len(doc.Languages))
	for _, l := range doc.Languages {
		langs = append(langs, map[string]interface{}{"name": l.Language, "level": l.Proficiency})
	}

	return map[string]interface{}{
		"personal_info": map[string]interface{}{
			"full_name":         p.FullName,
			"job_title":         p.JobTitle,
			"headline":          p.Headline,
			"email":             p.Email,
			"phone":             p.Phone,
			"location":          p.Location,
			"portfolio_url":     cleanURL(p.PortfolioURL),
			"portfolio_display": p.PortfolioDisplay,
			"linkedin_url":      cleanURL(p.LinkedinURL),
			"linkedin_display":  p.LinkedinDisplay,
			"github_url":        cleanURL(p.GithubURL),
			"github_display":    p.GithubDisplay,
		},
		"summary":    doc.Summary,
		"experience": experience,
		"education":  education,
		"projects":   projects,
		"skills": map[string]interface{}{
			"technical": copyStrings(doc.Skills.Technical),
			"soft":      copyStrings(doc.Skills.Soft),
			"languages": copyStrings(doc.Skills.Languages),
		},
		"certifications":  certs,
		"languages":       langs,
		"publications":    publicationMaps(doc.Publications),
		"awards":          awardMaps(doc.Awards),
		"volunteering":    volunteeringMaps(doc.Volunteering),
		"interests":       copyStrings(doc.Interests),
		"parsed_sections": copyMap(doc.CustomSections),
	}
}

func experienceMap(e model.Experience) map[string]interface{} {
	return map[string]interface{}{
		"id":           e.ID,
		"title":        e.Title,
		"company":      e.Company,
		"location":     e.Location,
		"start_date":   e.StartDate,
		"end_date":     e.EndDate,
		"current":      e.Current,
		"description":  e.Description,
		"achievements": copyStrings(e.Achievements),
	}
}

func educationMap(e model.Education) map[string]interface{} {
	return map[string]interface{}{
		"id":          e.ID,
		"degree":      e.Degree,
		"institution": e.Institution,
		"location":    e.Location,
		"start_date":  e.StartDate,
		"end_date":    e.EndDate,
		"current":     e.Current,
		"grade":       e.Grade,
		"description": e.Description,
	}
}

func projectMap(p model.Project) map[string]interface{} {
	return map[string]interface{}{
		"id":           p.ID,
		"name":         p.Name,
		"description":  p.Description,
		"technologies": copyStrings(p.Technologies),
		"url":          cleanURL(p.URL),
		"start_date":   p.StartDate,
		"end_date":     p.EndDate,
		"current":      p.Current,
		"highlights":   copyStrings(p.Highlights),
	}
}

func publicationMaps(pubs []model.Publication) []interface{} {
	out := make([]interface{}, 0, len(pubs))
	for _, p := range pubs {
		out = append(out, map[string]interface{}{
			"title":       p.Title,
			"publisher":   p.Publisher,
			"date":        p.Date,
			"url":         cleanURL(p.URL),
			"description": p.Description,
		})
	}
	return out
}

func awardMaps(awards []model.Award) []interface{} {
	out := make([]interface{}, 0, len(awards))
	for _, a := range awards {
		out = append(out, map[string]interface{}{
			"title":       a.Title,
			"issuer":      a.Issuer,
			"date":        a.Date,
			"description": a.Description,
		})
	}
	return out
}

func volunteeringMaps(items []model.Volunteering) []interface{} {
	out := make([]interface{}, 0, len(items))
	for _, v := range items {
		out = append(out, map[string]interface{}{
			"role":         v.Role,
			"organization": v.Organization,
			"start_date":   v.StartDate,
			"end_date":     v.EndDate,
			"current":      v.Current,
			"description":  v.Description,
		})
	}
	return out
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyMap(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
