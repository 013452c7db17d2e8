package usecase

import (
	"encoding/json"
	"strings"

	"resume-studio/internal/metrics"
	"resume-studio/internal/model"
	"resume-studio/pkg/helpers"

	"github.com/tidwall/gjson"
)

// EmptyDocument is the starting point for a resume with no content yet.
func EmptyDocument() *model.Document {
	metrics.Normalizations.WithLabelValues("empty").Inc()
	return model.EmptyDocument()
}

// FromLegacyFlat normalizes upload-parse results and old form state. It
// accepts nil, a JSON string or bytes, an array (first element wins) or
// any object; unusable input yields an empty document.
func FromLegacyFlat(input interface{}) *model.Document {
	metrics.Normalizations.WithLabelValues(legacyTable.name).Inc()
	return buildDocument(decodeLegacy(input), legacyTable)
}

// FromPersistedRecord normalizes a record read back from the resumes
// store. Records are already structured: strings and arrays are not
// unwrapped and yield an empty document.
func FromPersistedRecord(input interface{}) *model.Document {
	metrics.Normalizations.WithLabelValues(persistedTable.name).Inc()
	return buildDocument(decodePersisted(input), persistedTable)
}

func decodeLegacy(input interface{}) gjson.Result {
	switch v := input.(type) {
	case nil:
		return gjson.Result{}
	case string:
		if !gjson.Valid(v) {
			return gjson.Result{}
		}
		return firstObject(gjson.Parse(v))
	case []byte:
		if !gjson.ValidBytes(v) {
			return gjson.Result{}
		}
		return firstObject(gjson.ParseBytes(v))
	case json.RawMessage:
		return decodeLegacy([]byte(v))
	}
	return firstObject(encode(input))
}

func decodePersisted(input interface{}) gjson.Result {
	if input == nil {
		return gjson.Result{}
	}
	r := encode(input)
	if !r.IsObject() {
		return gjson.Result{}
	}
	return r
}

func firstObject(r gjson.Result) gjson.Result {
	if r.IsArray() {
		items := r.Array()
		if len(items) == 0 {
			return gjson.Result{}
		}
		r = items[0]
	}
	if !r.IsObject() {
		return gjson.Result{}
	}
	return r
}

func encode(v interface{}) gjson.Result {
	b, err := json.Marshal(v)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.ParseBytes(b)
}

func buildDocument(r gjson.Result, t sourceTable) *model.Document {
	doc := model.EmptyDocument()

	for _, f := range t.personal {
		f.set(&doc.Personal, strings.TrimSpace(f.paths.str(r)))
	}
	doc.Personal.PortfolioURL = cleanURL(doc.Personal.PortfolioURL)
	doc.Personal.LinkedinURL = cleanURL(doc.Personal.LinkedinURL)
	doc.Personal.GithubURL = cleanURL(doc.Personal.GithubURL)
	for _, h := range t.handles {
		if target := h.target(&doc.Personal); *target == "" {
			*target = synthesizeURL(h.paths.str(r), h.prefix)
		}
	}

	doc.Summary = t.summary.str(r)

	for _, it := range t.experience.list(r) {
		if it.IsObject() {
			doc.Experience = append(doc.Experience, experienceFrom(it))
		}
	}
	for _, it := range t.education.list(r) {
		if it.IsObject() {
			doc.Education = append(doc.Education, educationFrom(it))
		}
	}
	for _, it := range t.projects.list(r) {
		if it.IsObject() {
			doc.Projects = append(doc.Projects, projectFrom(it))
		}
	}

	doc.Skills.Technical = t.technicalSkills.labels(r)
	doc.Skills.Soft = t.softSkills.labels(r)
	doc.Skills.Languages = t.languageSkills.labels(r)

	for _, it := range t.certifications.list(r) {
		if c, ok := certificationFrom(it); ok {
			doc.Certifications = append(doc.Certifications, c)
		}
	}
	for _, it := range t.languages.list(r) {
		if l, ok := languageFrom(it, t); ok {
			doc.Languages = append(doc.Languages, l)
		}
	}
	for _, it := range t.publications.list(r) {
		if p, ok := publicationFrom(it); ok {
			doc.Publications = append(doc.Publications, p)
		}
	}
	for _, it := range t.awards.list(r) {
		if a, ok := awardFrom(it); ok {
			doc.Awards = append(doc.Awards, a)
		}
	}
	for _, it := range t.volunteering.list(r) {
		if v, ok := volunteeringFrom(it); ok {
			doc.Volunteering = append(doc.Volunteering, v)
		}
	}
	doc.Interests = t.interests.labels(r)
	doc.CustomSections = t.custom.object(r)

	return doc
}

func entryID(r gjson.Result) string {
	if id := strings.TrimSpace(idPaths.str(r)); id != "" {
		return id
	}
	return model.NewEntryID()
}

func experienceFrom(r gjson.Result) model.Experience {
	return model.Experience{
		ID:           entryID(r),
		Title:        expTitlePaths.str(r),
		Company:      expCompanyPaths.str(r),
		Location:     locPaths.str(r),
		StartDate:    startPaths.str(r),
		EndDate:      endPaths.str(r),
		Current:      currentPaths.boolean(r),
		Description:  descPaths.str(r),
		Achievements: expAchievementPaths.labels(r),
	}
}

func educationFrom(r gjson.Result) model.Education {
	return model.Education{
		ID:          entryID(r),
		Degree:      eduDegreePaths.str(r),
		Institution: eduInstitutionPaths.str(r),
		Location:    locPaths.str(r),
		StartDate:   startPaths.str(r),
		EndDate:     endPaths.str(r),
		Current:     currentPaths.boolean(r),
		Grade:       eduGradePaths.str(r),
		Description: descPaths.str(r),
	}
}

func projectFrom(r gjson.Result) model.Project {
	return model.Project{
		ID:           entryID(r),
		Name:         projNamePaths.str(r),
		Description:  descPaths.str(r),
		Technologies: projTechPaths.labels(r),
		URL:          cleanURL(urlPaths.str(r)),
		StartDate:    startPaths.str(r),
		EndDate:      endPaths.str(r),
		Current:      currentPaths.boolean(r),
		Highlights:   projHighlightPaths.labels(r),
	}
}

// bareString reports the trimmed text of a string item, for the list
// categories that accept either strings or objects.
func bareString(r gjson.Result) (string, bool) {
	if r.Type != gjson.String {
		return "", false
	}
	s := strings.TrimSpace(r.Str)
	return s, s != ""
}

func certificationFrom(r gjson.Result) (model.Certification, bool) {
	if s, ok := bareString(r); ok {
		return model.Certification{Name: s}, true
	}
	if !r.IsObject() {
		return model.Certification{}, false
	}
	return model.Certification{
		Name:        certNamePaths.str(r),
		Issuer:      certIssuerPaths.str(r),
		Date:        datePaths.str(r),
		URL:         cleanURL(certURLPaths.str(r)),
		Description: descPaths.str(r),
	}, true
}

func languageFrom(r gjson.Result, t sourceTable) (model.Language, bool) {
	if s, ok := bareString(r); ok {
		return model.Language{Language: s}, true
	}
	if !r.IsObject() {
		return model.Language{}, false
	}
	l := model.Language{Language: t.languageName.str(r), Proficiency: t.languageLevel.str(r)}
	return l, l.Language != ""
}

func publicationFrom(r gjson.Result) (model.Publication, bool) {
	if s, ok := bareString(r); ok {
		return model.Publication{Title: s}, true
	}
	if !r.IsObject() {
		return model.Publication{}, false
	}
	return model.Publication{
		Title:       pubTitlePaths.str(r),
		Publisher:   pubPublisherPaths.str(r),
		Date:        datePaths.str(r),
		URL:         cleanURL(urlPaths.str(r)),
		Description: pubDescPaths.str(r),
	}, true
}

func awardFrom(r gjson.Result) (model.Award, bool) {
	if s, ok := bareString(r); ok {
		return model.Award{Title: s}, true
	}
	if !r.IsObject() {
		return model.Award{}, false
	}
	return model.Award{
		Title:       awardTitlePaths.str(r),
		Issuer:      awardIssuerPaths.str(r),
		Date:        datePaths.str(r),
		Description: descPaths.str(r),
	}, true
}

func volunteeringFrom(r gjson.Result) (model.Volunteering, bool) {
	if s, ok := bareString(r); ok {
		return model.Volunteering{Role: s}, true
	}
	if !r.IsObject() {
		return model.Volunteering{}, false
	}
	return model.Volunteering{
		Role:         volRolePaths.str(r),
		Organization: volOrganizationPaths.str(r),
		StartDate:    startPaths.str(r),
		EndDate:      endPaths.str(r),
		Current:      currentPaths.boolean(r),
		Description:  descPaths.str(r),
	}, true
}

// synthesizeURL builds a profile URL from a legacy handle. A value that is
// already an absolute URL is kept; a scheme-less URL gets https.
func synthesizeURL(handle, prefix string) string {
	h := strings.TrimSpace(handle)
	if h == "" {
		return ""
	}
	if helpers.IsValidURL(h) {
		return h
	}
	if strings.Contains(h, ".") && strings.Contains(h, "/") {
		return cleanURL("https://" + h)
	}
	return cleanURL(prefix + strings.Trim(h, "@/"))
}

// cleanURL keeps a URL only if it passes the strict check.
func cleanURL(raw string) string {
	s := strings.TrimSpace(raw)
	if !helpers.IsValidURL(s) {
		return ""
	}
	return s
}
