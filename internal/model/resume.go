package model

// Canonical resume document. Every consumer (renderer, validator,
// persistence) works on this shape; the normalizer is the only place that
// knows about the legacy and persisted input shapes.

type Personal struct {
	FullName         string `json:"full_name"`
	JobTitle         string `json:"job_title"`
	Headline         string `json:"headline"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Location         string `json:"location"`
	PortfolioURL     string `json:"portfolio_url"`
	PortfolioDisplay string `json:"portfolio_display"`
	LinkedinURL      string `json:"linkedin_url"`
	LinkedinDisplay  string `json:"linkedin_display"`
	GithubURL        string `json:"github_url"`
	GithubDisplay    string `json:"github_display"`
}

type Experience struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Current     bool   `json:"current"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
}

type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
}

type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Current      bool     `json:"current"`
	Highlights   []string `json:"highlights"`
}

type Certification struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type Publication struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Date        string `json:"date"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type Award struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type Volunteering struct {
	Role         string `json:"role"`
	Organization string `json:"organization"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

type Document struct {
	Personal       Personal               `json:"personal"`
	Summary        string                 `json:"summary"`
	Experience     []Experience           `json:"experience"`
	Education      []Education            `json:"education"`
	Skills         Skills                 `json:"skills"`
	Projects       []Project              `json:"projects"`
	Certifications []Certification        `json:"certifications"`
	Languages      []Language             `json:"languages"`
	Publications   []Publication          `json:"publications"`
	Awards         []Award                `json:"awards"`
	Volunteering   []Volunteering         `json:"volunteering"`
	Interests      []string               `json:"interests"`
	CustomSections map[string]interface{} `json:"customSections"`
}

// EmptyDocument returns a document with every declared field present.
// Lists are empty (never nil) so they encode as [] rather than null.
func EmptyDocument() *Document {
	return &Document{
		Experience:     []Experience{},
		Education:      []Education{},
		Skills:         Skills{Technical: []string{}, Soft: []string{}, Languages: []string{}},
		Projects:       []Project{},
		Certifications: []Certification{},
		Languages:      []Language{},
		Publications:   []Publication{},
		Awards:         []Award{},
		Volunteering:   []Volunteering{},
		Interests:      []string{},
		CustomSections: map[string]interface{}{},
	}
}
