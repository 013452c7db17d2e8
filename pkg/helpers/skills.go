package helpers

// Skill vocabularies used to split a flat technical skill list into
// presentation buckets. Matching is exact: "react" is not "React".
var (
	frontendSkills = toSet(
		"React", "React.js", "Next.js", "Vue", "Vue.js", "Nuxt.js", "Angular", "Svelte",
		"HTML", "HTML5", "CSS", "CSS3", "Sass", "SCSS", "Tailwind CSS", "Bootstrap",
		"JavaScript", "TypeScript", "Redux", "jQuery", "Material UI", "Chakra UI",
	)
	backendSkills = toSet(
		"Node.js", "Express", "Express.js", "NestJS", "Python", "Django", "Flask", "FastAPI",
		"Java", "Spring", "Spring Boot", "Go", "Golang", "Ruby", "Ruby on Rails", "Rails",
		"PHP", "Laravel", "C#", ".NET", "ASP.NET", "Kotlin", "Rust", "Elixir",
		"PostgreSQL", "MySQL", "MongoDB", "Redis", "SQLite", "SQL", "GraphQL", "REST",
		"gRPC", "Kafka", "RabbitMQ",
	)
	toolSkills = toSet(
		"Docker", "Kubernetes", "Git", "GitHub", "GitLab", "Bitbucket", "Jenkins",
		"GitHub Actions", "CI/CD", "AWS", "Azure", "GCP", "Google Cloud", "Terraform",
		"Ansible", "Webpack", "Vite", "Babel", "npm", "Yarn", "Jira", "Figma", "Postman",
		"Linux", "Nginx", "VS Code",
	)
)

func toSet(items ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}

// IsFrontend reports whether skill is a known frontend technology.
func IsFrontend(skill string) bool {
	_, ok := frontendSkills[skill]
	return ok
}

func IsBackend(skill string) bool {
	_, ok := backendSkills[skill]
	return ok
}

func IsTool(skill string) bool {
	_, ok := toolSkills[skill]
	return ok
}
