package parsing

import "strings"

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"ml":         "Machine Learning",
	"postgres":   "PostgreSQL",
}

// DefaultSkillVocabulary is the list of technologies, tools and methods the
// rule-based job description parser looks for. Entries are written in their
// display casing.
var DefaultSkillVocabulary = []string{
	// Programming languages
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust", "Ruby", "PHP", "Swift", "Kotlin",
	// Frontend
	"React", "Angular", "Vue", "Vue.js", "Next.js", "Nuxt", "Svelte", "jQuery", "HTML", "CSS", "Sass", "Less",
	// Backend frameworks
	"Node.js", "NodeJS", "Django", "Flask", "FastAPI", "Spring", "Express", "Nest.js", "Laravel", "Rails",
	// Databases
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis", "Cassandra", "Elasticsearch", "DynamoDB", "Oracle",
	// Cloud and DevOps
	"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "K8s", "Terraform", "Ansible", "Jenkins",
	"Git", "CI/CD", "GitHub Actions", "GitLab", "CircleCI", "Travis CI",
	// ML and AI
	"Machine Learning", "ML", "AI", "Artificial Intelligence", "Deep Learning", "TensorFlow", "PyTorch", "Keras",
	"scikit-learn", "Pandas", "NumPy", "Data Science",
	// Practices
	"Agile", "Scrum", "Kanban", "DevOps", "Microservices", "REST API", "GraphQL", "gRPC",
	// Tools
	"Jira", "Confluence", "Slack", "Figma", "Adobe", "Photoshop", "Illustrator",
}

// vocabularyCasing maps lower-case vocabulary terms to their display casing
var vocabularyCasing = func() map[string]string {
	m := make(map[string]string, len(DefaultSkillVocabulary))
	for _, term := range DefaultSkillVocabulary {
		m[strings.ToLower(term)] = term
	}
	return m
}()

// canonicalSkill maps a vocabulary entry to the name reported for it
func canonicalSkill(term string) string {
	term = strings.TrimSpace(term)
	if canonical, ok := skillNormalizations[strings.ToLower(term)]; ok {
		return canonical
	}
	return term
}

// NormalizeSkillName maps a skill to its canonical display name. Known
// aliases and vocabulary terms get their fixed casing; other single words are
// title-cased, and multi-word phrases are kept as written.
func NormalizeSkillName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}
	if canonical, ok := vocabularyCasing[lower]; ok {
		return canonical
	}
	if strings.Contains(name, " ") {
		return name
	}

	switch {
	case name == strings.ToUpper(name) && len(name) > 1:
		// Shouted words that are not known acronyms: COBOL -> Cobol
		return name[:1] + strings.ToLower(name[1:])
	case name == lower:
		return strings.ToUpper(name[:1]) + name[1:]
	}
	return name
}

// NormalizeSkills canonicalizes skill names and drops case-insensitive duplicates
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if n := NormalizeSkillName(s); n != "" {
			out = appendUnique(out, n)
		}
	}
	return out
}
