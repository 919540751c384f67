package entities

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-screener/internal/parsing"
)

var roleTerms = []string{
	"engineer", "developer", "scientist", "analyst", "manager", "consultant",
	"architect", "intern", "lead", "principal", "director", "officer", "specialist",
	"coordinator", "administrator", "designer", "programmer",
}

// techTerms are frequently mis-tagged as organizations or places.
var techTerms = map[string]bool{
	"python": true, "java": true, "javascript": true, "typescript": true, "c++": true, "c#": true,
	"tensorflow": true, "pytorch": true, "keras": true, "scikit-learn": true, "sklearn": true,
	"pandas": true, "numpy": true, "scipy": true, "matplotlib": true,
	"aws": true, "azure": true, "gcp": true, "google cloud": true,
	"docker": true, "kubernetes": true, "k8s": true,
	"mongodb": true, "postgresql": true, "mysql": true, "redis": true,
	"react": true, "angular": true, "vue": true, "node.js": true, "nodejs": true,
	"sql": true, "nosql": true, "git": true, "github": true, "gitlab": true,
	"linux": true, "unix": true, "windows": true,
	"html": true, "css": true, "json": true, "xml": true, "yaml": true,
	"api": true, "rest": true, "graphql": true,
	"ml": true, "ai": true, "nlp": true, "cv": true, "mlops": true, "devops": true,
	"spark": true, "hadoop": true, "kafka": true, "airflow": true,
	"jupyter": true, "anaconda": true, "conda": true,
}

var (
	yearsRegex     = regexp.MustCompile(`(\d{1,2})\s*\+?\s*(?:years|yrs|year)`)
	yearRangeRegex = regexp.MustCompile(`(20\d{2})\D{0,6}(20\d{2})`)
)

// IsTechTerm reports whether text exactly matches the technical-term blocklist after lower/trim.
// Partial matches such as "Python Software Foundation" are not blocked.
func IsTechTerm(text string) bool {
	return techTerms[parsing.NormalizeKey(text)]
}

func hasRoleTerm(lowered string) bool {
	for _, term := range roleTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// ExtractTitles applies the header-line and role-sentence title heuristics. Titles are lower-cased.
func ExtractTitles(text string) []string {
	var titles []string

	lines := parsing.SplitLines(text)
	if len(lines) > 0 {
		first := lines[0]
		lowered := strings.ToLower(first)
		words := len(strings.Fields(first))
		switch {
		case words <= 8 && hasRoleTerm(lowered):
			titles = append(titles, lowered)
		case words > 1 && words <= 6:
			titles = append(titles, lowered)
		}
	}

	if len(titles) == 0 {
		for _, sentence := range parsing.SplitSentences(text) {
			lowered := strings.ToLower(sentence)
			if hasRoleTerm(lowered) {
				titles = append(titles, lowered)
				break
			}
		}
	}

	return parsing.DedupePreserveOrder(titles)
}

// ExtractExperienceYears returns the largest "<N> years" figure in text, else the widest
// 20XX..20YY span, else 0. Never negative.
func ExtractExperienceYears(text string) int {
	lowered := strings.ToLower(text)

	best := -1
	for _, m := range yearsRegex.FindAllStringSubmatch(lowered, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > best {
			best = n
		}
	}
	if best >= 0 {
		return best
	}

	found := false
	for _, m := range yearRangeRegex.FindAllStringSubmatch(lowered, -1) {
		start, errStart := strconv.Atoi(m[1])
		end, errEnd := strconv.Atoi(m[2])
		if errStart != nil || errEnd != nil {
			continue
		}
		if span := end - start; !found || span > best {
			best = span
			found = true
		}
	}
	if found && best > 0 {
		return best
	}
	return 0
}
