// Package ingestion turns raw resume and job-description text into the forms the
// scoring engine consumes, and loads job descriptions from files or job-board URLs.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`http\S+|www\.\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	phonePattern      = regexp.MustCompile(`\b\d{10,}\b`)
	htmlTagPattern    = regexp.MustCompile(`<.*?>`)
	nonBasicPattern   = regexp.MustCompile(`[^a-zA-Z0-9,.?!()\-\s]`)
	nonNERPattern     = regexp.MustCompile(`[^a-zA-Z0-9,.?!()&/\-\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	blankRunPattern   = regexp.MustCompile(`\n{3,}`)
)

// CleanText produces the cleaned_text form of a resume: URLs, e-mail addresses,
// long digit runs and HTML tags are dropped, every character outside letters,
// digits, whitespace and ,.?!()- becomes a space, and whitespace collapses to
// single spaces. Symbols such as + and # do not survive, so "C++" becomes "C".
func CleanText(text string) string {
	text = urlPattern.ReplaceAllString(text, " ")
	text = emailPattern.ReplaceAllString(text, " ")
	text = phonePattern.ReplaceAllString(text, " ")
	text = htmlTagPattern.ReplaceAllString(text, " ")
	text = nonBasicPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CleanForNER is a lighter variant for entity recognition. Capitalization, & and /
// are kept; URLs and e-mail addresses are removed.
func CleanForNER(text string) string {
	text = urlPattern.ReplaceAllString(text, " ")
	text = emailPattern.ReplaceAllString(text, " ")
	text = nonNERPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizeLayout tidies a document without flattening it: line endings become
// \n, trailing blanks are trimmed, and runs of blank lines shrink to one.
// Line structure matters to the title heuristics.
func NormalizeLayout(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Truncate returns at most maxRunes runes of text.
func Truncate(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := 0
	for i := range text {
		if runes == maxRunes {
			return text[:i]
		}
		runes++
	}
	return text
}
