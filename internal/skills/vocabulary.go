// Package skills provides lexical skill-phrase matching against a skill vocabulary.
package skills

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadVocabulary reads a newline-delimited skill list.
// Blank lines are ignored; phrases are lower-cased and deduplicated keeping the first occurrence.
func LoadVocabulary(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	vocabulary := make([]string, 0)
	seen := make(map[string]bool)
	for scanner.Scan() {
		phrase := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if phrase == "" || seen[phrase] {
			continue
		}
		seen[phrase] = true
		vocabulary = append(vocabulary, phrase)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Message: "failed to read vocabulary", Cause: err}
	}
	return vocabulary, nil
}

// LoadVocabularyFile reads a skill list from path.
func LoadVocabularyFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to open vocabulary file %s", path), Cause: err}
	}
	defer func() { _ = f.Close() }()

	return LoadVocabulary(f)
}
