package parsing

import "unicode"

// Token is a span of text with its byte offsets in the source string.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize splits text into word and punctuation tokens.
//
// Words are runs of letters, digits, '_', '+' and '#', so "c++" and "c#" stay whole.
// A '.' joins a word only when both neighbours are letters or digits ("node.js", "3.5").
// Every other non-space rune is a token of its own, which splits "ci/cd" and "scikit-learn"
// at the punctuation. Matching phrases token by token therefore never matches inside a word.
func Tokenize(text string) []Token {
	runes := []rune(text)
	offsets := make([]int, len(runes)+1)
	pos := 0
	for i, r := range runes {
		offsets[i] = pos
		pos += len(string(r))
	}
	offsets[len(runes)] = pos

	var tokens []Token
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case isWordRune(r):
			j := i + 1
			for j < len(runes) {
				if isWordRune(runes[j]) {
					j++
					continue
				}
				if runes[j] == '.' && j+1 < len(runes) && isAlnum(runes[j-1]) && isAlnum(runes[j+1]) {
					j++
					continue
				}
				break
			}
			tokens = append(tokens, Token{Text: string(runes[i:j]), Start: offsets[i], End: offsets[j]})
			i = j
		default:
			tokens = append(tokens, Token{Text: string(r), Start: offsets[i], End: offsets[i+1]})
			i++
		}
	}
	return tokens
}

// TokenTexts returns just the token strings of Tokenize(text).
func TokenTexts(text string) []string {
	tokens := Tokenize(text)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '+' || r == '#'
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
