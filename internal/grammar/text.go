package grammar

import (
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^a-z0-9\s']`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize lowercases, turns punctuation into spaces and collapses whitespace.
func Normalize(s string) string {
	s = nonWord.ReplaceAllString(strings.ToLower(s), " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

type WrongToken struct {
	Index    int    `json:"index"`
	Actual   string `json:"actual"`
	Expected string `json:"expected"`
}

// DiffTokens compares token by token up to the longer of the two inputs;
// missing tokens compare as "".
func DiffTokens(actual, expected string) []WrongToken {
	a, e := Tokens(actual), Tokens(expected)
	n := max(len(a), len(e))

	wrong := []WrongToken{}
	for i := 0; i < n; i++ {
		got, want := at(a, i), at(e, i)
		if got != want {
			wrong = append(wrong, WrongToken{Index: i, Actual: got, Expected: want})
		}
	}
	return wrong
}

func at(tokens []string, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return ""
}
