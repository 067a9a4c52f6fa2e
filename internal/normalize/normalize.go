package normalize

import (
	"strings"
	"unicode"
)

// Mode selects how aggressively a question is cleaned before it is sent
// to the model. Two behaviors exist in the wild: the CLI strips
// punctuation, the web form keeps it.
type Mode int

const (
	// StripPunctuation removes every rune that is not a letter, digit,
	// underscore, or whitespace before tokenizing.
	StripPunctuation Mode = iota
	// KeepPunctuation lowercases and collapses whitespace only.
	KeepPunctuation
)

// Result holds the cleaned question text and its whitespace tokens.
// Tokens is empty exactly when Text is empty.
type Result struct {
	Text   string
	Tokens []string
}

// TokenCount returns the number of tokens in the normalized question.
func (r Result) TokenCount() int { return len(r.Tokens) }

// Process normalizes a raw question: lowercase, optional punctuation
// strip, whitespace runs collapsed to single spaces, ends trimmed.
// It is a pure function of its input, total over all strings, and
// idempotent: Process(Process(q, m).Text, m) == Process(q, m).
func Process(question string, mode Mode) Result {
	s := strings.ToLower(question)
	if mode == StripPunctuation {
		s = stripPunctuation(s)
	}
	tokens := strings.Fields(s)
	return Result{
		Text:   strings.Join(tokens, " "),
		Tokens: tokens,
	}
}

func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
