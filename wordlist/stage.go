// Package wordlist turns harvested text fragments into password candidates.
// Fragments pass through an ordered list of filter stages and then through a
// chain generator that joins neighbouring words with glue characters.
package wordlist

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
)

// Stage is a single filter step. A stage must not modify its input slice and
// must not keep state between calls.
type Stage func(words []string) []string

// DefaultStages returns the normalization stages in the order they run.
func DefaultStages() []Stage {
	return []Stage{
		Lowercase,
		StripDigits,
		ASCIILettersOnly,
		StripSymbols,
	}
}

var (
	digits = runes.Remove(runes.In(unicode.Nd))

	// Whitespace survives so the chain generator can split on it.
	nonLetters = runes.Remove(runes.Predicate(func(r rune) bool {
		return !isASCIILetter(r) && !unicode.IsSpace(r)
	}))

	symbols = runes.Remove(runes.Predicate(isASCIISymbol))
)

// Lowercase maps every character to lower case.
func Lowercase(words []string) []string {
	// Casers carry state, so each call gets its own.
	caser := cases.Lower(language.Und)
	return apply(words, caser.String)
}

// StripDigits removes every Unicode decimal digit.
func StripDigits(words []string) []string {
	return apply(words, digits.String)
}

// ASCIILettersOnly removes everything except A-Z, a-z and whitespace.
func ASCIILettersOnly(words []string) []string {
	return apply(words, nonLetters.String)
}

// StripSymbols removes ASCII punctuation and symbols:
//
//	~`!@#$%^&*()-_=+[{]}\|'";:/?.>,<
//
// After ASCIILettersOnly there is nothing left for it to remove. It commutes
// with ASCIILettersOnly, so either order yields the same output.
func StripSymbols(words []string) []string {
	return apply(words, symbols.String)
}

// apply maps fn over words and drops results that are empty or whitespace.
func apply(words []string, fn func(string) string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = fn(w)
		if strings.TrimSpace(w) == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isASCIISymbol(r rune) bool {
	return ('!' <= r && r <= '/') ||
		(':' <= r && r <= '@') ||
		('[' <= r && r <= '`') ||
		('{' <= r && r <= '~')
}
