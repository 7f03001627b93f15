package skills

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FindLanguages returns canonical languages mentioned in text, sorted.
func FindLanguages(text string) []string {
	return find(text, Languages)
}

// FindFrameworks returns canonical frameworks mentioned in text, sorted.
func FindFrameworks(text string) []string {
	return find(text, Frameworks)
}

// Mentions reports whether text contains any surface of the canonical name.
// Names outside the vocabulary fall back to a case-insensitive word match.
func Mentions(text, canonical string) bool {
	term, ok := byCanonical[Canonical(canonical)]
	if !ok {
		return containsWord(text, canonical, false)
	}
	return termIn(text, term)
}

func find(text string, vocab []Term) []string {
	var found []string
	for i := range vocab {
		if termIn(text, &vocab[i]) {
			found = append(found, vocab[i].Canonical)
		}
	}
	sort.Strings(found)
	return found
}

func termIn(text string, term *Term) bool {
	for _, s := range term.Surfaces {
		caseSensitive := term.CaseSensitive || utf8.RuneCountInString(s) <= 2
		if containsWord(text, s, caseSensitive) {
			return true
		}
	}
	return false
}

// containsWord finds needle in text where the neighbouring runes are not letters
// or digits. Short case-sensitive needles also reject a trailing '+' or '#' so
// "C" does not match inside "C++".
func containsWord(text, needle string, caseSensitive bool) bool {
	if needle == "" {
		return false
	}
	haystack := text
	if !caseSensitive {
		haystack = strings.ToLower(text)
		needle = strings.ToLower(needle)
	}
	short := caseSensitive && utf8.RuneCountInString(needle) <= 2
	offset := 0
	for {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end, short) {
			return true
		}
		offset = start + 1
		if offset >= len(haystack) {
			return false
		}
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int, short bool) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	if short && (r == '+' || r == '#') {
		return false
	}
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
