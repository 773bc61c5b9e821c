package textutil

import (
	"strings"
	"unicode"
)

// Wrap breaks text into lines of at most width characters, splitting on word boundaries. A single
// word longer than width occupies its own line unbroken.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	var (
		lines         []string
		currentLine   []string
		currentLength int
	)
	for _, word := range words {
		if currentLength+len(word)+1 > width {
			if len(currentLine) > 0 {
				lines = append(lines, strings.Join(currentLine, " "))
				currentLine = []string{word}
				currentLength = len(word)
			} else {
				lines = append(lines, word)
			}
		} else {
			currentLine = append(currentLine, word)
			if currentLength == 0 {
				currentLength = len(word)
			} else {
				currentLength += len(word) + 1
			}
		}
	}
	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}
	return lines
}

// Hyphenate renders underscores as hyphens, the conventional spelling for command and flag names.
func Hyphenate(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// Kebab converts a Go identifier like NoColor or APIKey to its hyphenated command-line form
// (no-color, api-key). Underscores are rendered as hyphens as well.
func Kebab(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(runes) + 2)
	for i, r := range runes {
		switch {
		case r == '_':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			// Start a new segment on a case boundary, keeping acronym runs like "API" together.
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
