package sample

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	punctOnly = regexp.MustCompile(`^[\.\,\!\?\:\;\-\(\)]+$`)
	spaces    = regexp.MustCompile(`\s+`)
	slugDrop  = regexp.MustCompile(`[^a-z0-9_ʻ’'əöüğşıçāīū\-]+`)
)

// Split cuts text into sentences after '.', '?' or '!' followed by
// whitespace. The punctuation stays with its sentence.
func Split(text string) []string {
	text = strings.TrimSpace(spaces.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 1; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) || !isTerminal(runes[i-1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start:i])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// Accept reports whether the sentence has between min and max whitespace
// separated tokens and is not only punctuation.
func Accept(sentence string, min, max int) bool {
	n := len(strings.Fields(sentence))
	if n < min || n > max {
		return false
	}
	return !punctOnly.MatchString(sentence)
}

// Slug converts a category name to a file name friendly slug:
// "Oʻzbekiston tarixi" -> "oʻzbekiston_tarixi"
func Slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = spaces.ReplaceAllString(name, "_")
	name = slugDrop.ReplaceAllString(name, "")
	if name == "" {
		return "category"
	}
	return name
}

func isTerminal(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}
