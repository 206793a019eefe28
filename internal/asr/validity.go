package asr

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxLengthRatio = 3.0
	minLengthRatio = 0.15
	minWordOverlap = 0.3
)

// responsePrefixes mark a chat model answering instead of cleaning. The list
// covers English and French openers seen in the wild.
var responsePrefixes = []string{
	"here is",
	"here's",
	"voici",
	"sure",
	"certainly",
	"of course",
	"bien sur",
	"i'd be happy",
	"je serais",
	"the text",
	"le texte",
	"this is",
	"ceci est",
	"based on",
	"en fonction",
}

// rejectCleanup returns a non-empty reason when a cleanup candidate looks like
// a conversational response rather than the original text reworked.
func rejectCleanup(original, candidate string) string {
	origLen := utf8.RuneCountInString(original)
	if origLen == 0 {
		return ""
	}

	ratio := float64(utf8.RuneCountInString(candidate)) / float64(origLen)
	if ratio > maxLengthRatio || ratio < minLengthRatio {
		return fmt.Sprintf("length ratio %.2f outside [%.2f, %.2f]", ratio, minLengthRatio, maxLengthRatio)
	}

	lower := strings.ToLower(strings.TrimSpace(candidate))
	for _, prefix := range responsePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return fmt.Sprintf("starts with response phrase %q", prefix)
		}
	}

	origWords := wordSet(original)
	if len(origWords) == 0 {
		return ""
	}
	candWords := wordSet(candidate)

	shared := 0
	for word := range origWords {
		if _, ok := candWords[word]; ok {
			shared++
		}
	}
	overlap := float64(shared) / float64(len(origWords))
	if overlap < minWordOverlap {
		return fmt.Sprintf("word overlap %.2f below %.2f", overlap, minWordOverlap)
	}

	return ""
}

// wordSet lowercases, strips punctuation, and collects distinct words.
func wordSet(s string) map[string]struct{} {
	stripped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, s)

	words := make(map[string]struct{})
	for _, word := range strings.Fields(stripped) {
		words[word] = struct{}{}
	}
	return words
}
