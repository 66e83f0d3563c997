package ocr

import (
	"strings"

	"github.com/arbovm/levenshtein"

	"go-doc-inspector/pkg/models"
)

// Compare scores extracted text against caller-supplied expected text
func Compare(expected, actual string) models.OCRAccuracy {
	cer := CharacterErrorRate(expected, actual)
	wer := WordErrorRate(expected, actual)

	match := 1.0 - cer
	if match < 0 {
		match = 0
	}

	return models.OCRAccuracy{CER: cer, WER: wer, MatchScore: match}
}

// CharacterErrorRate is the character-level edit distance normalized by the
// expected length
func CharacterErrorRate(expected, actual string) float64 {
	expected = strings.TrimSpace(expected)
	actual = strings.TrimSpace(actual)
	if expected == "" {
		if actual == "" {
			return 0
		}
		return 1
	}
	dist := levenshtein.Distance(expected, actual)
	return float64(dist) / float64(len([]rune(expected)))
}

// WordErrorRate is the word-level edit distance normalized by the expected
// word count. Words are mapped to private-use runes so the same edit
// distance works at token granularity.
func WordErrorRate(expected, actual string) float64 {
	expWords := strings.Fields(expected)
	actWords := strings.Fields(actual)
	if len(expWords) == 0 {
		if len(actWords) == 0 {
			return 0
		}
		return 1
	}

	vocab := make(map[string]rune)
	next := rune(0xE000)
	encode := func(words []string) string {
		var sb strings.Builder
		for _, w := range words {
			r, ok := vocab[w]
			if !ok {
				r = next
				vocab[w] = r
				next++
			}
			sb.WriteRune(r)
		}
		return sb.String()
	}

	dist := levenshtein.Distance(encode(expWords), encode(actWords))
	return float64(dist) / float64(len(expWords))
}
