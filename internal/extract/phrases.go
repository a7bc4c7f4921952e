package extract

import (
	"regexp"
	"strings"
)

// Bounds for fact-check query phrases
const (
	maxKeyPhrases   = 5
	minPhraseLength = 4
	maxPhraseLength = 100
)

var (
	quotedPattern      = regexp.MustCompile(`"([^"]+)"`)
	capitalizedPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	wordPattern        = regexp.MustCompile(`[a-z']+`)
)

// stopWords are excluded from the keyword fallback tier
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "could": true, "should": true,
}

// KeyPhrases derives up to five query-worthy phrases from text, most
// specific first. Quoted passages and runs of capitalized words are the
// highest-precision anchors for locating existing fact checks; stop-word
// filtered keywords are the fallback tier when neither fires.
func KeyPhrases(text string) []string {
	var candidates []string

	for _, match := range quotedPattern.FindAllStringSubmatch(text, -1) {
		candidates = append(candidates, strings.TrimSpace(match[1]))
	}

	for _, match := range capitalizedPattern.FindAllString(text, -1) {
		candidates = append(candidates, strings.TrimSpace(match))
	}

	keywords := 0
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if keywords >= 5 {
			break
		}
		if len(word) > 4 && !stopWords[word] {
			candidates = append(candidates, word)
			keywords++
		}
	}

	seen := make(map[string]bool)
	var phrases []string
	for _, phrase := range candidates {
		if len(phrase) < minPhraseLength || len(phrase) >= maxPhraseLength {
			continue
		}
		key := strings.ToLower(phrase)
		if seen[key] {
			continue
		}
		seen[key] = true
		phrases = append(phrases, phrase)
		if len(phrases) == maxKeyPhrases {
			break
		}
	}

	return phrases
}
