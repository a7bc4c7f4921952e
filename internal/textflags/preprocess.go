package textflags

import (
	"context"
	"strings"
	"unicode"
)

// fakeIndicators are phrasings that correlate with fabricated news content
var fakeIndicators = []string{
	"breaking:", "urgent:", "shocking:", "unbelievable:",
	"you won't believe", "doctors hate", "this one trick",
	"click here", "share if you agree",
}

// sarcasmMarkers are phrasings that usually signal the text is not meant
// literally
var sarcasmMarkers = []string{
	"yeah right", "sure thing", "oh really", "as if", "totally believable",
	"what a surprise", "how convenient",
}

// filipinoSlang is informal Filipino internet vocabulary. Heavy use marks
// content as informal rather than reported news.
var filipinoSlang = map[string]bool{
	"lodi": true, "petmalu": true, "werpa": true, "charot": true,
	"chika": true, "jowa": true, "beshie": true, "bes": true,
	"mars": true, "awit": true, "sana": true, "naol": true,
	"edi": true, "susmaryosep": true, "grabe": true, "omsim": true,
}

// SarcasmAnalysis is the sarcasm heuristic's output
type SarcasmAnalysis struct {
	IsSarcastic bool    `json:"is_sarcastic"`
	Confidence  float64 `json:"confidence"`
}

// Result holds every red flag the preprocessor found in a piece of text
type Result struct {
	FakeIndicators []string        `json:"fake_indicators"` // Matched phrases, in lexicon order
	Sarcasm        SarcasmAnalysis `json:"sarcasm_analysis"`
	SlangDetected  []string        `json:"slang_detected"`
	TokenCount     int             `json:"token_count"`
	ProcessedText  string          `json:"processed_text"` // Lowercased, whitespace-normalized
}

// Provider defines the interface for text preprocessing
type Provider interface {
	Preprocess(ctx context.Context, text string) (*Result, error)
}

// Analyzer is the built-in lexicon-based preprocessor
type Analyzer struct{}

// NewAnalyzer creates the preprocessor
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Preprocess scans text for fake-news indicators, sarcasm, and informal
// slang, and counts its tokens
func (a *Analyzer) Preprocess(ctx context.Context, text string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lower := strings.ToLower(text)
	tokens := strings.Fields(lower)

	result := &Result{
		TokenCount:    len(tokens),
		ProcessedText: strings.Join(tokens, " "),
	}

	for _, indicator := range fakeIndicators {
		if strings.Contains(lower, indicator) {
			result.FakeIndicators = append(result.FakeIndicators, indicator)
		}
	}

	result.Sarcasm = detectSarcasm(text, lower)

	seen := make(map[string]bool)
	for _, token := range tokens {
		word := strings.TrimFunc(token, unicode.IsPunct)
		if filipinoSlang[word] && !seen[word] {
			seen[word] = true
			result.SlangDetected = append(result.SlangDetected, word)
		}
	}

	return result, nil
}

// detectSarcasm flags text whose punctuation, capitalization, or stock
// phrases suggest it is not meant literally
func detectSarcasm(text, lower string) SarcasmAnalysis {
	score := 0.0

	exclamations := strings.Count(text, "!")
	if exclamations >= 3 {
		score += 0.3
	}
	if strings.Contains(text, "?!") || strings.Contains(text, "!?") {
		score += 0.2
	}

	words := strings.Fields(text)
	caps := 0
	for _, w := range words {
		if len(w) >= 4 && isUpperWord(w) {
			caps++
		}
	}
	if len(words) > 0 && float64(caps)/float64(len(words)) > 0.3 {
		score += 0.3
	}

	for _, marker := range sarcasmMarkers {
		if strings.Contains(lower, marker) {
			score += 0.4
			break
		}
	}

	if score > 1 {
		score = 1
	}
	return SarcasmAnalysis{
		IsSarcastic: score >= 0.4,
		Confidence:  score,
	}
}

func isUpperWord(w string) bool {
	hasLetter := false
	for _, r := range w {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
