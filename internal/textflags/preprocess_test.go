package textflags

import (
	"context"
	"strings"
	"testing"
)

func TestPreprocess_CleanText(t *testing.T) {
	a := NewAnalyzer()

	result, err := a.Preprocess(context.Background(),
		"The transport department announced revised bus schedules effective next Monday.")
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if len(result.FakeIndicators) != 0 {
		t.Errorf("FakeIndicators = %v, want none", result.FakeIndicators)
	}
	if result.Sarcasm.IsSarcastic {
		t.Errorf("flagged sarcastic: %+v", result.Sarcasm)
	}
	if len(result.SlangDetected) != 0 {
		t.Errorf("SlangDetected = %v, want none", result.SlangDetected)
	}
	if result.TokenCount != 10 {
		t.Errorf("TokenCount = %d, want 10", result.TokenCount)
	}
}

func TestPreprocess_FakeIndicators(t *testing.T) {
	a := NewAnalyzer()

	result, err := a.Preprocess(context.Background(),
		"BREAKING: You won't believe this one trick. Share if you agree!")
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if len(result.FakeIndicators) != 4 {
		t.Errorf("FakeIndicators = %v, want 4 matches", result.FakeIndicators)
	}
}

func TestPreprocess_Sarcasm(t *testing.T) {
	a := NewAnalyzer()

	result, err := a.Preprocess(context.Background(),
		"Oh really?! Totally believable!!! SURE THING GUYS!!!")
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if !result.Sarcasm.IsSarcastic {
		t.Errorf("not flagged sarcastic: %+v", result.Sarcasm)
	}
	if result.Sarcasm.Confidence <= 0 || result.Sarcasm.Confidence > 1 {
		t.Errorf("Confidence = %v out of range", result.Sarcasm.Confidence)
	}
}

func TestPreprocess_Slang(t *testing.T) {
	a := NewAnalyzer()

	result, err := a.Preprocess(context.Background(),
		"Grabe talaga si lodi, petmalu ang werpa niya bes! Grabe!")
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	// grabe counted once despite appearing twice
	if len(result.SlangDetected) != 5 {
		t.Errorf("SlangDetected = %v, want 5 unique terms", result.SlangDetected)
	}
}

func TestPreprocess_ProcessedText(t *testing.T) {
	a := NewAnalyzer()

	result, err := a.Preprocess(context.Background(), "  Mixed   CASE\n\ttext  ")
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if result.ProcessedText != "mixed case text" {
		t.Errorf("ProcessedText = %q", result.ProcessedText)
	}
	if result.TokenCount != 3 {
		t.Errorf("TokenCount = %d, want 3", result.TokenCount)
	}
}

func TestPreprocess_CancelledContext(t *testing.T) {
	a := NewAnalyzer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Preprocess(ctx, strings.Repeat("word ", 100)); err == nil {
		t.Fatal("expected context error")
	}
}
