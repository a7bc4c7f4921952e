package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdelacruz/newscred/internal/model"
)

// Analyzer runs one credibility analysis. The pipeline orchestrator
// satisfies this.
type Analyzer interface {
	Analyze(ctx context.Context, rawInput string, declaredType model.InputType, requesterID string) (*model.CredibilityVerdict, error)
}

// AnalyzeJob analyzes one input line from a batch file
type AnalyzeJob struct {
	Request  model.AnalysisRequest
	Analyzer Analyzer
}

// Execute runs the analysis for this job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	verdict, err := j.Analyzer.Analyze(ctx,
		j.Request.RawInput, j.Request.DeclaredType, j.Request.RequesterID)
	return &AnalyzeResult{
		Input:   j.Request.RawInput,
		Verdict: verdict,
		Error:   err,
	}
}

// AnalyzeResult is the outcome of one batch job
type AnalyzeResult struct {
	Input   string
	Verdict *model.CredibilityVerdict
	Error   error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple inputs concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// Process analyzes the given inputs concurrently
func (b *BatchProcessor) Process(ctx context.Context, inputs []string) []*AnalyzeResult {
	if len(inputs) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Cancellation aborts in-flight analyses and unblocks Wait
	stop := context.AfterFunc(ctx, pool.Shutdown)
	defer stop()

	// Submit from a goroutine so Wait can drain results in parallel;
	// queue and result buffers are smaller than large batches
	go func() {
		defer pool.Close()
		for _, input := range inputs {
			pool.Submit(&AnalyzeJob{
				Request:  model.AnalysisRequest{RawInput: input, DeclaredType: model.InputTypeAuto},
				Analyzer: b.analyzer,
			})
		}
	}()

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads inputs from a file and analyzes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	inputs, err := ReadInputsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	return b.Process(ctx, inputs), nil
}

// ReadInputsFromFile reads analysis inputs from a file (one per line).
// Blank lines and #-comments are skipped; duplicate lines are analyzed once.
func ReadInputsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}
