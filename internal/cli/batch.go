package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdelacruz/newscred/internal/model"
	"github.com/pdelacruz/newscred/internal/pipeline"
	"github.com/pdelacruz/newscred/internal/worker"
)

var (
	batchWorkers int
	batchOut     string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze many inputs from a file",
	Long: `Batch reads inputs from a file (one per line, # comments and blank
lines skipped) and analyzes them concurrently.

Example:
  newscred batch inputs.txt
  newscred batch inputs.txt --workers 8 --out verdicts.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "concurrent analyses")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write verdicts as JSON lines to this path")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 15*time.Minute, "overall batch timeout")
}

// batchLine is one JSONL output record
type batchLine struct {
	Input   string                    `json:"input"`
	Verdict *model.CredibilityVerdict `json:"verdict,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	if batchWorkers <= 0 {
		batchWorkers = cfg.Concurrency.BatchWorkers
	}

	o := pipeline.New(cfg)
	processor := worker.NewBatchProcessor(o, batchWorkers)

	results, err := processor.ProcessFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	var out *os.File
	if batchOut != "" {
		out, err = os.Create(batchOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = out.Close() }()
	}

	failed := 0
	for _, result := range results {
		if result.Error != nil {
			failed++
			fmt.Printf("✗ %-50s %v\n", truncate(result.Input, 50), result.Error)
		} else {
			fmt.Printf("✓ %-50s %s (%.2f)\n",
				truncate(result.Input, 50), result.Verdict.Label, result.Verdict.FinalScore)
		}

		if out != nil {
			line := batchLine{Input: result.Input, Verdict: result.Verdict}
			if result.Error != nil {
				line.Error = result.Error.Error()
			}
			data, err := json.Marshal(line)
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			if _, err := out.Write(append(data, '\n')); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}

	fmt.Printf("\nAnalyzed %d inputs (%d failed)\n", len(results), failed)
	if batchOut != "" {
		fmt.Printf("✓ Wrote results: %s\n", batchOut)
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
