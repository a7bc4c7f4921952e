package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdelacruz/newscred/internal/model"
	"github.com/pdelacruz/newscred/internal/pipeline"
)

var (
	inputType      string
	requesterID    string
	outJSON        string
	analyzeTimeout time.Duration
	noCache        bool
	clfProvider    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <text|url|post>",
	Short: "Analyze one piece of content for credibility",
	Long: `Analyze runs the full credibility pipeline on a single input:
free text, a web page URL, or a social media post URL or id.

The input kind is auto-detected unless --type pins it.

Example:
  newscred analyze "Shocking claim circulating about vaccine trials"
  newscred analyze https://example.com/article --json verdict.json
  newscred analyze https://www.facebook.com/page/posts/123 --type social_post`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&inputType, "type", "auto", "input kind (text, url, social_post, auto)")
	analyzeCmd.Flags().StringVar(&requesterID, "requester", "", "requester id for persisted history")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "write full verdict JSON to this path (- for stdout)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetches)")
	analyzeCmd.Flags().StringVar(&clfProvider, "classifier", "", "classifier provider (openai, lexical)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	raw := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	declared := model.InputType(inputType)
	switch declared {
	case model.InputTypeText, model.InputTypeURL, model.InputTypeSocialPost, model.InputTypeAuto:
	default:
		return fmt.Errorf("invalid --type %q (text, url, social_post, auto)", inputType)
	}

	cfg := loadConfig()
	cfg.Cache.Enabled = !noCache
	if clfProvider != "" {
		cfg.Classifier.Provider = clfProvider
	}
	if requesterID != "" {
		cfg.Store.Enabled = true
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", raw)
		fmt.Fprintf(os.Stderr, "Type: %s\n\n", declared)
	}

	o := pipeline.New(cfg)

	verdict, err := o.Analyze(ctx, raw, declared, requesterID)
	if err != nil {
		// The fatal case still carries a terminal verdict worth showing
		if errors.Is(err, model.ErrInsufficientContent) && verdict != nil {
			printVerdict(verdict)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	printVerdict(verdict)

	if outJSON != "" {
		if err := writeVerdictJSON(verdict, outJSON); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if verbose && outJSON != "-" {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	return nil
}

// printVerdict renders the human-facing summary to stdout
func printVerdict(v *model.CredibilityVerdict) {
	fmt.Printf("Verdict:    %s\n", v.Label)
	fmt.Printf("Score:      %.2f\n", v.FinalScore)
	fmt.Printf("Confidence: %.2f\n", v.Confidence)
	if v.RecordID != "" {
		fmt.Printf("Record:     %s\n", v.RecordID)
	}
	fmt.Println()
	fmt.Println(v.Explanation)

	if verbose && len(v.Breakdown) > 0 {
		fmt.Println("\nSignal breakdown:")
		for _, name := range model.SignalOrder {
			signal, ok := v.Breakdown[name]
			if !ok {
				continue
			}
			fmt.Printf("  %-18s score=%.2f confidence=%.2f  %s\n",
				name, signal.Score, signal.Confidence, signal.Details)
		}
	}
}

func writeVerdictJSON(v *model.CredibilityVerdict, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
