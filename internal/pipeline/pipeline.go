package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/pdelacruz/newscred/internal/cache"
	"github.com/pdelacruz/newscred/internal/classifier"
	"github.com/pdelacruz/newscred/internal/extract"
	"github.com/pdelacruz/newscred/internal/factcheck"
	"github.com/pdelacruz/newscred/internal/input"
	"github.com/pdelacruz/newscred/internal/model"
	"github.com/pdelacruz/newscred/internal/score"
	"github.com/pdelacruz/newscred/internal/social"
	"github.com/pdelacruz/newscred/internal/store"
	"github.com/pdelacruz/newscred/internal/textflags"
)

// Deps are the orchestrator's collaborators. Any nil field falls back to
// the corresponding stage's default signal at analysis time.
type Deps struct {
	Detector   *input.Detector
	Extractor  extract.ContentExtractor
	Social     social.Provider
	Classifier classifier.Provider
	FactCheck  factcheck.Provider
	TextFlags  textflags.Provider
	Store      store.Store
}

// Orchestrator runs the full analysis: input resolution, content
// extraction, concurrent signal gathering, aggregation, persistence.
type Orchestrator struct {
	deps         Deps
	scorer       *score.ComponentScorer
	aggregator   *score.Aggregator
	maxQueries   int
	stageTimeout time.Duration
	verbose      bool
}

// New wires an orchestrator from configuration
func New(cfg *model.Config) *Orchestrator {
	var pageCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			pageCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			pageCache = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	clf, err := classifier.New(cfg.Classifier)
	if err != nil {
		log.Printf("classifier %q unavailable (%v), using lexical fallback", cfg.Classifier.Provider, err)
		clf = classifier.NewLexicalClassifier()
	}

	var persistence store.Store = store.NewNoop()
	if cfg.Store.Enabled {
		persistence = store.NewDiskStore(cfg.Store.Dir)
	}

	deps := Deps{
		Detector:   input.NewDetector(cfg.Social.Hostnames),
		Extractor:  extract.NewPageExtractor(cfg.HTTP, pageCache),
		Social:     social.NewGraphClient(cfg.Social),
		Classifier: clf,
		FactCheck:  factcheck.NewClient(cfg.FactCheck),
		TextFlags:  textflags.NewAnalyzer(),
		Store:      persistence,
	}

	return NewWithDeps(cfg, deps)
}

// NewWithDeps wires an orchestrator with explicit collaborators
func NewWithDeps(cfg *model.Config, deps Deps) *Orchestrator {
	maxQueries := cfg.FactCheck.MaxQueries
	if maxQueries <= 0 {
		maxQueries = 3
	}
	stageTimeout := cfg.Concurrency.StageTimeout
	if stageTimeout <= 0 {
		stageTimeout = 25 * time.Second
	}

	return &Orchestrator{
		deps:         deps,
		scorer:       score.NewComponentScorer(cfg.Reputation),
		aggregator:   score.NewAggregator(cfg.Scoring),
		maxQueries:   maxQueries,
		stageTimeout: stageTimeout,
		verbose:      cfg.Verbose,
	}
}

// Analyze runs one credibility analysis. The only error it returns is the
// fatal insufficient-content case; even then the accompanying verdict
// carries the terminal failed shape so callers can render it. Every other
// collaborator failure degrades into its stage's default signal.
func (o *Orchestrator) Analyze(ctx context.Context, rawInput string, declaredType model.InputType, requesterID string) (*model.CredibilityVerdict, error) {
	resolved := o.deps.Detector.Resolve(strings.TrimSpace(rawInput), declaredType)

	content := o.extractContent(ctx, strings.TrimSpace(rawInput), resolved)
	if len(strings.TrimSpace(content.Text)) < model.MinContentLength {
		verdict := failedVerdict(content)
		return verdict, fmt.Errorf("analyze %s input: %w", resolved, model.ErrInsufficientContent)
	}

	signals := o.gatherSignals(ctx, content, strings.TrimSpace(rawInput))

	verdict := o.aggregator.Aggregate(signals)
	verdict.Content = content
	verdict.Timestamp = time.Now().UTC()

	if requesterID != "" && o.deps.Store != nil {
		if id, err := o.deps.Store.Save(ctx, verdict, requesterID); err != nil {
			o.logf("persist verdict: %v", err)
		} else if id != "" {
			verdict.RecordID = id
		}
	}

	return verdict, nil
}

// extractContent normalizes the raw input into analyzable text per the
// resolved input kind. It never fails; unusable input yields empty text
// and the caller applies the fatal minimum-length check.
func (o *Orchestrator) extractContent(ctx context.Context, raw string, resolved model.InputType) *model.ExtractedContent {
	content := &model.ExtractedContent{OriginType: resolved}

	switch resolved {
	case model.InputTypeURL:
		content.SourceDomain = sourceDomain(raw)
		text, err := o.deps.Extractor.FromURL(ctx, raw)
		if err != nil {
			o.logf("extract %s: %v", raw, err)
		}
		content.Text = text

	case model.InputTypeSocialPost:
		content.SourceDomain = sourceDomain(raw)
		if content.SourceDomain == "" {
			content.SourceDomain = "facebook.com"
		}
		content.Text = o.socialPostText(ctx, raw)

	default:
		content.OriginType = model.InputTypeText
		content.Text = raw
	}

	return content
}

// socialPostText fetches the post body via the platform API, falling back
// to page extraction for permalinks when the API yields nothing
func (o *Orchestrator) socialPostText(ctx context.Context, raw string) string {
	if o.deps.Social != nil {
		if postID, ok := social.PostIDFromURL(raw); ok {
			post, err := o.deps.Social.GetPost(ctx, postID)
			if err != nil {
				o.logf("fetch post %s: %v", postID, err)
			} else if post.Message != "" {
				return post.Message
			}
		}
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		text, err := o.deps.Extractor.FromURL(ctx, raw)
		if err != nil {
			o.logf("extract post page %s: %v", raw, err)
		}
		return text
	}

	return ""
}

// failedVerdict is the terminal shape for the single fatal outcome
func failedVerdict(content *model.ExtractedContent) *model.CredibilityVerdict {
	return &model.CredibilityVerdict{
		FinalScore:  0.5,
		Confidence:  0.0,
		Label:       model.VerdictAnalysisFailed,
		Explanation: model.ErrInsufficientContent.Error(),
		Content:     content,
		Timestamp:   time.Now().UTC(),
	}
}

// sourceDomain pulls a lookup-ready registrable domain out of a URL-ish
// input, collapsing subdomains so reputation entries match
func sourceDomain(raw string) string {
	host := raw
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	} else {
		return ""
	}
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(strings.TrimPrefix(host, "www."))

	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return etld
	}
	return host
}

func (o *Orchestrator) logf(format string, args ...interface{}) {
	if o.verbose {
		log.Printf(format, args...)
	}
}
