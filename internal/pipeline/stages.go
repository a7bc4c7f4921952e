package pipeline

import (
	"context"
	"fmt"

	"github.com/pdelacruz/newscred/internal/extract"
	"github.com/pdelacruz/newscred/internal/factcheck"
	"github.com/pdelacruz/newscred/internal/model"
	"github.com/pdelacruz/newscred/internal/score"
	"github.com/pdelacruz/newscred/internal/social"
)

// gatherSignals runs the five signal stages concurrently. Each stage writes
// exactly once into its own slot; a failed stage resolves to its documented
// default with the cause recorded in the signal's details.
func (o *Orchestrator) gatherSignals(ctx context.Context, content *model.ExtractedContent, raw string) map[model.SignalName]model.ComponentSignal {
	stageCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	type stageResult struct {
		name   model.SignalName
		signal model.ComponentSignal
	}
	results := make(chan stageResult, len(model.SignalOrder))

	run := func(name model.SignalName, fn func(context.Context) (model.ComponentSignal, error)) {
		go func() {
			signal, err := fn(stageCtx)
			if err != nil {
				stageErr := model.NewStageError(name, err)
				o.logf("%v", stageErr)
				signal = score.DefaultSignal(name, degradeReason(name, err))
			}
			results <- stageResult{name: name, signal: signal}
		}()
	}

	run(model.SignalClassifier, func(ctx context.Context) (model.ComponentSignal, error) {
		return o.classifierStage(ctx, content.Text)
	})
	run(model.SignalEvidence, func(ctx context.Context) (model.ComponentSignal, error) {
		return o.evidenceStage(ctx, content.Text)
	})
	run(model.SignalAccountRisk, func(ctx context.Context) (model.ComponentSignal, error) {
		return o.accountRiskStage(ctx, content.OriginType, raw)
	})
	run(model.SignalTextFlags, func(ctx context.Context) (model.ComponentSignal, error) {
		return o.textFlagsStage(ctx, content.Text)
	})
	run(model.SignalSourceRep, func(ctx context.Context) (model.ComponentSignal, error) {
		return o.scorer.SourceReputation(content.OriginType, content.SourceDomain), nil
	})

	signals := make(map[model.SignalName]model.ComponentSignal, len(model.SignalOrder))
	for range model.SignalOrder {
		r := <-results
		signals[r.name] = r.signal
	}
	return signals
}

func (o *Orchestrator) classifierStage(ctx context.Context, text string) (model.ComponentSignal, error) {
	if o.deps.Classifier == nil {
		return o.scorer.Classifier(nil), nil
	}
	pred, err := o.deps.Classifier.Predict(ctx, text)
	if err != nil {
		return model.ComponentSignal{}, err
	}
	return o.scorer.Classifier(pred), nil
}

// evidenceStage queries fact checks for up to maxQueries key phrases and
// fuses the per-query judgments. Individual query failures are tolerated;
// the stage only fails when every query failed.
func (o *Orchestrator) evidenceStage(ctx context.Context, text string) (model.ComponentSignal, error) {
	phrases := extract.KeyPhrases(text)
	if len(phrases) > o.maxQueries {
		phrases = phrases[:o.maxQueries]
	}

	if len(phrases) == 0 || o.deps.FactCheck == nil {
		fused := factcheck.Fuse(nil)
		return o.scorer.Evidence(&fused), nil
	}

	var perQuery []model.FusedEvidence
	var lastErr error
	succeeded := 0
	for _, query := range phrases {
		claims, err := o.deps.FactCheck.Search(ctx, query)
		if err != nil {
			lastErr = err
			continue
		}
		succeeded++
		// Queries that found nothing carry no weight in second-level fusion
		if len(claims) > 0 {
			perQuery = append(perQuery, factcheck.Fuse(claims))
		}
	}

	if len(perQuery) == 0 {
		if succeeded == 0 && lastErr != nil {
			return model.ComponentSignal{}, lastErr
		}
		fused := factcheck.Fuse(nil)
		return o.scorer.Evidence(&fused), nil
	}

	fused := factcheck.FuseQueries(perQuery)
	return o.scorer.Evidence(&fused), nil
}

// accountRiskStage resolves the posting account and scores it. Non-social
// input defaults immediately; a social input whose account cannot be
// resolved defaults with that reason rather than erroring.
func (o *Orchestrator) accountRiskStage(ctx context.Context, origin model.InputType, raw string) (model.ComponentSignal, error) {
	if origin != model.InputTypeSocialPost || o.deps.Social == nil {
		return score.DefaultSignal(model.SignalAccountRisk, "No poser analysis available"), nil
	}

	handle, ok := social.HandleFromURL(raw)
	if !ok {
		if postID, found := social.PostIDFromURL(raw); found {
			post, err := o.deps.Social.GetPost(ctx, postID)
			if err == nil && post.AuthorID != "" {
				handle, ok = post.AuthorID, true
			}
		}
	}
	if !ok {
		return score.DefaultSignal(model.SignalAccountRisk, "Could not resolve account from input"), nil
	}

	account, err := o.deps.Social.GetAccount(ctx, handle)
	if err != nil {
		return model.ComponentSignal{}, err
	}

	profile := social.AssessRisk(account)
	return o.scorer.AccountRisk(&profile), nil
}

func (o *Orchestrator) textFlagsStage(ctx context.Context, text string) (model.ComponentSignal, error) {
	if o.deps.TextFlags == nil {
		return o.scorer.TextFlags(nil), nil
	}
	result, err := o.deps.TextFlags.Preprocess(ctx, text)
	if err != nil {
		return model.ComponentSignal{}, err
	}
	return o.scorer.TextFlags(result), nil
}

// degradeReason names the failed stage family for the default signal's details
func degradeReason(name model.SignalName, err error) string {
	families := map[model.SignalName]string{
		model.SignalClassifier:  "ML prediction",
		model.SignalEvidence:    "Fact check lookup",
		model.SignalAccountRisk: "Account analysis",
		model.SignalTextFlags:   "Text analysis",
		model.SignalSourceRep:   "Source assessment",
	}
	return fmt.Sprintf("%s unavailable: %v", families[name], err)
}
