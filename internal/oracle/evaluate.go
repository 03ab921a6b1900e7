package oracle

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/alpdilgen/memoq-qa-resolver/internal/prompts"
	"github.com/alpdilgen/memoq-qa-resolver/internal/schemas"
)

// Decision is the oracle's answer for one flagged error. Decisions are
// produced once per error and never cached across runs.
type Decision struct {
	NeedsFix    bool   `json:"needs_fix"`
	NewText     string `json:"new_text"`
	Explanation string `json:"explanation"`
}

// TerminologyRequest carries the context for a terminology decision.
type TerminologyRequest struct {
	SourceText        string
	TargetText        string
	SourceTerm        string
	TargetSuggestions []string
}

// ConsistencyRequest carries the context for a consistency decision.
type ConsistencyRequest struct {
	SourceText       string
	TargetText       string
	ConsistentText   string
	InconsistentText string
	RelatedSegments  []string
}

// Evaluator asks the oracle for decisions. Any transport, parse, or schema
// failure is contained: the returned decision is needs_fix=false with the
// failure described in the explanation, and the raw error never propagates.
type Evaluator struct {
	client Client
	model  string
	logger *zap.Logger
}

// NewEvaluator creates an evaluator that consults the given client/model.
func NewEvaluator(client Client, model string, logger *zap.Logger) *Evaluator {
	if model == "" {
		model = DefaultModel
	}
	return &Evaluator{client: client, model: model, logger: logger}
}

// EvaluateTerminology asks whether a terminology finding needs a fix.
func (e *Evaluator) EvaluateTerminology(ctx context.Context, req TerminologyRequest) Decision {
	prompt := prompts.Format(prompts.MustGet("oracle.json", "evaluate-terminology"), map[string]string{
		"SourceText":        req.SourceText,
		"TargetText":        req.TargetText,
		"SourceTerm":        req.SourceTerm,
		"TargetSuggestions": strings.Join(req.TargetSuggestions, ", "),
	})
	return e.decide(ctx, prompt, req.TargetText)
}

// AnalyzeConsistency asks whether a consistency finding needs a fix.
func (e *Evaluator) AnalyzeConsistency(ctx context.Context, req ConsistencyRequest) Decision {
	related := "None"
	if len(req.RelatedSegments) > 0 {
		related = strings.Join(req.RelatedSegments, ", ")
	}
	prompt := prompts.Format(prompts.MustGet("oracle.json", "analyze-consistency"), map[string]string{
		"SourceText":       req.SourceText,
		"TargetText":       req.TargetText,
		"ConsistentText":   req.ConsistentText,
		"InconsistentText": req.InconsistentText,
		"RelatedSegments":  related,
	})
	return e.decide(ctx, prompt, req.TargetText)
}

// decide runs one oracle round trip, validating the response shape before
// trusting it.
func (e *Evaluator) decide(ctx context.Context, prompt, targetText string) Decision {
	raw, err := e.client.GenerateJSON(ctx, prompt, e.model)
	if err != nil {
		e.logger.Warn("oracle call failed", zap.Error(err))
		return fallback(targetText, err.Error())
	}

	if err := schemas.ValidateDecision(raw); err != nil {
		e.logger.Warn("oracle response failed schema validation", zap.Error(err))
		return fallback(targetText, "invalid oracle response: "+err.Error())
	}

	var decision Decision
	if err := json.Unmarshal([]byte(raw), &decision); err != nil {
		e.logger.Warn("oracle response is not valid JSON", zap.Error(err))
		return fallback(targetText, "unparseable oracle response: "+err.Error())
	}

	e.logger.Debug("oracle decision",
		zap.Bool("needs_fix", decision.NeedsFix),
		zap.String("explanation", decision.Explanation))
	return decision
}

// fallback is the contained failure decision: no fix, original text kept,
// explanation describing what went wrong.
func fallback(targetText, reason string) Decision {
	return Decision{
		NeedsFix:    false,
		NewText:     targetText,
		Explanation: "Oracle evaluation failed: " + reason,
	}
}
