// Package resolve drives the per-error resolution state machine: each
// detected error is decided once, by the oracle or the operator, then
// exactly one of {fix, ignore, skip} is applied to the document.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alpdilgen/memoq-qa-resolver/internal/detect"
	"github.com/alpdilgen/memoq-qa-resolver/internal/mqxliff"
	"github.com/alpdilgen/memoq-qa-resolver/internal/oracle"
)

// Oracle is the engine's view of the classification capability. Decisions
// are already failure-contained: implementations never surface transport
// errors, they return needs_fix=false instead.
type Oracle interface {
	EvaluateTerminology(ctx context.Context, req oracle.TerminologyRequest) oracle.Decision
	AnalyzeConsistency(ctx context.Context, req oracle.ConsistencyRequest) oracle.Decision
}

// Outcome is the terminal state of one error's resolution.
type Outcome int

// Terminal states. Failed means the mutation could not be applied; the
// error counts as neither fixed nor ignored.
const (
	OutcomeFixed Outcome = iota
	OutcomeIgnored
	OutcomeSkipped
	OutcomeFailed
)

// Stats are the run counters for one category. Written, never read back.
type Stats struct {
	Total   int
	Fixed   int
	Ignored int
}

// Merge adds another category's counters into s.
func (s *Stats) Merge(o Stats) {
	s.Total += o.Total
	s.Fixed += o.Fixed
	s.Ignored += o.Ignored
}

// Options control engine behavior for one run.
type Options struct {
	// Auto lets the oracle decide without operator involvement.
	Auto bool
	// Debug disables the terminology already-present short-circuit so
	// extraction can be verified without the suppression.
	Debug bool
}

const ignoreNote = "Marked as ignored by QA resolver"

// Engine resolves detected errors category by category, unit by unit, in
// document order. Single-threaded; the document is mutated in place.
type Engine struct {
	doc      *mqxliff.Document
	registry map[string]detect.Entry
	oracle   Oracle
	asker    Asker
	opts     Options
	logger   *zap.Logger
}

// NewEngine creates an engine. asker may be nil in automatic mode.
func NewEngine(doc *mqxliff.Document, registry map[string]detect.Entry, orc Oracle, asker Asker, opts Options, logger *zap.Logger) *Engine {
	return &Engine{
		doc:      doc,
		registry: registry,
		oracle:   orc,
		asker:    asker,
		opts:     opts,
		logger:   logger,
	}
}

// ProcessCategory detects and resolves all errors of one category. Each
// mutation is applied eagerly, so an abort mid-category keeps everything
// already resolved. The returned error is non-nil only for an unknown
// category or an operator abort.
func (e *Engine) ProcessCategory(ctx context.Context, name string) (Stats, error) {
	entry, ok := e.registry[name]
	if !ok {
		return Stats{}, fmt.Errorf("unknown category: %s", name)
	}

	findings := entry.Detector.Detect(e.doc)
	stats := Stats{Total: len(findings)}
	e.logger.Info("found errors", zap.String("category", name), zap.Int("count", len(findings)))

	for i, f := range findings {
		e.logger.Info("processing error",
			zap.String("category", name),
			zap.String("unit", f.Unit.ID()),
			zap.Int("index", i+1),
			zap.Int("total", len(findings)))

		outcome, err := e.resolveOne(ctx, i, len(findings), f)
		if err != nil {
			return stats, err
		}
		switch outcome {
		case OutcomeFixed:
			stats.Fixed++
		case OutcomeIgnored:
			stats.Ignored++
		}
	}

	e.logger.Info("completed category",
		zap.String("category", name),
		zap.Int("fixed", stats.Fixed),
		zap.Int("ignored", stats.Ignored))
	return stats, nil
}

// resolveOne walks one finding through Detected → Decided → terminal.
func (e *Engine) resolveOne(ctx context.Context, index, total int, f detect.Finding) (Outcome, error) {
	source := f.Unit.SourceText()
	target := f.Unit.TargetText()

	// Terminology pre-decision short-circuit: a suggestion already present
	// in the target means there is nothing to fix.
	if f.Term != nil && !e.opts.Debug && suggestionPresent(f.Term.TargetSuggestions, target) {
		e.logger.Info("term already present in target, marking as ignored",
			zap.String("unit", f.Unit.ID()))
		return e.ignore(f, "automated"), nil
	}

	var decision oracle.Decision
	switch {
	case f.Term != nil:
		decision = e.oracle.EvaluateTerminology(ctx, oracle.TerminologyRequest{
			SourceText:        source,
			TargetText:        target,
			SourceTerm:        f.Term.SourceTerm,
			TargetSuggestions: f.Term.TargetSuggestions,
		})
	case f.Consistency != nil:
		decision = e.oracle.AnalyzeConsistency(ctx, oracle.ConsistencyRequest{
			SourceText:       source,
			TargetText:       target,
			ConsistentText:   f.Consistency.ConsistentText,
			InconsistentText: f.Consistency.InconsistentText,
			RelatedSegments:  f.Consistency.RelatedSegments,
		})
	default:
		return OutcomeSkipped, nil
	}

	if e.opts.Auto {
		return e.applyDecision(f, decision), nil
	}
	return e.askOperator(index, total, f, source, target, decision)
}

// applyDecision is the automatic-mode transition out of Decided.
func (e *Engine) applyDecision(f detect.Finding, decision oracle.Decision) Outcome {
	if decision.NeedsFix {
		return e.applyFix(f, decision.NewText)
	}
	e.logger.Info("oracle decided no fix needed",
		zap.String("unit", f.Unit.ID()),
		zap.String("explanation", decision.Explanation))
	return e.ignore(f, "automated")
}

// askOperator is the interactive-mode transition out of Decided. The
// operator may override the oracle's recommendation or skip entirely.
func (e *Engine) askOperator(index, total int, f detect.Finding, source, target string, decision oracle.Decision) (Outcome, error) {
	resp, err := e.asker.Ask(Request{
		Category:    f.Category,
		UnitID:      f.Unit.ID(),
		Index:       index + 1,
		Total:       total,
		SourceText:  source,
		TargetText:  target,
		Term:        f.Term,
		Consistency: f.Consistency,
		Decision:    decision,
	})
	if err != nil {
		// Interrupt aborts the current decision; prior mutations stand.
		return OutcomeSkipped, fmt.Errorf("operator input aborted: %w", err)
	}

	switch resp.Action {
	case ActionFix:
		if !decision.NeedsFix {
			return OutcomeSkipped, nil
		}
		return e.applyFix(f, decision.NewText), nil
	case ActionEdit:
		return e.applyFix(f, resp.ManualText), nil
	case ActionIgnore:
		return e.ignore(f, "operator"), nil
	default:
		return OutcomeSkipped, nil
	}
}

// applyFix replaces the unit's target text wholesale. A missing target is a
// recoverable failure: logged, counted as neither fixed nor ignored.
func (e *Engine) applyFix(f detect.Finding, newText string) Outcome {
	if err := f.Unit.ReplaceTarget(newText); err != nil {
		e.logger.Error("failed to update target text",
			zap.String("category", f.Category),
			zap.String("unit", f.Unit.ID()),
			zap.Error(err))
		return OutcomeFailed
	}
	e.logger.Info("applied fix",
		zap.String("unit", f.Unit.ID()),
		zap.String("new_text", newText))
	return OutcomeFixed
}

func (e *Engine) ignore(f detect.Finding, user string) Outcome {
	f.Annotation.MarkIgnored(user, ignoreNote)
	return OutcomeIgnored
}

// suggestionPresent reports whether any suggested term already appears in
// the target text, case-insensitively.
func suggestionPresent(suggestions []string, target string) bool {
	if target == "" {
		return false
	}
	lower := strings.ToLower(target)
	for _, s := range suggestions {
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
