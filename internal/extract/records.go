// Package extract converts located annotations into normalized error
// records. Each known surface encoding of a record is a matcher+extractor
// strategy; strategies run in strict priority order and later strategies may
// only backfill fields an earlier one left unset. New encodings are added by
// appending strategies, never by branching inside existing ones.
package extract

// TermRecord is the normalized view of a terminology error.
type TermRecord struct {
	SourceTerm        string
	TargetSuggestions []string
}

// Empty reports whether the record carries no identifying field. Empty
// records are discarded by detectors, never emitted.
func (r *TermRecord) Empty() bool {
	return r.SourceTerm == "" && len(r.TargetSuggestions) == 0
}

func (r *TermRecord) complete() bool {
	return r.SourceTerm != "" && len(r.TargetSuggestions) > 0
}

// ConsistencyRecord is the normalized view of a consistency error. The
// consistent text is the wording used by previous segments; the inconsistent
// text is the wording the flagged segment used instead.
type ConsistencyRecord struct {
	ConsistentText   string
	InconsistentText string
	RelatedSegments  []string
}

// Empty reports whether the record carries no identifying field.
func (r *ConsistencyRecord) Empty() bool {
	return r.ConsistentText == "" && r.InconsistentText == ""
}

func (r *ConsistencyRecord) complete() bool {
	return r.ConsistentText != "" && r.InconsistentText != ""
}
