package model

// CallSite is one resolved call to a function template. Many call sites
// reference the same template name; the analyzer groups them by the
// structural key of their argument-type signature.
type CallSite struct {
	Template string         `json:"template" yaml:"template"`
	Args     []string       `json:"args" yaml:"args"` // Argument type signatures, in order
	Location SourceLocation `json:"location" yaml:"location"`
}

// InstantiationReport summarizes the distinct instantiations observed
// for one template, with the routed deduplication suggestion when the
// bloat threshold is exceeded.
type InstantiationReport struct {
	Template   string         `json:"template"`
	Signatures []string       `json:"signatures"` // Distinct signature keys, sorted
	Count      int            `json:"count"`
	Exceeded   bool           `json:"exceeded"`
	Suggestion string         `json:"suggestion,omitempty"`
	Location   SourceLocation `json:"location"` // Earliest call site of the template
}

// Deduplication suggestions routed by the bloat-shape heuristics.
const (
	SuggestPointerDecay  = "pointer-decay or three-overload pattern"
	SuggestMoveCopyPair  = "move/copy overload pair"
	SuggestExtractCommon = "extract non-templated common code"
)
