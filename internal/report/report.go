package report

import (
	"time"

	"github.com/nic-ch/hierlint/internal/model"
)

// FindingKind separates the two record types the aggregator merges
type FindingKind string

const (
	FindingViolation     FindingKind = "violation"
	FindingInstantiation FindingKind = "instantiation"
)

// Finding is one entry of the ordered result set: either a conformance
// violation or an instantiation report, never both.
type Finding struct {
	Kind          FindingKind                `json:"kind"`
	Severity      model.Severity             `json:"severity"`
	Location      model.SourceLocation       `json:"location"`
	Violation     *model.Violation           `json:"violation,omitempty"`
	Instantiation *model.InstantiationReport `json:"instantiation,omitempty"`
}

// Report is the complete result of one analysis pass
type Report struct {
	Unit        string                          `json:"unit,omitempty"`
	GeneratedAt time.Time                       `json:"generated_at"`
	Classes     map[string]model.Classification `json:"classes,omitempty"`
	Findings    []Finding                       `json:"findings"`
	Summary     Summary                         `json:"summary"`
}

// Summary gives the aggregate counts reporters usually lead with
type Summary struct {
	Classes      int                          `json:"classes"`
	ByRole       map[model.Classification]int `json:"by_role,omitempty"`
	Violations   int                          `json:"violations"`
	Errors       int                          `json:"errors"`
	Templates    int                          `json:"templates"`
	BloatedCount int                          `json:"bloated"`
}

// HasErrors reports whether any error-severity finding exists.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}
