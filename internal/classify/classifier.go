package classify

import (
	"github.com/nic-ch/hierlint/internal/model"
)

// Classifier buckets class declarations into hierarchy roles. It is a
// pure function of the declaration's structural facts plus the already
// resolved classifications of its direct bases; the engine guarantees
// bases are classified first.
type Classifier struct{}

// NewClassifier creates a new classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Result is one classification outcome. Violations are only populated
// for the non-conforming bucket and list every failed predicate of the
// closest category; the conformance checker remains the authority for
// the complete per-category finding set.
type Result struct {
	Class          string               `json:"class"`
	Classification model.Classification `json:"classification"`
	Violations     []model.Violation    `json:"violations,omitempty"`
}

// roleOrder is the category evaluation order; first clean match wins.
var roleOrder = []model.Classification{
	model.ClassInterface,
	model.ClassMixin,
	model.ClassBaseClass,
}

// Classify assigns exactly one classification. Ambiguity never yields a
// best-effort guess: anything that fails every category and is not a
// plain concrete or value type resolves to non-conforming, reporting
// every broken predicate of the closest category.
func (c *Classifier) Classify(decl *model.ClassDeclaration, bases map[string]model.Classification) Result {
	type candidate struct {
		category model.Classification
		failures []model.Violation
	}

	candidates := make([]candidate, 0, len(roleOrder))
	for _, category := range roleOrder {
		failures := EvaluateCategory(decl, category, bases)
		if len(failures) == 0 {
			return Result{Class: decl.Name, Classification: category}
		}
		candidates = append(candidates, candidate{category: category, failures: failures})
	}

	// Hierarchy-exempt value types are not classified at all.
	if IsHierarchyExempt(decl) {
		return Result{Class: decl.Name, Classification: model.ClassNotApplicable}
	}

	if IsConcrete(decl) {
		return Result{Class: decl.Name, Classification: model.ClassConcrete}
	}

	// Non-conforming: report the failures of the closest category,
	// breaking ties by evaluation order.
	best := candidates[0]
	for _, cand := range candidates[1:] {
		if len(cand.failures) < len(best.failures) {
			best = cand
		}
	}

	return Result{
		Class:          decl.Name,
		Classification: model.ClassNonConforming,
		Violations:     best.failures,
	}
}
