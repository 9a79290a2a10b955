// Package conformance re-validates classified declarations against the
// complete rule set of their category. The classifier only needs enough
// signal to pick a bucket; the checker is the authority for the full
// finding set, emitting one violation per independently failing rule.
package conformance

import (
	"github.com/nic-ch/hierlint/internal/classify"
	"github.com/nic-ch/hierlint/internal/model"
)

// Checker validates a declaration against its assigned category. It is
// side-effect free and deterministic: re-running on unchanged input
// reproduces identical findings.
type Checker struct{}

// NewChecker creates a new checker
func NewChecker() *Checker {
	return &Checker{}
}

// Check returns every rule the declaration breaks for its category.
//
// Concrete classes and hierarchy-exempt value types have empty rule
// sets. Non-conforming classes are checked against the closest category
// so a single declaration surfaces all of its findings in one pass.
func (c *Checker) Check(decl *model.ClassDeclaration, classification model.Classification, bases map[string]model.Classification) []model.Violation {
	switch classification {
	case model.ClassInterface, model.ClassMixin, model.ClassBaseClass:
		return classify.EvaluateCategory(decl, classification, bases)
	case model.ClassNonConforming:
		return c.closestCategoryFailures(decl, bases)
	default:
		return nil
	}
}

// closestCategoryFailures mirrors the classifier's tie-break: the
// category with the fewest broken predicates, evaluation order winning
// ties. Both sides reporting the same set keeps the pass idempotent.
func (c *Checker) closestCategoryFailures(decl *model.ClassDeclaration, bases map[string]model.Classification) []model.Violation {
	order := []model.Classification{
		model.ClassInterface,
		model.ClassMixin,
		model.ClassBaseClass,
	}

	var best []model.Violation
	for _, category := range order {
		failures := classify.EvaluateCategory(decl, category, bases)
		if len(failures) == 0 {
			// The class satisfies a category after all; nothing to
			// report here, the classification itself was forced
			// elsewhere (cycle or malformed input).
			return nil
		}
		if best == nil || len(failures) < len(best) {
			best = failures
		}
	}
	return best
}
