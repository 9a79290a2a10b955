package model

// Classification is the hierarchy role assigned to a class declaration.
// Derived per analysis pass, never persisted across runs.
type Classification string

const (
	ClassInterface     Classification = "interface"      // Pure-virtual dispatch surface, no state
	ClassMixin         Classification = "mixin"          // State-free behavior contribution, not upcastable
	ClassBaseClass     Classification = "base_class"     // Shared state/behavior, upcastable, abstract
	ClassConcrete      Classification = "concrete"       // Instantiable leaf participating in a hierarchy
	ClassNonConforming Classification = "non_conforming" // Matches no category cleanly
	ClassNotApplicable Classification = "not_applicable" // Ordinary value type, exempt from hierarchy rules
)

// HierarchyRole reports whether the classification is one of the three
// structural roles the conformance rules are written for.
func (c Classification) HierarchyRole() bool {
	switch c {
	case ClassInterface, ClassMixin, ClassBaseClass:
		return true
	default:
		return false
	}
}

func (c Classification) String() string {
	return string(c)
}
