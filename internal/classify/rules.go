package classify

import (
	"github.com/nic-ch/hierlint/internal/model"
)

// Category evaluators return every predicate the declaration breaks for
// that category, one violation per independently failing rule. An empty
// result means the declaration fully satisfies the category.
//
// Deleted constructors and assignment operators are skipped by the
// attribute rules: a deleted member has no access or exception semantics
// worth checking, and deleting copyability is an accepted idiom. The
// destructor is always checked as declared.

// EvaluateCategory dispatches to the evaluator for a hierarchy role.
// Concrete and NotApplicable have empty rule sets.
func EvaluateCategory(decl *model.ClassDeclaration, category model.Classification, bases map[string]model.Classification) []model.Violation {
	switch category {
	case model.ClassInterface:
		return EvaluateInterface(decl, bases)
	case model.ClassMixin:
		return EvaluateMixin(decl, bases)
	case model.ClassBaseClass:
		return EvaluateBaseClass(decl)
	default:
		return nil
	}
}

// EvaluateInterface checks the interface rule set: stateless, a public
// virtual noexcept defaulted destructor, hidden defaulted construction
// and assignment, only public pure-virtual methods, interface bases.
func EvaluateInterface(decl *model.ClassDeclaration, bases map[string]model.Classification) []model.Violation {
	var out []model.Violation
	fail := func(rule model.Rule, member string, loc model.SourceLocation) {
		out = append(out, model.NewViolation(decl.Name, model.ClassInterface, rule, member, loc))
	}

	for _, m := range decl.DataMembers() {
		fail(model.RuleInterfaceNoDataMembers, m.Name, m.Location)
	}

	dtor := decl.Destructor()
	if dtor == nil {
		fail(model.RuleInterfaceDtorDeclared, "", decl.Location)
	} else {
		if dtor.Visibility != model.VisibilityPublic {
			fail(model.RuleInterfaceDtorPublic, dtor.Name, dtor.Location)
		}
		if dtor.NonVirtual() {
			fail(model.RuleInterfaceDtorVirtual, dtor.Name, dtor.Location)
		}
		if !dtor.Noexcept {
			fail(model.RuleInterfaceDtorNoexcept, dtor.Name, dtor.Location)
		}
		if !dtor.Defaulted {
			fail(model.RuleInterfaceDtorDefaulted, dtor.Name, dtor.Location)
		}
	}

	for _, m := range decl.MembersOfKind(model.KindConstructor) {
		if m.Deleted {
			continue
		}
		if m.Visibility != model.VisibilityProtected {
			fail(model.RuleInterfaceCtorProtected, m.Name, m.Location)
		}
		if !m.Noexcept {
			fail(model.RuleInterfaceCtorNoexcept, m.Name, m.Location)
		}
		if !m.Defaulted {
			fail(model.RuleInterfaceCtorDefaulted, m.Name, m.Location)
		}
	}

	for _, m := range assignments(decl) {
		if m.Deleted {
			continue
		}
		if m.Visibility != model.VisibilityProtected {
			fail(model.RuleInterfaceAssignHidden, m.Name, m.Location)
		}
		if !m.Noexcept {
			fail(model.RuleInterfaceAssignNoexcept, m.Name, m.Location)
		}
		if !m.Defaulted {
			fail(model.RuleInterfaceAssignDefault, m.Name, m.Location)
		}
	}

	for _, m := range decl.MembersOfKind(model.KindMethod) {
		if m.Visibility != model.VisibilityPublic {
			fail(model.RuleInterfaceMethodPublic, m.Name, m.Location)
		}
		if m.Virtuality != model.VirtualityPure {
			fail(model.RuleInterfaceMethodPure, m.Name, m.Location)
		}
	}

	for _, b := range decl.Bases {
		if bases[b.Name] != model.ClassInterface {
			fail(model.RuleInterfaceBaseRole, b.Name, decl.Location)
		}
	}

	return out
}

// EvaluateMixin checks the mixin rule set: stateless, a protected
// non-virtual noexcept defaulted destructor, hidden noexcept
// construction, protected noexcept assignment, nothing pure virtual,
// mixin bases.
func EvaluateMixin(decl *model.ClassDeclaration, bases map[string]model.Classification) []model.Violation {
	var out []model.Violation
	fail := func(rule model.Rule, member string, loc model.SourceLocation) {
		out = append(out, model.NewViolation(decl.Name, model.ClassMixin, rule, member, loc))
	}

	for _, m := range decl.DataMembers() {
		fail(model.RuleMixinNoDataMembers, m.Name, m.Location)
	}

	dtor := decl.Destructor()
	if dtor == nil {
		fail(model.RuleMixinDtorDeclared, "", decl.Location)
	} else {
		if dtor.Visibility != model.VisibilityProtected {
			fail(model.RuleMixinDtorProtected, dtor.Name, dtor.Location)
		}
		if !dtor.NonVirtual() {
			fail(model.RuleMixinDtorNonVirtual, dtor.Name, dtor.Location)
		}
		if !dtor.Noexcept {
			fail(model.RuleMixinDtorNoexcept, dtor.Name, dtor.Location)
		}
		if !dtor.Defaulted {
			fail(model.RuleMixinDtorDefaulted, dtor.Name, dtor.Location)
		}
	}

	for _, m := range decl.MembersOfKind(model.KindConstructor) {
		if m.Deleted {
			continue
		}
		// Default or user-defined are both fine for mixins; only
		// visibility and exception spec are constrained.
		if m.Visibility == model.VisibilityPublic {
			fail(model.RuleMixinCtorHidden, m.Name, m.Location)
		}
		if !m.Noexcept {
			fail(model.RuleMixinCtorNoexcept, m.Name, m.Location)
		}
	}

	for _, m := range assignments(decl) {
		if m.Deleted {
			continue
		}
		if m.Visibility != model.VisibilityProtected {
			fail(model.RuleMixinAssignHidden, m.Name, m.Location)
		}
		if !m.Noexcept {
			fail(model.RuleMixinAssignNoexcept, m.Name, m.Location)
		}
	}

	for _, m := range decl.PureVirtualMethods() {
		fail(model.RuleMixinNoPureVirtual, m.Name, m.Location)
	}

	for _, b := range decl.Bases {
		if bases[b.Name] != model.ClassMixin {
			fail(model.RuleMixinBaseRole, b.Name, decl.Location)
		}
	}

	return out
}

// EvaluateBaseClass checks the base-class rule set: abstract, a public
// virtual destructor (noexcept not mandated), hidden construction,
// protected assignment. Bases are unconstrained.
func EvaluateBaseClass(decl *model.ClassDeclaration) []model.Violation {
	var out []model.Violation
	fail := func(rule model.Rule, member string, loc model.SourceLocation) {
		out = append(out, model.NewViolation(decl.Name, model.ClassBaseClass, rule, member, loc))
	}

	if len(decl.PureVirtualMethods()) == 0 {
		fail(model.RuleBaseClassAbstract, "", decl.Location)
	}

	dtor := decl.Destructor()
	if dtor == nil {
		fail(model.RuleBaseClassDtorDeclared, "", decl.Location)
	} else {
		if dtor.Visibility != model.VisibilityPublic {
			fail(model.RuleBaseClassDtorPublic, dtor.Name, dtor.Location)
		}
		if dtor.NonVirtual() {
			fail(model.RuleBaseClassDtorVirtual, dtor.Name, dtor.Location)
		}
	}

	for _, m := range decl.MembersOfKind(model.KindConstructor) {
		if m.Deleted {
			continue
		}
		if m.Visibility == model.VisibilityPublic {
			fail(model.RuleBaseClassCtorHidden, m.Name, m.Location)
		}
	}

	for _, m := range assignments(decl) {
		if m.Deleted {
			continue
		}
		if m.Visibility != model.VisibilityProtected {
			fail(model.RuleBaseClassAssignHidden, m.Name, m.Location)
		}
	}

	return out
}

// IsConcrete reports whether the declaration falls into the concrete
// default bucket: not abstract, and either a public non-defaulted,
// non-deleted special member or a public data member.
func IsConcrete(decl *model.ClassDeclaration) bool {
	if len(decl.PureVirtualMethods()) > 0 {
		return false
	}
	for _, m := range decl.Members {
		switch m.Kind {
		case model.KindConstructor, model.KindDestructor, model.KindCopyAssign, model.KindMoveAssign:
			if m.Visibility == model.VisibilityPublic && !m.Defaulted && !m.Deleted {
				return true
			}
		case model.KindDataMember:
			if m.Visibility == model.VisibilityPublic {
				return true
			}
		}
	}
	return false
}

// IsHierarchyExempt reports whether the declaration is an ordinary value
// type outside any hierarchy role: no virtual members, no bases, and no
// state visible beyond the class itself. Exempt classes are never
// checked and never produce findings.
func IsHierarchyExempt(decl *model.ClassDeclaration) bool {
	if len(decl.Bases) > 0 {
		return false
	}
	if decl.HasVirtualMembers() {
		return false
	}
	for _, m := range decl.DataMembers() {
		if m.Visibility != model.VisibilityPrivate {
			return false
		}
	}
	return true
}

func assignments(decl *model.ClassDeclaration) []model.MemberDeclaration {
	out := decl.MembersOfKind(model.KindCopyAssign)
	return append(out, decl.MembersOfKind(model.KindMoveAssign)...)
}
