package model

import "fmt"

// Severity indicates the importance of a finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// rank orders severities for sorting (errors first).
func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// MoreSevere reports whether s sorts before other.
func (s Severity) MoreSevere(other Severity) bool {
	return s.rank() < other.rank()
}

// Rule is an entry in the enumerated rule catalog. Downstream reporters
// key on these codes, so they are stable identifiers, not messages.
type Rule string

const (
	// Interface rules
	RuleInterfaceNoDataMembers  Rule = "interface-no-data-members"
	RuleInterfaceDtorDeclared   Rule = "interface-dtor-declared"
	RuleInterfaceDtorPublic     Rule = "interface-dtor-public"
	RuleInterfaceDtorVirtual    Rule = "interface-dtor-virtual"
	RuleInterfaceDtorNoexcept   Rule = "interface-dtor-noexcept"
	RuleInterfaceDtorDefaulted  Rule = "interface-dtor-defaulted"
	RuleInterfaceCtorProtected  Rule = "interface-ctor-protected"
	RuleInterfaceCtorNoexcept   Rule = "interface-ctor-noexcept"
	RuleInterfaceCtorDefaulted  Rule = "interface-ctor-defaulted"
	RuleInterfaceAssignHidden   Rule = "interface-assign-protected"
	RuleInterfaceAssignNoexcept Rule = "interface-assign-noexcept"
	RuleInterfaceAssignDefault  Rule = "interface-assign-defaulted"
	RuleInterfaceMethodPublic   Rule = "interface-method-public"
	RuleInterfaceMethodPure     Rule = "interface-method-pure-virtual"
	RuleInterfaceBaseRole       Rule = "interface-base-role"

	// Mixin rules
	RuleMixinNoDataMembers  Rule = "mixin-no-data-members"
	RuleMixinDtorDeclared   Rule = "mixin-dtor-declared"
	RuleMixinDtorProtected  Rule = "mixin-dtor-protected"
	RuleMixinDtorNonVirtual Rule = "mixin-dtor-non-virtual"
	RuleMixinDtorNoexcept   Rule = "mixin-dtor-noexcept"
	RuleMixinDtorDefaulted  Rule = "mixin-dtor-defaulted"
	RuleMixinCtorHidden     Rule = "mixin-ctor-hidden"
	RuleMixinCtorNoexcept   Rule = "mixin-ctor-noexcept"
	RuleMixinAssignHidden   Rule = "mixin-assign-protected"
	RuleMixinAssignNoexcept Rule = "mixin-assign-noexcept"
	RuleMixinNoPureVirtual  Rule = "mixin-no-pure-virtual"
	RuleMixinBaseRole       Rule = "mixin-base-role"

	// Base-class rules
	RuleBaseClassAbstract     Rule = "base-class-abstract"
	RuleBaseClassDtorDeclared Rule = "base-class-dtor-declared"
	RuleBaseClassDtorPublic   Rule = "base-class-dtor-public"
	RuleBaseClassDtorVirtual  Rule = "base-class-dtor-virtual"
	RuleBaseClassCtorHidden   Rule = "base-class-ctor-hidden"
	RuleBaseClassAssignHidden Rule = "base-class-assign-protected"

	// Structural rules
	RuleInheritanceCycle Rule = "inheritance-cycle"
	RuleMalformedInput   Rule = "malformed-input"
	RuleUnknownBase      Rule = "unknown-base"

	// Instantiation rules
	RuleInstantiationBloat Rule = "instantiation-bloat"
)

// Description returns the canonical human-readable text for the rule.
func (r Rule) Description() string {
	switch r {
	case RuleInterfaceNoDataMembers:
		return "interface must not declare data members"
	case RuleInterfaceDtorDeclared:
		return "interface must declare a public, virtual, noexcept, defaulted destructor"
	case RuleInterfaceDtorPublic:
		return "interface destructor must be public"
	case RuleInterfaceDtorVirtual:
		return "interface destructor must be virtual"
	case RuleInterfaceDtorNoexcept:
		return "interface destructor must be noexcept"
	case RuleInterfaceDtorDefaulted:
		return "interface destructor must be defaulted"
	case RuleInterfaceCtorProtected:
		return "interface constructors must be protected"
	case RuleInterfaceCtorNoexcept:
		return "interface constructors must be noexcept"
	case RuleInterfaceCtorDefaulted:
		return "interface constructors must be defaulted"
	case RuleInterfaceAssignHidden:
		return "interface copy/move assignment must be protected"
	case RuleInterfaceAssignNoexcept:
		return "interface copy/move assignment must be noexcept"
	case RuleInterfaceAssignDefault:
		return "interface copy/move assignment must be defaulted"
	case RuleInterfaceMethodPublic:
		return "interface methods must be public"
	case RuleInterfaceMethodPure:
		return "interface methods must be pure virtual"
	case RuleInterfaceBaseRole:
		return "every direct base of an interface must itself be an interface"
	case RuleMixinNoDataMembers:
		return "mixin must not declare data members"
	case RuleMixinDtorDeclared:
		return "mixin must declare a protected, non-virtual, noexcept, defaulted destructor"
	case RuleMixinDtorProtected:
		return "mixin destructor must be protected"
	case RuleMixinDtorNonVirtual:
		return "mixin destructor must not be virtual"
	case RuleMixinDtorNoexcept:
		return "mixin destructor must be noexcept"
	case RuleMixinDtorDefaulted:
		return "mixin destructor must be defaulted"
	case RuleMixinCtorHidden:
		return "mixin constructors must be protected or private"
	case RuleMixinCtorNoexcept:
		return "mixin constructors must be noexcept"
	case RuleMixinAssignHidden:
		return "mixin copy/move assignment must be protected"
	case RuleMixinAssignNoexcept:
		return "mixin copy/move assignment must be noexcept"
	case RuleMixinNoPureVirtual:
		return "mixin must not declare pure virtual methods"
	case RuleMixinBaseRole:
		return "every direct base of a mixin must itself be a mixin"
	case RuleBaseClassAbstract:
		return "base class must declare at least one pure virtual method"
	case RuleBaseClassDtorDeclared:
		return "base class must declare a public, virtual destructor"
	case RuleBaseClassDtorPublic:
		return "base class destructor must be public"
	case RuleBaseClassDtorVirtual:
		return "base class destructor must be virtual"
	case RuleBaseClassCtorHidden:
		return "base class constructors must be protected or private"
	case RuleBaseClassAssignHidden:
		return "base class copy/move assignment must be protected"
	case RuleInheritanceCycle:
		return "class participates in an inheritance cycle"
	case RuleMalformedInput:
		return "declaration violates the declaration model's structural assumptions"
	case RuleUnknownBase:
		return "direct base is not declared in the analysis unit"
	case RuleInstantiationBloat:
		return "template instantiation count exceeds the bloat threshold"
	default:
		return string(r)
	}
}

// Violation is one conformance finding. Structural rules are binary, so
// rule violations always carry SeverityError; softer severities are
// reserved for policy-controlled findings (cycles, unknown bases).
type Violation struct {
	Class    string         `json:"class"`
	Category Classification `json:"category"` // Category the class was checked against
	Rule     Rule           `json:"rule"`
	Message  string         `json:"message"`
	Member   string         `json:"member,omitempty"` // Offending member, when one exists
	Severity Severity       `json:"severity"`
	Location SourceLocation `json:"location"`
}

// NewViolation builds an error-severity violation with the rule's
// canonical message.
func NewViolation(class string, category Classification, rule Rule, member string, loc SourceLocation) Violation {
	return Violation{
		Class:    class,
		Category: category,
		Rule:     rule,
		Message:  rule.Description(),
		Member:   member,
		Severity: SeverityError,
		Location: loc,
	}
}

// Key identifies a violation for de-duplication: the same broken rule on
// the same member of the same class is one finding, wherever it was
// detected.
func (v Violation) Key() string {
	return fmt.Sprintf("%s|%s|%s", v.Class, v.Rule, v.Member)
}

func (v Violation) String() string {
	loc := fmt.Sprintf("%s:%d", v.Location.File, v.Location.Line)
	if v.Member != "" {
		return fmt.Sprintf("%s: [%s] %s::%s: %s", loc, v.Rule, v.Class, v.Member, v.Message)
	}
	return fmt.Sprintf("%s: [%s] %s: %s", loc, v.Rule, v.Class, v.Message)
}
