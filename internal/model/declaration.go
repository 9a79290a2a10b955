package model

// MemberKind identifies what a member declaration is
type MemberKind string

const (
	KindDataMember  MemberKind = "data_member" // Non-static data member
	KindConstructor MemberKind = "constructor" // Any constructor (default, copy, move, converting)
	KindDestructor  MemberKind = "destructor"  // Destructor
	KindCopyAssign  MemberKind = "copy_assign" // Copy assignment operator
	KindMoveAssign  MemberKind = "move_assign" // Move assignment operator
	KindMethod      MemberKind = "method"      // Ordinary (non-special) member function
)

// Visibility is the access level of a member or a base
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// Virtuality describes the virtual-ness of a member function
type Virtuality string

const (
	VirtualityNone    Virtuality = "none"         // Not virtual
	VirtualityVirtual Virtuality = "virtual"      // Virtual, has a body
	VirtualityPure    Virtuality = "pure_virtual" // Pure virtual (= 0)
)

// SourceLocation points into the analyzed source
type SourceLocation struct {
	File   string `json:"file" yaml:"file"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// Before reports whether l sorts before other (file, then line, then column).
func (l SourceLocation) Before(other SourceLocation) bool {
	if l.File != other.File {
		return l.File < other.File
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

// MemberDeclaration captures the structural facts of one class member.
// It carries only what the conformance rules need; everything else the
// front-end resolved is already gone.
type MemberDeclaration struct {
	Name       string         `json:"name" yaml:"name"`
	Kind       MemberKind     `json:"kind" yaml:"kind"`
	Visibility Visibility     `json:"visibility" yaml:"visibility"`
	Virtuality Virtuality     `json:"virtuality,omitempty" yaml:"virtuality,omitempty"`
	Noexcept   bool           `json:"noexcept,omitempty" yaml:"noexcept,omitempty"`
	Defaulted  bool           `json:"defaulted,omitempty" yaml:"defaulted,omitempty"`
	Deleted    bool           `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Location   SourceLocation `json:"location" yaml:"location"`
}

// NonVirtual reports whether the member is not virtual. The wire format
// omits the virtuality field for non-virtual members, so an empty value
// means none.
func (m *MemberDeclaration) NonVirtual() bool {
	return m.Virtuality == VirtualityNone || m.Virtuality == ""
}

// BaseRef names a direct base class together with its inheritance visibility
type BaseRef struct {
	Name       string     `json:"name" yaml:"name"`
	Visibility Visibility `json:"visibility" yaml:"visibility"`
}

// ClassDeclaration is one normalized class from the analysis unit.
// Immutable once decoded; the engine never mutates it.
type ClassDeclaration struct {
	Name     string              `json:"name" yaml:"name"` // Fully qualified
	Members  []MemberDeclaration `json:"members" yaml:"members"`
	Bases    []BaseRef           `json:"bases,omitempty" yaml:"bases,omitempty"`
	Location SourceLocation      `json:"location" yaml:"location"`
}

// Destructor returns the declared destructor, or nil when none is declared.
func (c *ClassDeclaration) Destructor() *MemberDeclaration {
	for i := range c.Members {
		if c.Members[i].Kind == KindDestructor {
			return &c.Members[i]
		}
	}
	return nil
}

// MembersOfKind returns the members of the given kind in declaration order.
func (c *ClassDeclaration) MembersOfKind(kind MemberKind) []MemberDeclaration {
	var out []MemberDeclaration
	for _, m := range c.Members {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// DataMembers returns all non-static data members.
func (c *ClassDeclaration) DataMembers() []MemberDeclaration {
	return c.MembersOfKind(KindDataMember)
}

// PureVirtualMethods returns ordinary methods declared pure virtual.
func (c *ClassDeclaration) PureVirtualMethods() []MemberDeclaration {
	var out []MemberDeclaration
	for _, m := range c.Members {
		if m.Kind == KindMethod && m.Virtuality == VirtualityPure {
			out = append(out, m)
		}
	}
	return out
}

// HasVirtualMembers reports whether any member is virtual or pure virtual.
func (c *ClassDeclaration) HasVirtualMembers() bool {
	for _, m := range c.Members {
		if m.Virtuality == VirtualityVirtual || m.Virtuality == VirtualityPure {
			return true
		}
	}
	return false
}

// Unit is one complete analysis unit as handed over by the front-end:
// every class declaration and every template call site, semantically
// resolved. The core never sees source text.
type Unit struct {
	Name      string             `json:"name,omitempty" yaml:"name,omitempty"`
	Classes   []ClassDeclaration `json:"classes" yaml:"classes"`
	CallSites []CallSite         `json:"call_sites,omitempty" yaml:"call_sites,omitempty"`
}
