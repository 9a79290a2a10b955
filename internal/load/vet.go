package load

import (
	"fmt"

	"github.com/nic-ch/hierlint/internal/model"
)

var validKinds = map[model.MemberKind]bool{
	model.KindDataMember:  true,
	model.KindConstructor: true,
	model.KindDestructor:  true,
	model.KindCopyAssign:  true,
	model.KindMoveAssign:  true,
	model.KindMethod:      true,
}

var validVisibilities = map[model.Visibility]bool{
	model.VisibilityPublic:    true,
	model.VisibilityProtected: true,
	model.VisibilityPrivate:   true,
}

var validVirtualities = map[model.Virtuality]bool{
	model.VirtualityNone:    true,
	model.VirtualityVirtual: true,
	model.VirtualityPure:    true,
}

// Vet runs the structural sanity pass over a decoded unit. A broken
// declaration is fatal only to itself: it is reported as a
// malformed-input violation and returned in the malformed set so the
// engine can exclude it, while the rest of the unit is analyzed
// normally.
func Vet(unit *model.Unit) (violations []model.Violation, malformed map[string]bool) {
	malformed = make(map[string]bool)
	seen := make(map[string]bool)

	condemn := func(class string, loc model.SourceLocation, member, reason string) {
		v := model.NewViolation(class, model.ClassNonConforming, model.RuleMalformedInput, member, loc)
		v.Message = fmt.Sprintf("%s: %s", v.Message, reason)
		violations = append(violations, v)
		malformed[class] = true
	}

	for i := range unit.Classes {
		decl := &unit.Classes[i]

		if decl.Name == "" {
			condemn("", decl.Location, "", "class declaration has no qualified name")
			continue
		}
		if decl.Location.Line < 0 || decl.Location.Column < 0 {
			condemn(decl.Name, decl.Location, "", "negative source location")
			continue
		}
		if seen[decl.Name] {
			condemn(decl.Name, decl.Location, "", "duplicate declaration of the same qualified name")
			continue
		}
		seen[decl.Name] = true

		destructors := 0
		for _, m := range decl.Members {
			if !validKinds[m.Kind] {
				condemn(decl.Name, m.Location, m.Name, fmt.Sprintf("unknown member kind %q", m.Kind))
			}
			if !validVisibilities[m.Visibility] {
				condemn(decl.Name, m.Location, m.Name, fmt.Sprintf("unknown visibility %q", m.Visibility))
			}
			if m.Virtuality != "" && !validVirtualities[m.Virtuality] {
				condemn(decl.Name, m.Location, m.Name, fmt.Sprintf("unknown virtuality %q", m.Virtuality))
			}
			if m.Defaulted && m.Deleted {
				condemn(decl.Name, m.Location, m.Name, "member marked both defaulted and deleted")
			}
			if m.Kind == model.KindDataMember {
				if m.Virtuality == model.VirtualityVirtual || m.Virtuality == model.VirtualityPure {
					condemn(decl.Name, m.Location, m.Name, "data member marked virtual")
				}
				if m.Defaulted || m.Deleted {
					condemn(decl.Name, m.Location, m.Name, "data member marked defaulted or deleted")
				}
			}
			if m.Kind == model.KindDestructor {
				destructors++
			}
		}
		if destructors > 1 {
			condemn(decl.Name, decl.Location, "", "more than one destructor declared")
		}

		for _, b := range decl.Bases {
			if b.Name == "" {
				condemn(decl.Name, decl.Location, "", "base reference has no name")
			}
			if !validVisibilities[b.Visibility] {
				condemn(decl.Name, decl.Location, b.Name, fmt.Sprintf("unknown inheritance visibility %q", b.Visibility))
			}
		}
	}

	for _, site := range unit.CallSites {
		if site.Template == "" {
			v := model.NewViolation("", model.ClassNotApplicable, model.RuleMalformedInput, "", site.Location)
			v.Message = v.Message + ": call site has no template name"
			violations = append(violations, v)
		}
	}

	return violations, malformed
}
