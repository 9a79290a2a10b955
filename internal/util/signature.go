package util

import (
	"strings"
)

// NormalizeType canonicalizes one argument-type signature so that
// spelling variations of the same type produce the same structural key.
// The front-end already resolved semantics; this only collapses
// whitespace noise ("const char *" vs "const char*").
func NormalizeType(sig string) string {
	sig = strings.TrimSpace(sig)
	fields := strings.Fields(sig)
	sig = strings.Join(fields, " ")

	// Glue pointer/reference declarators to the type they modify.
	sig = strings.ReplaceAll(sig, " *", "*")
	sig = strings.ReplaceAll(sig, " &&", "&&")
	sig = strings.ReplaceAll(sig, " &", "&")
	sig = strings.ReplaceAll(sig, " [", "[")
	sig = strings.ReplaceAll(sig, "[ ", "[")
	sig = strings.ReplaceAll(sig, " ]", "]")

	return sig
}

// SignatureKey builds the structural grouping key for an ordered
// argument-type signature sequence.
func SignatureKey(args []string) string {
	if len(args) == 0 {
		return "()"
	}
	normalized := make([]string, len(args))
	for i, a := range args {
		normalized[i] = NormalizeType(a)
	}
	return strings.Join(normalized, ", ")
}
