package instantiate

import (
	"regexp"
	"strings"

	"github.com/nic-ch/hierlint/internal/model"
)

// Bloat-shape heuristics. These route a deduplication suggestion, they
// do not prove anything: an unmatched shape still gets flagged, just
// with the generic suggestion.

// Fixed-size char arrays, decayed pointers and dynamic strings all
// count as string-like.
var stringLikePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(const )?char\[\d*\]$`),
	regexp.MustCompile(`^(const )?char\*( const)?$`),
	regexp.MustCompile(`^(const )?wchar_t(\[\d*\]|\*)$`),
	regexp.MustCompile(`^(const )?std::w?string(_view)?(&&?)?$`),
	regexp.MustCompile(`^(const )?string(&&?)?$`),
}

var primitiveTypes = map[string]bool{
	"bool": true, "char": true, "short": true, "int": true, "long": true,
	"long long": true, "unsigned": true, "unsigned char": true,
	"unsigned short": true, "unsigned int": true, "unsigned long": true,
	"unsigned long long": true, "float": true, "double": true,
	"long double": true, "size_t": true, "std::size_t": true,
}

// suggestFor classifies the shape of a flagged instantiation group and
// returns the suggestion to route with it.
func suggestFor(tuples [][]string) string {
	if stringLikeVariants(tuples) {
		return model.SuggestPointerDecay
	}
	if valueReferenceSplit(tuples) {
		return model.SuggestMoveCopyPair
	}
	return model.SuggestExtractCommon
}

// stringLikeVariants reports whether the signatures only diverge at
// positions where every variant is string-like (char arrays of
// different sizes, pointers, dynamic strings).
func stringLikeVariants(tuples [][]string) bool {
	arity, ok := commonArity(tuples)
	if !ok {
		return false
	}

	diverged := false
	for pos := 0; pos < arity; pos++ {
		variants := variantsAt(tuples, pos)
		if len(variants) == 1 {
			continue
		}
		diverged = true
		for _, v := range variants {
			if !isStringLike(v) {
				return false
			}
		}
	}
	return diverged
}

// valueReferenceSplit reports whether the signatures differ only in
// value-vs-reference category for an otherwise identical, movable owned
// type at every diverging position.
func valueReferenceSplit(tuples [][]string) bool {
	arity, ok := commonArity(tuples)
	if !ok {
		return false
	}

	diverged := false
	for pos := 0; pos < arity; pos++ {
		variants := variantsAt(tuples, pos)
		if len(variants) == 1 {
			continue
		}

		stripped := make(map[string]bool)
		for _, v := range variants {
			stripped[stripRefQualifiers(v)] = true
		}
		if len(stripped) != 1 {
			return false
		}
		for base := range stripped {
			// Primitives are copied either way; a move/copy pair
			// only pays off for owned types.
			if primitiveTypes[base] {
				return false
			}
		}
		diverged = true
	}
	return diverged
}

func isStringLike(sig string) bool {
	for _, p := range stringLikePatterns {
		if p.MatchString(sig) {
			return true
		}
	}
	return false
}

// stripRefQualifiers removes reference and const qualification so
// "const std::string&", "std::string&&" and "std::string" collapse.
func stripRefQualifiers(sig string) string {
	sig = strings.TrimSuffix(sig, "&&")
	sig = strings.TrimSuffix(sig, "&")
	sig = strings.TrimPrefix(sig, "const ")
	return strings.TrimSpace(sig)
}

func commonArity(tuples [][]string) (int, bool) {
	if len(tuples) == 0 {
		return 0, false
	}
	arity := len(tuples[0])
	for _, t := range tuples[1:] {
		if len(t) != arity {
			return 0, false
		}
	}
	return arity, true
}

func variantsAt(tuples [][]string, pos int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tuples {
		if !seen[t[pos]] {
			seen[t[pos]] = true
			out = append(out, t[pos])
		}
	}
	return out
}
