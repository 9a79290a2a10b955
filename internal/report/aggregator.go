// Package report merges conformance and instantiation findings into one
// ordered result set. The aggregator is a pure function of its inputs
// and never drops a finding; formatting belongs to the caller.
package report

import (
	"sort"
	"time"

	"github.com/nic-ch/hierlint/internal/model"
)

// Aggregate builds the final report. Findings are stable-sorted by
// source location, then severity, with rule and class as deterministic
// tie-breakers, so identical input always produces an identical report
// body. Duplicate violations (same class, rule and member) collapse to
// one finding.
func Aggregate(unit string, classes map[string]model.Classification, violations []model.Violation, instantiations []model.InstantiationReport) *Report {
	findings := make([]Finding, 0, len(violations)+len(instantiations))

	seen := make(map[string]bool)
	for _, v := range violations {
		v := v
		if key := v.Key(); seen[key] {
			continue
		} else {
			seen[key] = true
		}
		findings = append(findings, Finding{
			Kind:      FindingViolation,
			Severity:  v.Severity,
			Location:  v.Location,
			Violation: &v,
		})
	}

	bloated := 0
	for _, ir := range instantiations {
		ir := ir
		severity := model.SeverityInfo
		if ir.Exceeded {
			severity = model.SeverityWarning
			bloated++
		}
		findings = append(findings, Finding{
			Kind:          FindingInstantiation,
			Severity:      severity,
			Location:      ir.Location,
			Instantiation: &ir,
		})
	}

	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Location != b.Location {
			return a.Location.Before(b.Location)
		}
		if a.Severity != b.Severity {
			return a.Severity.MoreSevere(b.Severity)
		}
		return findingKey(a) < findingKey(b)
	})

	summary := Summary{
		Classes:      len(classes),
		ByRole:       make(map[model.Classification]int),
		Templates:    len(instantiations),
		BloatedCount: bloated,
	}
	for _, c := range classes {
		summary.ByRole[c]++
	}
	for _, f := range findings {
		if f.Kind == FindingViolation {
			summary.Violations++
		}
		if f.Severity == model.SeverityError {
			summary.Errors++
		}
	}

	return &Report{
		Unit:        unit,
		GeneratedAt: time.Now().UTC(),
		Classes:     classes,
		Findings:    findings,
		Summary:     summary,
	}
}

func findingKey(f Finding) string {
	if f.Violation != nil {
		return f.Violation.Key()
	}
	if f.Instantiation != nil {
		return "~" + f.Instantiation.Template
	}
	return "~~"
}
