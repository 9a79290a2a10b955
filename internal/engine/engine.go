// Package engine orchestrates one analysis pass: vet the unit, classify
// declarations in dependency order, re-validate conformance, analyze
// template instantiations, and join everything into a single report.
package engine

import (
	"context"
	"fmt"

	"github.com/nic-ch/hierlint/internal/classify"
	"github.com/nic-ch/hierlint/internal/conformance"
	"github.com/nic-ch/hierlint/internal/instantiate"
	"github.com/nic-ch/hierlint/internal/load"
	"github.com/nic-ch/hierlint/internal/model"
	"github.com/nic-ch/hierlint/internal/report"
	"github.com/nic-ch/hierlint/internal/worker"
)

// Engine runs complete analysis passes over analysis units
type Engine struct {
	cfg        *model.Config
	classifier *classify.Classifier
	checker    *conformance.Checker
	analyzer   *instantiate.Analyzer
}

// New creates an engine. Configuration is validated here, before any
// analysis: an invalid configuration is the only error that aborts a
// pass instead of becoming a finding.
func New(cfg *model.Config) (*Engine, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		cfg:        cfg,
		classifier: classify.NewClassifier(),
		checker:    conformance.NewChecker(),
		analyzer:   instantiate.NewAnalyzer(cfg.Analysis.BloatThreshold),
	}, nil
}

// Analyze runs one full pass over the unit. Classification is scheduled
// as a dependency-ordered task graph: each wave holds classes whose
// bases are already resolved and runs on a worker pool; cycles are
// forced to non-conforming instead of blocking the schedule. The merge
// at the end is the single synchronization point.
func (e *Engine) Analyze(ctx context.Context, unit *model.Unit) (*report.Report, error) {
	if unit == nil {
		return nil, fmt.Errorf("analyze: nil unit")
	}

	violations, malformed := load.Vet(unit)

	classifications := make(map[string]model.Classification)
	for name := range malformed {
		if name != "" {
			classifications[name] = model.ClassNonConforming
		}
	}

	graph := buildGraph(unit, malformed)
	waves, cycles := graph.schedule()

	// Cycles resolve first: every member is non-conforming, and the
	// finding stays confined to the cycle.
	cycleSeverity := model.SeverityError
	if !e.cfg.Analysis.TreatCyclesAsError {
		cycleSeverity = model.SeverityWarning
	}
	for _, cycle := range cycles {
		for _, name := range cycle {
			classifications[name] = model.ClassNonConforming
			v := model.NewViolation(name, model.ClassNonConforming, model.RuleInheritanceCycle, "", graph.classes[name].Location)
			v.Severity = cycleSeverity
			violations = append(violations, v)
		}
	}

	for _, wave := range waves {
		workers := e.cfg.EffectiveWorkers()
		if len(wave) < workers {
			workers = len(wave)
		}

		pool := worker.NewPool(workers)
		pool.Start()
		go func(wave []string) {
			for _, name := range wave {
				pool.Submit(&classifyJob{
					decl:       graph.classes[name],
					bases:      classifications,
					classifier: e.classifier,
					checker:    e.checker,
				})
			}
			pool.Close()
		}(wave)
		for _, res := range pool.Wait() {
			cr := res.(*classifyResult)
			classifications[cr.class] = cr.classification
			violations = append(violations, cr.violations...)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	if e.cfg.Analysis.StrictBases {
		violations = append(violations, e.unknownBaseFindings(graph, classifications)...)
	}

	instantiations, err := e.analyzer.Analyze(ctx, unit.CallSites, e.cfg.EffectiveWorkers())
	if err != nil {
		return nil, fmt.Errorf("instantiation analysis: %w", err)
	}

	return report.Aggregate(unit.Name, classifications, violations, instantiations), nil
}

// unknownBaseFindings reports bases the schedule could not resolve. The
// input contract promises a complete unit, so these are warnings about
// the input, not about the class. A base that was declared but condemned
// by the vet pass is not missing, so the message distinguishes it.
func (e *Engine) unknownBaseFindings(graph *depGraph, classifications map[string]model.Classification) []model.Violation {
	var out []model.Violation
	for _, name := range graph.order {
		for _, base := range graph.unknown[name] {
			v := model.NewViolation(name, classifications[name], model.RuleUnknownBase, base, graph.classes[name].Location)
			v.Severity = model.SeverityWarning
			if _, condemned := classifications[base]; condemned {
				v.Message = "direct base was excluded from analysis as malformed input"
			}
			out = append(out, v)
		}
	}
	return out
}

// classifyJob classifies one declaration and re-validates its full rule
// set. Jobs in one wave read the shared classification map concurrently
// but never write it; merging happens between waves.
type classifyJob struct {
	decl       *model.ClassDeclaration
	bases      map[string]model.Classification
	classifier *classify.Classifier
	checker    *conformance.Checker
}

type classifyResult struct {
	class          string
	classification model.Classification
	violations     []model.Violation
}

func (r *classifyResult) GetError() error { return nil }

func (j *classifyJob) Execute(ctx context.Context) worker.Result {
	res := j.classifier.Classify(j.decl, j.bases)
	return &classifyResult{
		class:          res.Class,
		classification: res.Classification,
		violations:     j.checker.Check(j.decl, res.Classification, j.bases),
	}
}
