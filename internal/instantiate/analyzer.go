// Package instantiate detects unchecked template-instantiation
// proliferation. Counting is a grouping-by-structural-key over the call
// sites of one template; everything about generics mechanics stays with
// the front-end.
package instantiate

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nic-ch/hierlint/internal/model"
	"github.com/nic-ch/hierlint/internal/util"
)

// Analyzer counts distinct instantiations per template and routes a
// deduplication suggestion when the bloat threshold is reached.
type Analyzer struct {
	threshold int
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(threshold int) *Analyzer {
	if threshold < 1 {
		threshold = 4
	}
	return &Analyzer{threshold: threshold}
}

// Analyze processes every template's call-site group independently and
// in parallel, bounded by workers. Results are ordered by template name
// so permuting the input never changes the output.
func (a *Analyzer) Analyze(ctx context.Context, sites []model.CallSite, workers int) ([]model.InstantiationReport, error) {
	groups := make(map[string][]model.CallSite)
	for _, site := range sites {
		if site.Template == "" {
			continue
		}
		groups[site.Template] = append(groups[site.Template], site)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	if workers < 1 {
		workers = 1
	}

	reports := make([]model.InstantiationReport, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			reports[i] = a.AnalyzeTemplate(name, groups[name])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// AnalyzeTemplate groups one template's call sites by structural
// signature equality. Grouping ignores call locations, so the count is
// invariant under call-site reordering.
func (a *Analyzer) AnalyzeTemplate(name string, sites []model.CallSite) model.InstantiationReport {
	distinct := make(map[string][]string) // signature key -> normalized tuple
	var earliest model.SourceLocation
	haveLoc := false

	for _, site := range sites {
		key := util.SignatureKey(site.Args)
		if _, seen := distinct[key]; !seen {
			tuple := make([]string, len(site.Args))
			for i, arg := range site.Args {
				tuple[i] = util.NormalizeType(arg)
			}
			distinct[key] = tuple
		}
		if !haveLoc || site.Location.Before(earliest) {
			earliest = site.Location
			haveLoc = true
		}
	}

	keys := make([]string, 0, len(distinct))
	for key := range distinct {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	report := model.InstantiationReport{
		Template:   name,
		Signatures: keys,
		Count:      len(keys),
		Exceeded:   len(keys) >= a.threshold,
		Location:   earliest,
	}

	if report.Exceeded {
		tuples := make([][]string, 0, len(keys))
		for _, key := range keys {
			tuples = append(tuples, distinct[key])
		}
		report.Suggestion = suggestFor(tuples)
	}

	return report
}
