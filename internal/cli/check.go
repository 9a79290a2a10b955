package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nic-ch/hierlint/internal/cache"
	"github.com/nic-ch/hierlint/internal/engine"
	"github.com/nic-ch/hierlint/internal/load"
	"github.com/nic-ch/hierlint/internal/model"
	"github.com/nic-ch/hierlint/internal/report"
)

var (
	outJSON        string
	bloatThreshold int
	workers        int
	strictBases    bool
	cyclesWarn     bool
	noCache        bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <unit-file>",
	Short: "Analyze one unit and report conformance and bloat findings",
	Long: `Check runs a full analysis pass over one analysis unit:
- Classify every class declaration into its hierarchy role
- Validate each class against the full rule set of its role
- Detect inheritance cycles without blocking the pass
- Count distinct template instantiations and flag bloat

The unit file is the JSON (or YAML) declaration model emitted by an
external front-end.

Example:
  hierlint check unit.json
  hierlint check unit.json --json findings.json --threshold 6
  hierlint check unit.yaml --strict-bases`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&outJSON, "json", "", "write the report JSON to this path (default: stdout)")
	checkCmd.Flags().IntVar(&bloatThreshold, "threshold", 0, "instantiation bloat threshold (overrides config)")
	checkCmd.Flags().IntVar(&workers, "workers", 0, "concurrent classification workers (0 = NumCPU)")
	checkCmd.Flags().BoolVar(&strictBases, "strict-bases", false, "report bases missing from the unit")
	checkCmd.Flags().BoolVar(&cyclesWarn, "cycles-warn", false, "downgrade inheritance cycles to warnings")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := context.Background()

	cfg := buildConfig()
	if bloatThreshold != 0 {
		cfg.Analysis.BloatThreshold = bloatThreshold
	}
	if workers != 0 {
		cfg.Analysis.Workers = workers
	}
	if strictBases {
		cfg.Analysis.StrictBases = true
	}
	if cyclesWarn {
		cfg.Analysis.TreatCyclesAsError = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	rep, err := analyzeFile(ctx, cfg, path)
	if err != nil {
		return err
	}

	if err := emitReport(rep, outJSON); err != nil {
		return err
	}
	printSummary(rep)

	if rep.HasErrors() {
		return fmt.Errorf("%d error finding(s) in %s", rep.Summary.Errors, path)
	}
	return nil
}

// analyzeFile runs one unit through the engine, consulting the result
// cache keyed by the raw input bytes.
func analyzeFile(ctx context.Context, cfg *model.Config, path string) (*report.Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read unit: %w", err)
	}

	var store cache.Store
	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		store = cache.NewLayeredStore(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}

	key := cache.Key(raw)
	if store != nil {
		if data, found := store.Get(key); found {
			var cached report.Report
			if err := json.Unmarshal(data, &cached); err == nil {
				if cfg.Output.Verbose {
					fmt.Fprintf(os.Stderr, "Cache hit: %s\n", path)
				}
				return &cached, nil
			}
			// Unreadable entry, fall through to a fresh pass.
			_ = store.Delete(key)
		}
	}

	unit, err := load.Decode(path, raw)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	rep, err := eng.Analyze(ctx, unit)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Analyzed %s in %v\n", path, time.Since(started).Round(time.Millisecond))
	}

	if store != nil {
		if data, err := json.Marshal(rep); err == nil {
			_ = store.Set(key, data, cfg.Cache.TTL)
		}
	}

	return rep, nil
}

func emitReport(rep *report.Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func printSummary(rep *report.Report) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Unit:        %s\n", rep.Unit)
	fmt.Fprintf(os.Stderr, "Classes:     %d\n", rep.Summary.Classes)
	for _, role := range []model.Classification{
		model.ClassInterface, model.ClassMixin, model.ClassBaseClass,
		model.ClassConcrete, model.ClassNonConforming, model.ClassNotApplicable,
	} {
		if n := rep.Summary.ByRole[role]; n > 0 {
			fmt.Fprintf(os.Stderr, "  %-16s %d\n", role.String()+":", n)
		}
	}
	fmt.Fprintf(os.Stderr, "Violations:  %d (%d errors)\n", rep.Summary.Violations, rep.Summary.Errors)
	fmt.Fprintf(os.Stderr, "Templates:   %d (%d bloated)\n", rep.Summary.Templates, rep.Summary.BloatedCount)
}
