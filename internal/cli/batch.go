package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nic-ch/hierlint/internal/report"
	"github.com/nic-ch/hierlint/internal/worker"
)

var (
	concurrency int
	outputDir   string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Analyze multiple units from a list file in parallel",
	Long: `Batch analyzes many analysis units concurrently:
- Read unit file paths from the list file (one per line)
- Analyze units in parallel with a bounded worker count
- Write one report JSON per unit into the output directory
- Skip unchanged units via the result cache

Example:
  hierlint batch units.txt
  hierlint batch units.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of units analyzed at once")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./hierlint-reports", "output directory for reports")
	batchCmd.Flags().IntVar(&bloatThreshold, "threshold", 0, "instantiation bloat threshold (overrides config)")
	batchCmd.Flags().BoolVar(&strictBases, "strict-bases", false, "report bases missing from the unit")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listFile := args[0]
	ctx := context.Background()

	cfg := buildConfig()
	if bloatThreshold != 0 {
		cfg.Analysis.BloatThreshold = bloatThreshold
	}
	if strictBases {
		cfg.Analysis.StrictBases = true
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	paths, err := readPathList(listFile)
	if err != nil {
		return fmt.Errorf("read list file: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no unit paths in %s", listFile)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Analyzing %d unit(s), %d at a time\n", len(paths), concurrency)

	type outcome struct {
		path string
		rep  *report.Report
		err  error
	}

	limiter := worker.NewLimiter(concurrency)
	outcomes := make([]outcome, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		i, path := i, path
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := limiter.Do(ctx, func() error {
				rep, err := analyzeFile(ctx, cfg, path)
				outcomes[i] = outcome{path: path, rep: rep, err: err}
				return nil
			})
			if err != nil {
				outcomes[i] = outcome{path: path, err: err}
			}
		}()
	}
	wg.Wait()

	failed := 0
	withErrors := 0
	for _, out := range outcomes {
		if out.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", out.path, out.err)
			continue
		}

		name := strings.TrimSuffix(filepath.Base(out.path), filepath.Ext(out.path))
		target := filepath.Join(outputDir, name+".report.json")
		data, err := json.MarshalIndent(out.rep, "", "  ")
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: marshal report: %v\n", out.path, err)
			continue
		}
		if err := os.WriteFile(target, append(data, '\n'), 0644); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", out.path, err)
			continue
		}

		if out.rep.HasErrors() {
			withErrors++
			fmt.Fprintf(os.Stderr, "✗ %s: %d error finding(s) -> %s\n", out.path, out.rep.Summary.Errors, target)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s -> %s\n", out.path, target)
		}
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d analyzed, %d with errors, %d failed\n", len(paths)-failed, withErrors, failed)

	if failed > 0 || withErrors > 0 {
		return fmt.Errorf("%d unit(s) with error findings, %d failed", withErrors, failed)
	}
	return nil
}

// readPathList reads unit paths from a file, one per line, skipping
// blanks and comments and deduplicating.
func readPathList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
