package cmd

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajxudir/depsync/pkg/config"
	"github.com/ajxudir/depsync/pkg/errors"
	"github.com/ajxudir/depsync/pkg/manifest"
	"github.com/ajxudir/depsync/pkg/output"
	"github.com/ajxudir/depsync/pkg/reconcile"
	"github.com/ajxudir/depsync/pkg/registry"
	"github.com/ajxudir/depsync/pkg/verbose"
	"github.com/ajxudir/depsync/pkg/warnings"
)

// CLI flags
var (
	checkUpdateFlag      bool
	checkRegistryFlag    string
	checkTimeoutFlag     int
	checkConcurrencyFlag int
	checkConfigFlag      string
	checkOutputFlag      string
	checkFailOnOutdated  bool
	checkNoProgressFlag  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [manifest]",
	Short: "Check dependencies for available updates",
	Long: `Compare every dependency and devDependency in a package.json against the
latest version published on the registry. With --update, rewrite the manifest
with the new constraints, keeping the original range markers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVarP(&checkUpdateFlag, "update", "u", false, "Write updated versions back to the manifest")
	checkCmd.Flags().StringVar(&checkRegistryFlag, "registry", "", "Registry base URL (default from config)")
	checkCmd.Flags().IntVar(&checkTimeoutFlag, "timeout", 0, "Per-request timeout in seconds (default from config)")
	checkCmd.Flags().IntVar(&checkConcurrencyFlag, "concurrency", 0, "Maximum simultaneous lookups (0 = unbounded)")
	checkCmd.Flags().StringVarP(&checkConfigFlag, "config", "c", "", "Config file path")
	checkCmd.Flags().StringVarP(&checkOutputFlag, "output", "o", "", "Output format: json, csv (default: table)")
	checkCmd.Flags().BoolVar(&checkFailOnOutdated, "fail-on-outdated", false, "Exit with code 1 when updates are available")
	checkCmd.Flags().BoolVar(&checkNoProgressFlag, "no-progress", false, "Disable the progress indicator")
}

// runCheck executes the check command: load, reconcile, report, apply.
//
// It performs the following operations:
//   - Step 1: Loads configuration and the manifest (fatal before any network I/O)
//   - Step 2: Reconciles both dependency groups concurrently against the registry
//   - Step 3: Prints warnings and the report, then applies updates if requested
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Optional manifest path (defaults to the configured one)
//
// Returns:
//   - error: Returns ExitError with appropriate code on failure
func runCheck(cmd *cobra.Command, args []string) error {
	start := time.Now()
	format := output.ParseFormat(checkOutputFlag)

	cfg, err := config.LoadConfig(checkConfigFlag, ".")
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	applyFlagOverrides(cfg)

	manifestPath := cfg.Manifest
	if len(args) > 0 {
		manifestPath = args[0]
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	deps, err := m.Group(manifest.DependenciesField)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	devDeps, err := m.Group(manifest.DevDependenciesField)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	verbose.ManifestLoaded(manifestPath, len(deps.Keys()), len(devDeps.Keys()))

	client := registry.NewClient(cfg.Registry, cfg.Timeout())
	verbose.Infof("Using registry %s with %s timeout", client.BaseURL(), cfg.Timeout())

	total := len(deps.Keys()) + len(devDeps.Keys())
	progress := output.NewProgress(os.Stderr, total, "Checking packages")
	if checkNoProgressFlag || output.IsStructured(format) || !verboseProgressAllowed() {
		progress.SetEnabled(false)
	}

	reconciler := &reconcile.Reconciler{
		Fetcher:     client,
		Concurrency: cfg.Concurrency,
		OnLookup:    progress.Increment,
	}

	// The two groups are independent batches; run them side by side and let
	// per-entry fan-out happen inside each.
	ctx := cmd.Context()
	var runtimeResult, devResult reconcile.GroupResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		runtimeResult = reconciler.Reconcile(ctx, deps, reconcile.Runtime)
	}()
	go func() {
		defer wg.Done()
		devResult = reconciler.Reconcile(ctx, devDeps, reconcile.Development)
	}()
	wg.Wait()
	progress.Done()

	report := reconcile.Aggregate(runtimeResult, devResult)
	for _, warning := range report.Warnings {
		warnings.Warnf("%s", warning.String())
	}

	if err := output.WriteReport(os.Stdout, report, format); err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}

	if checkUpdateFlag && report.HasUpdates() {
		reconcile.Apply(deps, report.UpdatesFor(reconcile.Runtime))
		reconcile.Apply(devDeps, report.UpdatesFor(reconcile.Development))
		m.SetGroup(manifest.DependenciesField, deps)
		m.SetGroup(manifest.DevDependenciesField, devDeps)
		if err := m.Save(); err != nil {
			return errors.NewExitError(errors.ExitFailure, err)
		}
	}
	printSummary(report, manifestPath, format)

	verbose.Elapsed("reconcile", time.Since(start))

	if checkFailOnOutdated && report.HasUpdates() {
		return errors.NewExitErrorf(errors.ExitUpdatesAvailable, "%d updates available", len(report.Updates))
	}
	return nil
}

// applyFlagOverrides lets explicit CLI flags win over config file values.
//
// Parameters:
//   - cfg: The loaded configuration to adjust in place
func applyFlagOverrides(cfg *config.Config) {
	if checkRegistryFlag != "" {
		cfg.Registry = checkRegistryFlag
	}
	if checkTimeoutFlag > 0 {
		cfg.TimeoutSeconds = checkTimeoutFlag
	}
	if checkConcurrencyFlag > 0 {
		cfg.Concurrency = checkConcurrencyFlag
	}
}

// verboseProgressAllowed reports whether progress rendering makes sense.
//
// Verbose debug lines and a carriage-return progress bar fight over stderr,
// so progress yields when verbose is on.
//
// Returns:
//   - bool: false when verbose logging is enabled
func verboseProgressAllowed() bool {
	return !verbose.IsEnabled()
}

// printSummary prints the human-readable closing message for table output.
//
// The update/no-update wording mirrors the report's HasUpdates decision: the
// aggregator owns that boolean, this function only renders it.
//
// Parameters:
//   - report: The aggregated report
//   - manifestPath: Path of the manifest that was checked
//   - format: Output format; structured formats suppress the summary
func printSummary(report reconcile.Report, manifestPath string, format output.Format) {
	if output.IsStructured(format) {
		return
	}

	switch {
	case !report.HasUpdates():
		fmt.Println("No dependency updates found.")
	case checkUpdateFlag:
		fmt.Printf("Updated %s. Please install the updated packages (npm/yarn/pnpm install).\n", manifestPath)
	default:
		fmt.Printf("%d updates available. Re-run with --update to apply them.\n", len(report.Updates))
	}
}
