package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lotcheck/pkg/cache"
	apperrors "github.com/matzehuels/lotcheck/pkg/errors"
	"github.com/matzehuels/lotcheck/pkg/layout"
	"github.com/matzehuels/lotcheck/pkg/rules"
	"github.com/matzehuels/lotcheck/pkg/validate"
)

// checkCommand creates the check command for validating layout files.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		policyPath string
		output     string
		jsonOut    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "check [layout.json]",
		Short: "Validate a facility layout file",
		Long: `Validate a facility layout file.

The check command loads a layout JSON file and runs the full validation
pipeline: plane bounds, element overlaps, surface placement rules, and
entrance-to-exit drivability. Every violation is reported; the exit code is
non-zero when the layout is invalid.

Thresholds can be tuned with a TOML policy file (--policy). Reports are
cached locally so re-checking an unchanged layout is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args[0], policyPath, output, jsonOut, noCache)
		},
	}

	cmd.Flags().StringVarP(&policyPath, "policy", "p", "", "TOML policy file with threshold overrides")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON report to a file")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the JSON report to stdout instead of the summary")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the local report cache")

	return cmd
}

// runCheck loads the layout and policy, obtains a report (cached or fresh),
// and renders it.
func (c *CLI) runCheck(ctx context.Context, input, policyPath, output string, jsonOut, noCache bool) error {
	if err := apperrors.ValidatePath(input); err != nil {
		return err
	}
	if output != "" {
		if err := apperrors.ValidatePath(output); err != nil {
			return err
		}
	}

	pol := rules.DefaultPolicy()
	if policyPath != "" {
		var err error
		if pol, err = rules.LoadPolicy(policyPath); err != nil {
			return fmt.Errorf("load policy: %w", err)
		}
	}

	l, err := layout.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	store, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	report, cached := c.obtainReport(ctx, store, l, pol)

	if output != "" {
		data, err := layout.MarshalReport(report)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("write report %s: %w", output, err)
		}
	}

	if jsonOut {
		if err := layout.WriteReport(report, os.Stdout); err != nil {
			return err
		}
	} else {
		renderReport(input, l, report, cached)
	}

	if !report.Valid {
		return fmt.Errorf("layout has %d violation(s)", len(report.Violations))
	}
	return nil
}

// obtainReport returns the cached report for this layout and policy when one
// exists, and otherwise validates and stores the result. Cache failures only
// cost a recomputation.
func (c *CLI) obtainReport(ctx context.Context, store cache.Cache, l *layout.Layout, pol rules.Policy) (layout.Report, bool) {
	key := cache.ReportKey(l, pol)

	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		var report layout.Report
		if json.Unmarshal(data, &report) == nil {
			c.Logger.Debug("report cache hit", "key", key)
			return report, true
		}
	}

	start := time.Now()
	report := layout.NewReport(validate.New(pol).Validate(l))
	c.Logger.Debug("validation complete",
		"elements", len(l.Elements),
		"violations", len(report.Violations),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if data, err := layout.MarshalReport(report); err == nil {
		if err := store.Set(ctx, key, data, reportTTL); err != nil {
			c.Logger.Debug("report cache store failed", "err", err)
		}
	}
	return report, false
}

// renderReport prints the human-readable summary.
func renderReport(input string, l *layout.Layout, report layout.Report, cached bool) {
	if report.Valid {
		printSuccess("Layout is valid")
	} else {
		printError("Layout is invalid")
	}
	printFile(input)
	printStats(len(l.Elements), len(report.Violations), cached)

	if len(report.Violations) > 0 {
		printNewline()
		for _, v := range report.Violations {
			subject := v.ElementID
			if v.TargetID != "" {
				subject = fmt.Sprintf("%s %s %s", v.ElementID, iconArrow, v.TargetID)
			}
			printViolation(string(v.Type), subject, v.Message)
		}
	}
}
