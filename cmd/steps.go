package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/featlab/featlab/internal/catalog"
	"github.com/featlab/featlab/internal/fuzzy"
	"github.com/featlab/featlab/internal/snippet"
	"github.com/featlab/featlab/internal/ui"
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Work with the step-definition catalog",
}

var stepsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the step catalog from the backend into the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStepsSync(cmd.Context(), cmd.OutOrStdout(), appFlag)
	},
}

var stepsFindCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Rank cached step patterns against a query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return RunStepsFind(cmd.OutOrStdout(), appFlag, query)
	},
}

func init() {
	stepsCmd.AddCommand(stepsSyncCmd)
	stepsCmd.AddCommand(stepsFindCmd)
	rootCmd.AddCommand(stepsCmd)
}

// RunStepsSync replaces the cached catalog with the backend's current
// patterns. A failed fetch resets the cache to empty so suggestions
// degrade to "no matches" rather than surfacing stale data.
func RunStepsSync(ctx context.Context, w io.Writer, appID string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	sqlDB, err := openWorkspace()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	backend, err := backendClient()
	if err != nil {
		return err
	}

	buckets, err := backend.FetchSteps(ctx, appID)
	if err != nil {
		if resetErr := replaceStepCache(sqlDB, appID, nil); resetErr != nil {
			return resetErr
		}
		ui.NoticeLine(w, "could not fetch steps; catalog reset")
		return nil
	}

	patterns := catalog.Normalize(buckets)

	cached, err := loadStepCache(sqlDB, appID)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(cached))
	for _, p := range cached {
		known[strings.ToLower(p)] = struct{}{}
	}

	if err := replaceStepCache(sqlDB, appID, patterns); err != nil {
		return err
	}

	for _, p := range patterns {
		if _, ok := known[strings.ToLower(p)]; ok {
			ui.CachedStepLine(w, p)
		} else {
			ui.NewStepLine(w, p)
		}
	}
	ui.StepsSummaryLine(w, len(patterns))
	return nil
}

// RunStepsFind ranks the cached catalog against query and previews the
// snippet each match expands to.
func RunStepsFind(w io.Writer, appID, query string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	sqlDB, err := openWorkspace()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	patterns, err := loadStepCache(sqlDB, appID)
	if err != nil {
		return err
	}

	ranked := fuzzy.Rank(query, patterns)
	if len(ranked) == 0 {
		fmt.Fprintln(w, "no matches")
		return nil
	}
	for _, pattern := range ranked {
		fmt.Fprintln(w, pattern)
		ui.NoticeLine(w, "  "+snippet.Template("Given", pattern))
	}
	return nil
}
