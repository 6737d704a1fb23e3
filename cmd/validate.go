package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/featlab/featlab/internal/ui"
	"github.com/featlab/featlab/internal/validate"
	"github.com/featlab/featlab/internal/vpath"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check feature documents against the structural rules",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return RunValidate(cmd.OutOrStdout(), appFlag, path)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// RunValidate prints diagnostics for one document, or all of the app's
// documents when path is empty. Diagnostics are advisory: the command
// succeeds either way.
func RunValidate(w io.Writer, appID, path string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	sqlDB, err := openWorkspace()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	contents, err := loadContents(sqlDB, appID)
	if err != nil {
		return err
	}

	var paths []string
	if path != "" {
		normalized := vpath.Normalize(path)
		if _, ok := contents[normalized]; !ok {
			return fmt.Errorf("no document at %s", normalized)
		}
		paths = []string{normalized}
	} else {
		for p := range contents {
			paths = append(paths, p)
		}
		sort.Strings(paths)
	}

	total := 0
	for _, p := range paths {
		for _, d := range validate.Check(contents[p]) {
			ui.DiagnosticLine(w, p, d.Line, d.Message)
			total++
		}
	}
	if total == 0 {
		fmt.Fprintf(w, "no issues in %d document(s)\n", len(paths))
	} else {
		fmt.Fprintf(w, "%d issue(s) in %d document(s)\n", total, len(paths))
	}
	return nil
}
