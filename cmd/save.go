package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/featlab/featlab/internal/tree"
	"github.com/featlab/featlab/internal/ui"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Send the serialized tree structure to the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSave(cmd.Context(), cmd.OutOrStdout(), appFlag)
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

// RunSave exports the tree in the structure format and posts it as one
// blob. A failed save is surfaced, not retried.
func RunSave(ctx context.Context, w io.Writer, appID string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	sqlDB, err := openWorkspace()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	nodes, err := loadNodes(sqlDB, appID)
	if err != nil {
		return err
	}
	contents, err := loadContents(sqlDB, appID)
	if err != nil {
		return err
	}

	backend, err := backendClient()
	if err != nil {
		return err
	}

	structure := tree.Serialize(nodes, contents)
	if err := backend.SaveStructure(ctx, structure); err != nil {
		ui.NoticeLine(w, "could not save: "+err.Error())
		return nil
	}
	fmt.Fprintln(w, "structure saved")
	return nil
}
