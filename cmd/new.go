package cmd

import (
	"fmt"
	"io"

	"github.com/featlab/featlab/internal/tree"
	"github.com/featlab/featlab/internal/vpath"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create folders and feature files in the virtual tree",
}

var newFolderCmd = &cobra.Command{
	Use:   "folder <path>",
	Short: "Create a folder, chain-creating missing ancestors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunNewFolder(cmd.OutOrStdout(), appFlag, args[0])
	},
}

var newFileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Create a feature file, chain-creating missing folders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunNewFile(cmd.OutOrStdout(), appFlag, args[0])
	},
}

func init() {
	newCmd.AddCommand(newFolderCmd)
	newCmd.AddCommand(newFileCmd)
	rootCmd.AddCommand(newCmd)
}

func RunNewFolder(w io.Writer, appID, path string) error {
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

	after, ok := tree.InsertFolder(nodes, path)
	if !ok {
		fmt.Fprintf(w, "%s already exists\n", vpath.Normalize(path))
		return nil
	}
	if err := storeNodes(sqlDB, appID, after); err != nil {
		return err
	}
	fmt.Fprintf(w, "folder %s created\n", vpath.Normalize(path))
	return nil
}

func RunNewFile(w io.Writer, appID, path string) error {
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

	after, ok := tree.InsertFile(nodes, path)
	if !ok {
		fmt.Fprintf(w, "%s already exists\n", vpath.Normalize(path))
		return nil
	}
	if err := storeNodes(sqlDB, appID, after); err != nil {
		return err
	}

	normalized := vpath.Normalize(path)
	_, err = sqlDB.Exec(
		`INSERT OR IGNORE INTO documents (app_id, path, content) VALUES (?, ?, '')`,
		appID, normalized,
	)
	if err != nil {
		return fmt.Errorf("creating document for %s: %w", normalized, err)
	}
	fmt.Fprintf(w, "file %s created\n", normalized)
	return nil
}
