package cmd

import (
	"fmt"
	"io"

	"github.com/featlab/featlab/internal/tree"
	"github.com/featlab/featlab/internal/ui"
	"github.com/featlab/featlab/internal/vpath"
	"github.com/spf13/cobra"
)

var exportFlag bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the virtual file tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTree(cmd.OutOrStdout(), appFlag, exportFlag)
	},
}

func init() {
	treeCmd.Flags().BoolVar(&exportFlag, "export", false, "Print the structure export format instead of the tree view")
	rootCmd.AddCommand(treeCmd)
}

func RunTree(w io.Writer, appID string, export bool) error {
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
	if len(nodes) == 0 {
		fmt.Fprintln(w, "empty tree")
		return nil
	}

	if export {
		contents, err := loadContents(sqlDB, appID)
		if err != nil {
			return err
		}
		fmt.Fprint(w, tree.Serialize(nodes, contents))
		return nil
	}

	for _, n := range tree.Sort(nodes) {
		depth := vpath.Depth(n.Path)
		if n.Kind == tree.Folder {
			ui.FolderLine(w, depth, n.Name)
		} else {
			ui.FileLine(w, depth, n.Name)
		}
	}
	return nil
}
