package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"

	"github.com/featlab/featlab/internal/catalog"
	"github.com/featlab/featlab/internal/language"
	"github.com/featlab/featlab/internal/lsp"
	"github.com/spf13/cobra"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Serve the language service over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunLSP(cmd.Context(), appFlag)
	},
}

func init() {
	rootCmd.AddCommand(lspCmd)
}

// RunLSP serves LSP on stdin/stdout until the client disconnects. The
// completion catalog is the app's cached step list; run `steps sync`
// beforehand to refresh it.
func RunLSP(ctx context.Context, appID string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	sqlDB, err := openWorkspace()
	if err != nil {
		return err
	}
	patterns, err := loadStepCache(sqlDB, appID)
	sqlDB.Close()
	if err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	store := catalog.NewStore()
	store.Replace(patterns)
	server := lsp.NewServer(language.NewService(store), logger)

	stream := jsonrpc2.NewStream(stdio{})
	conn := jsonrpc2.NewConn(stream)
	server.SetNotifier(func(ctx context.Context, method string, params any) error {
		return conn.Notify(ctx, method, params)
	})
	conn.Go(ctx, server.Handler())

	select {
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	case <-conn.Done():
		return nil
	}
}

// stdio adapts the process's standard streams to an io.ReadWriteCloser.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func (stdio) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

var _ io.ReadWriteCloser = stdio{}
