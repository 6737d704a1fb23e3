package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/featlab/featlab/internal/ui"
	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage per-app environment variables",
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List local environment variables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunEnvList(cmd.OutOrStdout(), appFlag)
	},
}

var envSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a local environment variable",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunEnvSet(cmd.OutOrStdout(), appFlag, args[0], args[1])
	},
}

var envPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace local variables with the backend's",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunEnvPull(cmd.Context(), cmd.OutOrStdout(), appFlag)
	},
}

var envPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Send local variables to the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunEnvPush(cmd.Context(), cmd.OutOrStdout(), appFlag)
	},
}

func init() {
	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envSetCmd)
	envCmd.AddCommand(envPullCmd)
	envCmd.AddCommand(envPushCmd)
	rootCmd.AddCommand(envCmd)
}

func loadEnvironments(appID string) (map[string]string, error) {
	sqlDB, err := openWorkspace()
	if err != nil {
		return nil, err
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`SELECT key, value FROM environments WHERE app_id = ?`, appID)
	if err != nil {
		return nil, fmt.Errorf("querying environments: %w", err)
	}
	defer rows.Close()

	vars := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning environment: %w", err)
		}
		vars[k] = v
	}
	return vars, rows.Err()
}

func RunEnvList(w io.Writer, appID string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	vars, err := loadEnvironments(appID)
	if err != nil {
		return err
	}
	if len(vars) == 0 {
		fmt.Fprintln(w, "no environment variables")
		return nil
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s=%s\n", k, vars[k])
	}
	return nil
}

func RunEnvSet(w io.Writer, appID, key, value string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	sqlDB, err := openWorkspace()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	_, err = sqlDB.Exec(`
		INSERT INTO environments (app_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT (app_id, key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')
	`, appID, key, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	fmt.Fprintf(w, "%s set\n", key)
	return nil
}

func RunEnvPull(ctx context.Context, w io.Writer, appID string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	backend, err := backendClient()
	if err != nil {
		return err
	}
	vars, err := backend.FetchEnvironments(ctx, appID)
	if err != nil {
		ui.NoticeLine(w, "could not fetch environments: "+err.Error())
		return nil
	}

	sqlDB, err := openWorkspace()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	tx, err := sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("beginning environment update: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM environments WHERE app_id = ?`, appID); err != nil {
		tx.Rollback()
		return fmt.Errorf("clearing environments: %w", err)
	}
	for k, v := range vars {
		if _, err := tx.Exec(`INSERT INTO environments (app_id, key, value) VALUES (?, ?, ?)`, appID, k, v); err != nil {
			tx.Rollback()
			return fmt.Errorf("storing %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing environments: %w", err)
	}
	fmt.Fprintf(w, "pulled %d variable(s)\n", len(vars))
	return nil
}

func RunEnvPush(ctx context.Context, w io.Writer, appID string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	vars, err := loadEnvironments(appID)
	if err != nil {
		return err
	}
	backend, err := backendClient()
	if err != nil {
		return err
	}
	if err := backend.SaveEnvironments(ctx, appID, vars); err != nil {
		ui.NoticeLine(w, "could not save environments: "+err.Error())
		return nil
	}
	fmt.Fprintf(w, "pushed %d variable(s)\n", len(vars))
	return nil
}
