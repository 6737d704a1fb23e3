package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/featlab/featlab/internal/client"
	"github.com/featlab/featlab/internal/db"
	"github.com/featlab/featlab/internal/tree"
)

const (
	workspaceDir = "feat"
	databasePath = "feat/feat.db"
)

func requireWorkspace() error {
	if _, err := os.Stat(workspaceDir); os.IsNotExist(err) {
		return fmt.Errorf("run `featlab init` first")
	}
	return nil
}

func openWorkspace() (*sql.DB, error) {
	sqlDB, err := db.Open(databasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return sqlDB, nil
}

func backendClient() (*client.Client, error) {
	base := os.Getenv("FEATLAB_BASE_URL")
	if base == "" {
		return nil, fmt.Errorf("FEATLAB_BASE_URL is not set")
	}
	return client.New(base, os.Getenv("FEATLAB_TOKEN"), os.Getenv("FEATLAB_REFRESH_TOKEN")), nil
}

func loadNodes(sqlDB *sql.DB, appID string) ([]tree.Node, error) {
	rows, err := sqlDB.Query(`SELECT path, name, kind FROM nodes WHERE app_id = ? ORDER BY id`, appID)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	var nodes []tree.Node
	for rows.Next() {
		var n tree.Node
		var kind string
		if err := rows.Scan(&n.Path, &n.Name, &kind); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		if kind == "file" {
			n.Kind = tree.File
		} else {
			n.Kind = tree.Folder
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// storeNodes persists the collection append-only; nodes already present
// for the app are left alone.
func storeNodes(sqlDB *sql.DB, appID string, nodes []tree.Node) error {
	for _, n := range nodes {
		_, err := sqlDB.Exec(
			`INSERT OR IGNORE INTO nodes (app_id, path, name, kind) VALUES (?, ?, ?, ?)`,
			appID, n.Path, n.Name, n.Kind.String(),
		)
		if err != nil {
			return fmt.Errorf("inserting node %s: %w", n.Path, err)
		}
	}
	return nil
}

func loadContents(sqlDB *sql.DB, appID string) (map[string]string, error) {
	rows, err := sqlDB.Query(`SELECT path, content FROM documents WHERE app_id = ?`, appID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	contents := make(map[string]string)
	for rows.Next() {
		var path, content string
		if err := rows.Scan(&path, &content); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		contents[path] = content
	}
	return contents, rows.Err()
}

func loadStepCache(sqlDB *sql.DB, appID string) ([]string, error) {
	rows, err := sqlDB.Query(`SELECT pattern FROM steps WHERE app_id = ? ORDER BY position`, appID)
	if err != nil {
		return nil, fmt.Errorf("querying steps: %w", err)
	}
	defer rows.Close()

	var patterns []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning step: %w", err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// replaceStepCache swaps the cached catalog wholesale, never leaving a
// partial list behind.
func replaceStepCache(sqlDB *sql.DB, appID string, patterns []string) error {
	tx, err := sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("beginning step cache update: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM steps WHERE app_id = ?`, appID); err != nil {
		tx.Rollback()
		return fmt.Errorf("clearing step cache: %w", err)
	}
	for i, p := range patterns {
		if _, err := tx.Exec(`INSERT INTO steps (app_id, position, pattern) VALUES (?, ?, ?)`, appID, i, p); err != nil {
			tx.Rollback()
			return fmt.Errorf("caching step %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing step cache: %w", err)
	}
	return nil
}
