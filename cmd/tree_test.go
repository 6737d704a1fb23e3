package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTree(t *testing.T, appID string, export bool) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunTree(&buf, appID, export))
	return buf.String()
}

func TestTree_EmptyWorkspace(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runTree(t, "app1", false)
	assert.Contains(t, out, "empty tree")
}

func TestTree_RenderOrder(t *testing.T) {
	inTempDir(t)
	runInit(t)
	runNewFile(t, "app1", "b/deep.feature")
	runNewFile(t, "app1", "z.feature")
	runNewFolder(t, "app1", "a")

	out := runTree(t, "app1", false)

	// depth first, folders before files, lexicographic
	assert.Regexp(t, `(?s)a/.*b/.*z\.feature.*deep\.feature`, out)
}

func TestTree_Export(t *testing.T) {
	inTempDir(t)
	runInit(t)
	runNewFile(t, "app1", "specs/login.feature")

	sqlDB, err := openWorkspace()
	require.NoError(t, err)
	_, err = sqlDB.Exec(
		`UPDATE documents SET content = ? WHERE app_id = ? AND path = ?`,
		"Feature: X\n", "app1", "specs/login.feature",
	)
	sqlDB.Close()
	require.NoError(t, err)

	out := runTree(t, "app1", true)

	assert.Equal(t, "[Folder] specs\n  [File] login.feature\n    Feature: X\n", out)
}
