package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureFolderChain_CreatesAllPrefixes(t *testing.T) {
	nodes := EnsureFolderChain(nil, "a/b/c")

	require.Len(t, nodes, 3)
	assert.Equal(t, Node{Path: "a", Name: "a", Kind: Folder}, nodes[0])
	assert.Equal(t, Node{Path: "a/b", Name: "b", Kind: Folder}, nodes[1])
	assert.Equal(t, Node{Path: "a/b/c", Name: "c", Kind: Folder}, nodes[2])
}

func TestEnsureFolderChain_ExistingUntouched(t *testing.T) {
	base := []Node{{Path: "a", Name: "a", Kind: Folder}}

	nodes := EnsureFolderChain(base, "a/b")

	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].Path)
	assert.Equal(t, "a/b", nodes[1].Path)
	// input slice is not mutated
	require.Len(t, base, 1)
}

func TestEnsureFolderChain_NoDuplicates(t *testing.T) {
	nodes := EnsureFolderChain(nil, "a/b/c")
	again := EnsureFolderChain(nodes, "a/b/c")

	assert.Len(t, again, 3)
}

func TestInsertFile_ChainCreatesAncestors(t *testing.T) {
	nodes, ok := InsertFile(nil, "specs/auth/login.feature")

	require.True(t, ok)
	require.Len(t, nodes, 3)
	assert.Equal(t, Folder, nodes[0].Kind)
	assert.Equal(t, "specs", nodes[0].Path)
	assert.Equal(t, Folder, nodes[1].Kind)
	assert.Equal(t, "specs/auth", nodes[1].Path)
	assert.Equal(t, Node{Path: "specs/auth/login.feature", Name: "login.feature", Kind: File}, nodes[2])
}

func TestInsertFile_CollisionIsNoOp(t *testing.T) {
	nodes, ok := InsertFile(nil, "a/x.feature")
	require.True(t, ok)

	after, ok := InsertFile(nodes, "a/x.feature")
	assert.False(t, ok)
	assert.Equal(t, nodes, after)
}

func TestInsertFolder_CollisionIsNoOp(t *testing.T) {
	nodes, ok := InsertFolder(nil, "a/b")
	require.True(t, ok)

	after, ok := InsertFolder(nodes, "/a/b/")
	assert.False(t, ok)
	assert.Len(t, after, 2)
}

func TestInsert_EmptyPathRejected(t *testing.T) {
	_, ok := InsertFile(nil, "  / ")
	assert.False(t, ok)
	_, ok = InsertFolder(nil, "")
	assert.False(t, ok)
}

func TestSort_DepthThenKindThenPath(t *testing.T) {
	nodes := []Node{
		{Path: "b/deep.feature", Name: "deep.feature", Kind: File},
		{Path: "z.feature", Name: "z.feature", Kind: File},
		{Path: "b", Name: "b", Kind: Folder},
		{Path: "a", Name: "a", Kind: Folder},
	}

	sorted := Sort(nodes)

	paths := make([]string, len(sorted))
	for i, n := range sorted {
		paths[i] = n.Path
	}
	assert.Equal(t, []string{"a", "b", "z.feature", "b/deep.feature"}, paths)
	// input order unchanged
	assert.Equal(t, "b/deep.feature", nodes[0].Path)
}

func TestItemID(t *testing.T) {
	assert.Equal(t, "file-a-b-login-feature", ItemID(File, "a/b/login.feature"))
	assert.Equal(t, "folder-specs", ItemID(Folder, "specs"))
}

func TestSerialize_RoundTripShape(t *testing.T) {
	nodes, _ := InsertFile(nil, "specs/login.feature")
	contents := map[string]string{"specs/login.feature": "Feature: X\n"}

	out := Serialize(nodes, contents)

	assert.Equal(t, "[Folder] specs\n  [File] login.feature\n    Feature: X\n", out)
}

func TestSerialize_NestedFoldersAndEmptyFile(t *testing.T) {
	nodes, _ := InsertFolder(nil, "a/b")
	nodes, _ = InsertFile(nodes, "a/b/x.feature")
	nodes, _ = InsertFile(nodes, "a/y.feature")

	out := Serialize(nodes, map[string]string{"a/y.feature": "Feature: Y"})

	assert.Equal(t,
		"[Folder] a\n"+
			"  [Folder] b\n"+
			"    [File] x.feature\n"+
			"  [File] y.feature\n"+
			"    Feature: Y\n",
		out)
}
