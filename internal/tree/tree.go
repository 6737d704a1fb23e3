// Package tree models the virtual file tree backing a feature workspace.
// Nodes are keyed by normalized slash-separated paths. All operations are
// pure: they return new collections and never mutate their input.
package tree

import (
	"sort"
	"strings"

	"github.com/featlab/featlab/internal/vpath"
)

// Kind distinguishes folder nodes from file nodes.
type Kind int

const (
	Folder Kind = iota
	File
)

func (k Kind) String() string {
	if k == File {
		return "file"
	}
	return "folder"
}

// Node is a single entry in the tree. Path is the canonical key; Name is
// derived from the path's last segment.
type Node struct {
	Path string
	Name string
	Kind Kind
}

// Contains reports whether a node with the exact normalized path exists.
func Contains(nodes []Node, path string) bool {
	n := vpath.Normalize(path)
	for _, node := range nodes {
		if node.Path == n {
			return true
		}
	}
	return false
}

// EnsureFolderChain appends a Folder node for every missing prefix of
// folderPath, root to leaf. Existing nodes are untouched; the returned
// collection shares no backing array with the input once anything is added.
func EnsureFolderChain(nodes []Node, folderPath string) []Node {
	segs := vpath.Segments(folderPath)
	if len(segs) == 0 {
		return nodes
	}

	out := nodes
	copied := false
	prefix := ""
	for _, seg := range segs {
		if prefix == "" {
			prefix = seg
		} else {
			prefix = prefix + "/" + seg
		}
		if Contains(out, prefix) {
			continue
		}
		if !copied {
			out = append([]Node(nil), out...)
			copied = true
		}
		out = append(out, Node{Path: prefix, Name: seg, Kind: Folder})
	}
	return out
}

// InsertFolder creates a folder at path, chain-creating missing ancestors.
// An exact-path collision is a no-op: the input is returned unchanged and
// ok is false. First writer wins; this is the defined contract.
func InsertFolder(nodes []Node, path string) (out []Node, ok bool) {
	n := vpath.Normalize(path)
	if n == "" || Contains(nodes, n) {
		return nodes, false
	}
	return EnsureFolderChain(nodes, n), true
}

// InsertFile creates a file at fullPath, chain-creating missing ancestor
// folders. Same collision contract as InsertFolder.
func InsertFile(nodes []Node, fullPath string) (out []Node, ok bool) {
	n := vpath.Normalize(fullPath)
	if n == "" || Contains(nodes, n) {
		return nodes, false
	}
	out = EnsureFolderChain(nodes, vpath.Parent(n))
	if len(out) == len(nodes) {
		out = append([]Node(nil), nodes...)
	}
	out = append(out, Node{Path: n, Name: vpath.Name(n), Kind: File})
	return out, true
}

// Sort returns a new collection in render order: shallow before deep,
// folders before files at equal depth, then lexicographic by path. The
// sort is stable; the input carries no ordering guarantee of its own.
func Sort(nodes []Node) []Node {
	out := append([]Node(nil), nodes...)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := vpath.Depth(out[i].Path), vpath.Depth(out[j].Path)
		if di != dj {
			return di < dj
		}
		if out[i].Kind != out[j].Kind {
			return out[i].Kind == Folder
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Children returns the direct children of folderPath in render order.
func Children(nodes []Node, folderPath string) []Node {
	parent := vpath.Normalize(folderPath)
	var kids []Node
	for _, n := range nodes {
		if vpath.Parent(n.Path) == parent && n.Path != parent {
			kids = append(kids, n)
		}
	}
	return Sort(kids)
}

// Roots returns the depth-zero nodes in render order.
func Roots(nodes []Node) []Node {
	var roots []Node
	for _, n := range nodes {
		if vpath.Parent(n.Path) == "" {
			roots = append(roots, n)
		}
	}
	return Sort(roots)
}

// ItemID derives a stable display id for a node. It is used only for UI
// keying; the path remains the canonical lookup key.
func ItemID(kind Kind, path string) string {
	var b strings.Builder
	b.WriteString(kind.String())
	b.WriteByte('-')
	for _, r := range vpath.Normalize(path) {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
