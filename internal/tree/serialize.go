package tree

import "strings"

const indentUnit = "  "

// Serialize exports the tree in the backend's line-oriented structure
// format: each folder emits "[Folder] <name>" followed by its children
// one level deeper, each file emits "[File] <name>" followed by its
// content indented one further level. Two spaces per level. The format
// is a one-way export; no parser for it exists on this side.
func Serialize(nodes []Node, contents map[string]string) string {
	var b strings.Builder
	for _, root := range Roots(nodes) {
		writeNode(&b, nodes, contents, root, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, nodes []Node, contents map[string]string, n Node, level int) {
	indent := strings.Repeat(indentUnit, level)
	if n.Kind == Folder {
		b.WriteString(indent + "[Folder] " + n.Name + "\n")
		for _, child := range Children(nodes, n.Path) {
			writeNode(b, nodes, contents, child, level+1)
		}
		return
	}

	b.WriteString(indent + "[File] " + n.Name + "\n")
	content := contents[n.Path]
	if content == "" {
		return
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	inner := strings.Repeat(indentUnit, level+1)
	for _, line := range lines {
		b.WriteString(inner + line + "\n")
	}
}
