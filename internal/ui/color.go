package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cachedStyle = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	folderStyle = lipgloss.NewStyle().Bold(true)
	noticeStyle = lipgloss.NewStyle().Faint(true)
)

func NewStepLine(w io.Writer, pattern string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+pattern)
}

func CachedStepLine(w io.Writer, pattern string) {
	fmt.Fprintln(w, cachedStyle.Render("cch")+"  "+pattern)
}

func StepsSummaryLine(w io.Writer, count int) {
	fmt.Fprintf(w, "synced %d steps\n", count)
}

func DiagnosticLine(w io.Writer, path string, line int, message string) {
	fmt.Fprintln(w, errStyle.Render("error")+fmt.Sprintf("  %s:%d  %s", path, line, message))
}

func FolderLine(w io.Writer, depth int, name string) {
	fmt.Fprintln(w, strings.Repeat("  ", depth)+folderStyle.Render(name+"/"))
}

func FileLine(w io.Writer, depth int, name string) {
	fmt.Fprintln(w, strings.Repeat("  ", depth)+name)
}

func NoticeLine(w io.Writer, message string) {
	fmt.Fprintln(w, noticeStyle.Render(message))
}
