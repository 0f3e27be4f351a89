package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// https://github.com/muesli/termenv/blob/master/ansicolors.go
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	gray   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s: %s\n", red.Render("ERROR"), err)
}

// field renders a "Label   value" line with the label padded to width.
func field(sb *strings.Builder, width int, label, value string) {
	sb.WriteString(gray.Render(fmt.Sprintf("%-*s", width, label)))
	sb.WriteString(value)
	sb.WriteString("\n")
}
