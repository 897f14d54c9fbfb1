package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Plain-terminal styles for subcommand output.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8800"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	sizeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AAFF"))
)

func headerText(s string) string { return headerStyle.Render(s) }
func errorText(s string) string  { return errorStyle.Render(s) }
func mutedText(s string) string  { return mutedStyle.Render(s) }
func sizeText(s string) string   { return sizeStyle.Render(s) }
