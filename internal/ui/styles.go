// Package ui renders console output for habitlog.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func Title(s string) string   { return titleStyle.Render(s) }
func Success(s string) string { return successStyle.Render("✓ " + s) }
func Error(s string) string   { return errorStyle.Render("✗ " + s) }
func Warning(s string) string { return warningStyle.Render("⚠ " + s) }
func Muted(s string) string   { return mutedStyle.Render(s) }
