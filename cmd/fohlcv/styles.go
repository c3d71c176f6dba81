package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// WarnStyle for non-fatal findings.
	WarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	// SuccessStyle for the saved-path line.
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	// LabelStyle for summary field names.
	LabelStyle = lipgloss.NewStyle().Bold(true).Width(10)
)
