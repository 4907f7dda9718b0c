// Package ui provides the terminal user interface for Tunnelsplit.
// This file contains the lipgloss styles and color palette.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette shared across the UI. The status colors mirror the GNOME
// accent set so the tool blends in with the desktop's VPN indicators.
var (
	colorAccent  = lipgloss.Color("#3584e4")
	colorActive  = lipgloss.Color("#2ec27e")
	colorPending = lipgloss.Color("#e5a50a")
	colorError   = lipgloss.Color("#e01b24")
	colorDim     = lipgloss.Color("#77767b")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Padding(0, 1)

	searchStyle = lipgloss.NewStyle().
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	checkedStyle = lipgloss.NewStyle().
			Foreground(colorActive).
			Bold(true)

	uncheckedStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	appNameStyle = lipgloss.NewStyle()

	selectedNameStyle = lipgloss.NewStyle().
				Bold(true)

	packageStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	systemTagStyle = lipgloss.NewStyle().
			Foreground(colorPending)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true).
			Padding(1, 2)

	statusSavedStyle = lipgloss.NewStyle().
				Foreground(colorActive)

	statusPendingStyle = lipgloss.NewStyle().
				Foreground(colorPending)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(colorError)

	statusDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)
)
