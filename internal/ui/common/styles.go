// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"
)

// Icon constants
const (
	WildIcon   = "★"
	WinnerIcon = "👑"
)

// Lipgloss Styles - shared by the local console and remote seats
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	RedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	JokerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B008B")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	WildStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8860B")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	IndexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
