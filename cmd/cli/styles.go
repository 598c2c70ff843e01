package main

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	primaryColor = lipgloss.Color("#FF5A5F")
	subtleColor  = lipgloss.Color("#767676")
	infoColor    = lipgloss.Color("#00A699")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(subtleColor)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	infoStyle   = lipgloss.NewStyle().Foreground(infoColor)
	errorStyle  = lipgloss.NewStyle().Foreground(primaryColor)

	metricBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtleColor).
			Padding(0, 2)
)

var printer = message.NewPrinter(language.English)
