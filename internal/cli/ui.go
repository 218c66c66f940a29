package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette. Kept small: one accent, one value color, two grays.
var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

// Styles shared with the preview TUI.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
)

var (
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleNote    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// printSuccess prints a check-marked status line.
func printSuccess(format string, args ...any) {
	fmt.Println(styleOK.Render("✓") + " " + fmt.Sprintf(format, args...))
}

// printInfo prints a neutral status line.
func printInfo(format string, args ...any) {
	fmt.Println(styleNote.Render("›") + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a produced-file line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// printStats prints a one-line wall summary: counts plus cache status.
func printStats(cardCount, categoryCount int, cached bool) {
	var parts []string
	if cardCount > 0 {
		parts = append(parts, fmt.Sprintf("%d cards", cardCount))
	}
	if categoryCount > 0 {
		parts = append(parts, fmt.Sprintf("%d categories", categoryCount))
	}
	status := styleNote.Render("fresh")
	if cached {
		status = styleOK.Render("cached")
	}
	line := StyleDim.Render(strings.Join(parts, " · "))
	if len(parts) > 0 {
		line += StyleDim.Render(" · ")
	}
	fmt.Println("  " + line + status)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
