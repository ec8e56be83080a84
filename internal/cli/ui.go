package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout is where the status printers write. Tests swap it out.
var stdout io.Writer = os.Stdout

// Terminal palette. The accent matches the paper style's ink color.
var (
	colorAccent = lipgloss.Color("68")
	colorOK     = lipgloss.Color("71")
	colorWarn   = lipgloss.Color("179")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("111")
	colorText   = lipgloss.Color("254")
	colorGray   = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("239")
)

var (
	// StyleTitle renders headings such as the board header in the TUI.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	// StyleLink renders URLs printed by serve.
	StyleLink = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)
	// StyleValue renders paths and values.
	StyleValue = lipgloss.NewStyle().Foreground(colorText)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

// marks prefix status lines.
var (
	markOK   = lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	markFail = lipgloss.NewStyle().Foreground(colorFail).Render("✗")
	markWarn = lipgloss.NewStyle().Foreground(colorWarn).Render("!")
	markInfo = lipgloss.NewStyle().Foreground(colorGray).Render("›")
	markFile = StyleDim.Render("→")
	sep      = StyleDim.Render(" · ")
)

func status(mark, format string, args []any) {
	fmt.Fprintln(stdout, mark+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(markOK, format, args) }
func printError(format string, args ...any)   { status(markFail, format, args) }
func printInfo(format string, args ...any)    { status(markInfo, format, args) }

func printWarning(format string, args ...any) {
	status(markWarn, lipgloss.NewStyle().Foreground(colorWarn).Render(format), args)
}

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+markFile+" "+StyleValue.Render(path))
}

// printArtifact prints a written artifact and whether its bytes came from
// the artifact cache or were rendered just now.
func printArtifact(path string, cached bool) {
	origin := lipgloss.NewStyle().Foreground(colorGray).Render("rendered")
	if cached {
		origin = lipgloss.NewStyle().Foreground(colorOK).Render("cached")
	}
	fmt.Fprintln(stdout, "  "+markFile+" "+StyleValue.Render(path)+sep+origin)
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints a one-line board summary such as
// "12 cards · spiral · seed 42". Empty strategy and zero seed are left out.
func printStats(cards int, strategy string, seed uint64) {
	parts := []string{fmt.Sprintf("%d cards", cards)}
	if strategy != "" {
		parts = append(parts, strategy)
	}
	if seed != 0 {
		parts = append(parts, fmt.Sprintf("seed %d", seed))
	}
	printDimParts(parts)
}

func printDimParts(parts []string) {
	dimmed := make([]string, len(parts))
	for i, p := range parts {
		dimmed[i] = StyleDim.Render(p)
	}
	fmt.Fprintln(stdout, "  "+strings.Join(dimmed, sep))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
