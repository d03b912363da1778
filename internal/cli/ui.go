package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// uiOut receives the status lines of every command. Diagnostics go to the
// logger and the spinner draws on stderr.
var uiOut io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle heads a study or a picker.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight marks party names and other picked-out values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// status is the icon and colors of one kind of status line.
type status struct {
	icon string
	mark lipgloss.Style
	text *lipgloss.Style // nil leaves the message unstyled
}

var (
	warningText = lipgloss.NewStyle().Foreground(colorYellow)

	statusSuccess = status{icon: "✓", mark: lipgloss.NewStyle().Foreground(colorGreen)}
	statusError   = status{icon: "✗", mark: lipgloss.NewStyle().Foreground(colorRed)}
	statusWarning = status{icon: "!", mark: lipgloss.NewStyle().Foreground(colorYellow), text: &warningText}
	statusInfo    = status{icon: "›", mark: lipgloss.NewStyle().Foreground(colorGray)}
)

func (s status) print(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.text != nil {
		msg = s.text.Render(msg)
	}
	fmt.Fprintln(uiOut, s.mark.Render(s.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { statusSuccess.print(format, args...) }
func printError(format string, args ...any)   { statusError.print(format, args...) }
func printWarning(format string, args ...any) { statusWarning.print(format, args...) }
func printInfo(format string, args ...any)    { statusInfo.print(format, args...) }

// printDetail prints an indented, dimmed line under the last status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a file the command wrote.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats summarizes a chart run: segments drawn, segments the template
// had no slot for, and whether the artifacts came from the cache.
func printStats(segments, unplaced int, cached bool) {
	var parts []string
	if segments > 0 {
		parts = append(parts, fmt.Sprintf("%d segments", segments))
	}
	if unplaced > 0 {
		parts = append(parts, fmt.Sprintf("%d unplaced", unplaced))
	}
	if cached {
		parts = append(parts, statusSuccess.mark.Render("cached"))
	} else {
		parts = append(parts, "fresh")
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	fmt.Fprintln(uiOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(uiOut)
}
