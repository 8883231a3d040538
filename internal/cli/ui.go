package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleUnknown = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func (c *CLI) printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.Out, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func (c *CLI) printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.Out, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func (c *CLI) printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.Out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func (c *CLI) printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.Out, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func (c *CLI) printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.Out, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func (c *CLI) printFile(path string) {
	fmt.Fprintln(c.Out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func (c *CLI) printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(18)
	fmt.Fprintln(c.Out, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Tables
// =============================================================================

// printTable renders rows under headers. A row whose dimCol cell reads
// "Unknown" is muted; pass -1 to disable.
func (c *CLI) printTable(headers []string, rows [][]string, dimCol int) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if dimCol >= 0 && row < len(rows) && rows[row][dimCol] == "Unknown" {
				return base.Inherit(styleUnknown)
			}
			return base
		})
	fmt.Fprintln(c.Out, t.Render())
}
