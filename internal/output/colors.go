package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// VCSIM_COLORS defines the color palette for branch visualization.
// Each branch id maps to a palette entry, wrapping around.
var VCSIM_COLORS = [][]int{
	{76, 203, 241},  // Light blue
	{77, 202, 125},  // Green
	{110, 173, 38},  // Dark green
	{245, 200, 0},   // Yellow
	{248, 144, 72},  // Orange
	{244, 98, 81},   // Red
	{235, 130, 188}, // Pink
	{159, 131, 228}, // Purple
	{80, 132, 243},  // Blue
}

// ColorsSupported reports whether stdout is a terminal that can render
// colored output. Callers combine this with the configured color mode.
func ColorsSupported() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// BranchStyle returns the lipgloss style for a branch id
func BranchStyle(branchID int) lipgloss.Style {
	color := VCSIM_COLORS[branchID%len(VCSIM_COLORS)]
	hexColor := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", color[0], color[1], color[2]))
	return lipgloss.NewStyle().Foreground(hexColor)
}

// ColorBranch renders text in the color assigned to a branch id
func ColorBranch(text string, branchID int) string {
	return BranchStyle(branchID).Render(text)
}

// ColorHead highlights the checked-out commit marker
func ColorHead(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}
