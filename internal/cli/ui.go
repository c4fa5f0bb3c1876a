package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wikigraph/pkg/stats"
	"github.com/matzehuels/wikigraph/pkg/wiki"
)

// out receives all command results. Tests redirect it.
var out io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for section headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(22)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(out, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(out, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output file.
func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(out, "  "+styleKey.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Graph Results
// =============================================================================

// printGraphInfo prints the size line shown after loading.
func printGraphInfo(g *wiki.Graph) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf("%d articles · %d links", g.PageCount(), g.LinkCount())))
}

// printPath prints the titles along path, one per line.
func printPath(g *wiki.Graph, path []int) {
	printSuccess("Found path of length %s", StyleNumber.Render(strconv.Itoa(len(path)-1)))
	for i, id := range path {
		prefix := "  "
		if i > 0 {
			prefix = "  " + StyleDim.Render(iconArrow) + " "
		}
		fmt.Fprintln(out, prefix+StyleValue.Render(g.Title(id)))
	}
}

// printReport prints every figure of a statistics report.
func printReport(r *stats.Report, cached bool) {
	fmt.Fprintln(out, StyleTitle.Render("Graph"))
	printKeyValue("articles", strconv.Itoa(r.Pages))
	printKeyValue("links", strconv.Itoa(r.Links))
	printKeyValue("redirects", fmt.Sprintf("%d (%.2f%%)", r.RedirectPages, r.RedirectPercent))
	if cached {
		printKeyValue("source", styleCached.Render(iconCached))
	} else {
		printKeyValue("source", styleComputed.Render(iconFresh))
	}

	printSummary("Links from article", r.OutLinks)
	printSummary("Links to article", r.InLinks)
	printSummary("Redirects to article", r.InRedirects)
}

func printSummary(title string, s stats.Summary) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, StyleTitle.Render(title))
	printKeyValue("min", fmt.Sprintf("%d (%d articles)", s.Min, s.MinCount))
	printKeyValue("max", fmt.Sprintf("%d (%d articles)", s.Max, s.MaxCount))
	if s.MaxID >= 0 {
		printKeyValue("max at", s.MaxTitle)
	}
	printKeyValue("mean", fmt.Sprintf("%.2f (stddev %.2f)", s.Mean, s.StdDev))
}
