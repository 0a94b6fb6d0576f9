package exporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/buger/goterm"
	"golang.org/x/term"

	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

const (
	defaultConsoleWidth = 80
	minBarWidth         = 10
	barGlyph            = "█"
)

// ConsolePrinter writes human-readable report blocks. It never modifies the
// data it is given.
type ConsolePrinter struct {
	out   io.Writer
	color bool
	width int
}

// NewConsolePrinter creates a printer. colorMode is auto, always or never;
// auto colours only when out is a terminal.
func NewConsolePrinter(out io.Writer, colorMode string) *ConsolePrinter {
	if out == nil {
		out = os.Stdout
	}

	tty := false
	if f, ok := out.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}

	color := tty
	switch colorMode {
	case "always":
		color = true
	case "never":
		color = false
	}

	width := defaultConsoleWidth
	if tty {
		if w := goterm.Width(); w > 0 {
			width = w
		}
	}

	return &ConsolePrinter{out: out, color: color, width: width}
}

func (p *ConsolePrinter) heading(title string) string {
	if !p.color {
		return title
	}
	return goterm.Color(goterm.Bold(title), goterm.CYAN)
}

// PrintCounts prints a titled block with one "label: count" line per pair,
// in input order.
func (p *ConsolePrinter) PrintCounts(title string, counts []domain.CategoryCount) {
	fmt.Fprintln(p.out, p.heading(title))

	table := goterm.NewTable(0, 4, 1, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(table, "%s:\t%d\n", c.Name, c.Count)
	}
	fmt.Fprint(p.out, table.String())
	fmt.Fprintln(p.out)
}

// PrintBreakdown prints a breakdown with PrintCounts.
func (p *ConsolePrinter) PrintBreakdown(b domain.Breakdown) {
	p.PrintCounts(b.Title, b.Counts)
}

// PrintBarChart prints a horizontal bar per pair, scaled so the largest
// count fills the available width.
func (p *ConsolePrinter) PrintBarChart(title string, counts []domain.CategoryCount) {
	fmt.Fprintln(p.out, p.heading(title))

	labelWidth, countWidth, maxCount := 0, 1, 0
	for _, c := range counts {
		labelWidth = max(labelWidth, len(c.Name))
		countWidth = max(countWidth, len(formatCount(c.Count)))
		maxCount = max(maxCount, c.Count)
	}

	barWidth := max(p.width-labelWidth-countWidth-4, minBarWidth)
	for _, c := range counts {
		n := 0
		if maxCount > 0 {
			n = c.Count * barWidth / maxCount
		}
		bar := strings.Repeat(barGlyph, n)
		if p.color && n > 0 {
			bar = goterm.Color(bar, goterm.GREEN)
		}
		fmt.Fprintf(p.out, "%-*s | %s %d\n", labelWidth, c.Name, bar, c.Count)
	}
	fmt.Fprintln(p.out)
}

// PrintCrossTable prints officer categories as rows and complainant
// categories as columns.
func (p *ConsolePrinter) PrintCrossTable(t domain.CrossTable) {
	fmt.Fprintln(p.out, p.heading(crossCorner(t)))

	table := goterm.NewTable(0, 4, 2, ' ', 0)
	fmt.Fprintf(table, "\t%s\n", strings.Join(t.Columns, "\t"))
	for i, label := range t.Rows {
		cells := make([]string, len(t.Cells[i]))
		for j, n := range t.Cells[i] {
			cells[j] = formatCount(n)
		}
		fmt.Fprintf(table, "%s\t%s\n", label, strings.Join(cells, "\t"))
	}
	fmt.Fprint(p.out, table.String())
	fmt.Fprintln(p.out)
}

// PrintSummary prints the overview sentence and every breakdown of s.
func (p *ConsolePrinter) PrintSummary(s domain.DatasetSummary) {
	if s.Reference > 0 {
		fmt.Fprintf(p.out, "%d or %s of all complaints were %s between %d and %d.\n\n",
			s.Complaints, formatShare(s.Share), summaryScope(s.Title), s.MinYear, s.MaxYear)
	} else {
		fmt.Fprintf(p.out, "There were %d reported complaints against CPD officers between %d and %d.\n\n",
			s.Complaints, s.MinYear, s.MaxYear)
	}

	for _, b := range s.Breakdowns {
		p.PrintBreakdown(b)
	}
}

// summaryScope turns "Complaints under IPRA or COPA" into
// "under IPRA or COPA jurisdiction".
func summaryScope(title string) string {
	scope := strings.TrimPrefix(title, "Complaints ")
	return scope + " jurisdiction"
}
