package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
	"github.com/sheikh-saqib/household-payoff-planner/internal/schedule"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table. The first column is left aligned,
// the rest are right aligned. A row holding the single cell "---" draws a
// separator.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 {
				b.WriteString(valueStyle.Render(" " + cell + pad + " "))
			} else {
				b.WriteString(valueStyle.Render(" " + pad + cell + " "))
			}
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

func rule(widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
	return b.String()
}

// RenderProgressBar renders a percentage as a block bar.
func RenderProgressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %4s", mutedStyle.Render(bar), FormatPercent(pct))
}

// ScheduleTables lays out a schedule as two tables: what each goal receives
// per month, and the balance each goal has left afterwards. complete may be
// nil; otherwise it marks months already checked off.
func ScheduleTables(goals []models.Goal, rows []models.AllocationRow, complete []bool) (allocations, balances Table) {
	headers := []string{"Month"}
	for _, g := range goals {
		headers = append(headers, g.Name)
	}

	allocations = Table{
		Title:   "Monthly allocations",
		Headers: append(append([]string{}, headers...), "Total", ""),
	}
	balances = Table{
		Title:   "Remaining after month",
		Headers: append(append([]string{}, headers...), "Total"),
	}

	grand := decimal.Zero
	for i, row := range rows {
		alloc := []string{row.MonthKey}
		left := []string{row.MonthKey}
		leftTotal := decimal.Zero
		for _, g := range goals {
			alloc = append(alloc, FormatAllocation(row.Allocation[g.ID]))
			left = append(left, FormatMoney(row.Remaining[g.ID]))
			leftTotal = leftTotal.Add(row.Remaining[g.ID])
		}
		total := row.Total()
		grand = grand.Add(total)

		mark := ""
		if complete != nil && i < len(complete) && complete[i] {
			mark = "✓"
		}
		allocations.Rows = append(allocations.Rows, append(alloc, FormatMoney(total), mark))
		balances.Rows = append(balances.Rows, append(left, FormatMoney(leftTotal)))
	}

	if len(rows) > 0 {
		footer := make([]string, len(headers)+2)
		footer[0] = "Total"
		footer[len(headers)] = FormatMoney(grand)
		allocations.Rows = append(allocations.Rows, []string{"---"}, footer)
	}
	return allocations, balances
}

// RenderSchedule renders a complete schedule view for the terminal.
func RenderSchedule(name string, goals []models.Goal, rows []models.AllocationRow, complete []bool) string {
	var b strings.Builder
	if name == "" {
		name = "Payoff schedule"
	}
	b.WriteString(RenderTitle(name))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("  Nothing to schedule: add goals and a positive monthly budget."))
		b.WriteString("\n")
		return b.String()
	}

	allocations, balances := ScheduleTables(goals, rows, complete)
	b.WriteString(RenderTable(allocations))
	b.WriteString("\n")
	b.WriteString(RenderTable(balances))
	b.WriteString("\n")

	if schedule.CapReached(rows) {
		b.WriteString(warnStyle.Render(fmt.Sprintf(
			"  Not finished after %s. Raise the budget or trim the goals.", FormatMonths(len(rows)))))
	} else {
		b.WriteString(goodStyle.Render(fmt.Sprintf(
			"  Everything settled by %s (%s).", rows[len(rows)-1].MonthKey, FormatMonths(len(rows)))))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderProgress renders the overall figures and one bar per goal.
func RenderProgress(name string, p schedule.Progress) string {
	var b strings.Builder
	if name == "" {
		name = "Plan progress"
	}
	b.WriteString(RenderTitle(name))
	b.WriteString("\n\n")

	overview := Table{
		Title:   "Overview",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total goal", FormatMoney(p.TotalGoal)},
			{"Paid so far", FormatMoney(p.TotalPaid)},
			{"Remaining", FormatMoney(p.TotalRemaining)},
			{"Overall", FormatPercent(p.OverallPercent)},
			{"Months left", FormatNumber(int64(p.MonthsLeft))},
			{"Estimate at budget", FormatMonths(p.MonthsNeeded)},
		},
	}
	if p.EndsBy != "" {
		overview.Rows = append(overview.Rows, []string{"Ends by", p.EndsBy})
	}
	b.WriteString(RenderTable(overview))
	b.WriteString("\n")

	if len(p.Goals) > 0 {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render("Goals"))
		b.WriteString("\n")
		nameWidth := 0
		for _, g := range p.Goals {
			if w := lipgloss.Width(g.Name); w > nameWidth {
				nameWidth = w
			}
		}
		for _, g := range p.Goals {
			fmt.Fprintf(&b, "  %-*s  %s  %s / %s\n",
				nameWidth, g.Name,
				RenderProgressBar(g.Percent, 20),
				FormatMoney(g.Paid), FormatMoney(g.Amount),
			)
		}
		b.WriteString("\n")
	}

	switch {
	case p.CapReached:
		b.WriteString(warnStyle.Render("  The budget does not clear every goal within the planning horizon."))
	case p.OnTrack:
		b.WriteString(goodStyle.Render("  On track."))
	default:
		b.WriteString(warnStyle.Render("  Running past the target end month."))
	}
	b.WriteString("\n")
	return b.String()
}
