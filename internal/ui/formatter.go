package ui

import (
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"

	"splittests/internal/domain"
)

// Formatter prints human readable split plans
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintPlan prints the statistics of a plan followed by a tree of every bucket, slowest first
func (f *Formatter) PrintPlan(plan *domain.PlanOutput) {
	cyan := color.New(color.FgCyan)
	white := color.New(color.FgWhite)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	meta := plan.Meta

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                       Test Split Plan                         ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	row := func(label string, c *color.Color, value string) {
		fmt.Fprintf(f.out, "│ %-31s │ ", label)
		c.Fprintf(f.out, "%-27s", value)
		fmt.Fprintln(f.out, " │")
	}
	separator := func() {
		fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
	}

	row("Strategy", white, meta.Strategy)
	separator()
	row("Splits", white, fmt.Sprintf("%d", meta.SplitTotal))
	separator()
	row("Test Classes", white, fmt.Sprintf("%d", meta.TotalTests))
	separator()
	row("Total Time", white, domain.FormatTime(meta.TotalSeconds))
	separator()
	row("Fastest Split", green, fmt.Sprintf("#%02d", meta.FastestBucket))
	separator()
	row("Slowest Split", red, fmt.Sprintf("#%02d", meta.SlowestBucket))
	separator()
	row("Difference", white, domain.FormatTime(meta.DifferenceSeconds))
	if meta.OptimalSplitTotal > 0 {
		separator()
		row("Optimal Splits", white, fmt.Sprintf("%d", meta.OptimalSplitTotal))
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")
	fmt.Fprintln(f.out)

	f.printBucketTree(plan)
}

// printBucketTree prints every bucket as a root node with its tests as children
func (f *Formatter) printBucketTree(plan *domain.PlanOutput) {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	gray := color.New(color.FgHiBlack)

	order := descending(plan)
	for i, b := range order {
		isLastBucket := i == len(order)-1
		connector := "├── "
		childPrefix := "│   "
		if isLastBucket {
			connector = "└── "
			childPrefix = "    "
		}

		marker := ""
		if b.Index == plan.Meta.SplitIndex {
			marker = " " + color.GreenString("(this split)")
		}
		cyan.Fprintf(f.out, "%s#%02d %s, %d tests", connector, b.Index, b.Duration, len(b.Tests))
		fmt.Fprintln(f.out, marker)

		if len(b.Tests) == 0 {
			fmt.Fprintf(f.out, "%s└── ", childPrefix)
			gray.Fprintln(f.out, "(empty)")
			continue
		}
		for j, test := range b.Tests {
			prefix := childPrefix + "├── "
			if j == len(b.Tests)-1 {
				prefix = childPrefix + "└── "
			}
			fmt.Fprint(f.out, prefix)
			yellow.Fprint(f.out, test.Name)
			gray.Fprintf(f.out, " %s\n", domain.FormatTime(test.Seconds))
		}
	}
}

// descending orders plan buckets slowest first, like Buckets.ForEach
func descending(plan *domain.PlanOutput) []domain.PlanBucket {
	order := slices.Clone(plan.Buckets)
	slices.SortFunc(order, func(a, b domain.PlanBucket) int {
		return domain.ComparePlanBuckets(b, a)
	})
	return order
}
