package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"splittests/internal/domain"
)

// Inspector displays the buckets of a split plan in an interactive TUI
type Inspector struct{}

// NewInspector creates a new Inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// View browses the buckets of plan, slowest first
func (in *Inspector) View(plan *domain.PlanOutput) error {
	if plan.Meta.TotalTests == 0 {
		color.Yellow("No test classes to inspect")
		return nil
	}

	buckets := descending(plan)
	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for _, b := range buckets {
		list.AddItem(bucketLabel(b, plan.Meta), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	testsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	testsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(testsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(testsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" %d tests in %d splits (%s total) | Use ↑↓ to navigate, → to scroll tests, ← to go back, Ctrl+C to exit ",
			plan.Meta.TotalTests, plan.Meta.SplitTotal, domain.FormatTime(plan.Meta.TotalSeconds)))

	updateDetails := func(index int) {
		if index < 0 || index >= len(buckets) {
			return
		}
		statsView.SetText(formatBucketStats(buckets[index], plan.Meta))
		testsView.SetText(formatBucketTests(buckets[index])).ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(testsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	testsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails(index)
	})
	updateDetails(0)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

func bucketLabel(b domain.PlanBucket, meta domain.PlanMeta) string {
	switch b.Index {
	case meta.SlowestBucket:
		return fmt.Sprintf("[red]#%02d[white] %s", b.Index, b.Duration)
	case meta.FastestBucket:
		return fmt.Sprintf("[green]#%02d[white] %s", b.Index, b.Duration)
	}
	return fmt.Sprintf("[yellow]#%02d[white] %s", b.Index, b.Duration)
}

// formatBucketStats formats the header line of a bucket using tview color tags
func formatBucketStats(b domain.PlanBucket, meta domain.PlanMeta) string {
	share := 0.0
	if meta.TotalSeconds > 0 {
		share = b.TotalSeconds / meta.TotalSeconds * 100
	}
	return fmt.Sprintf("[cyan]Split #%02d[white]\n[yellow]%d[white] tests, [yellow]%s[white] (%.1f%% of the suite)",
		b.Index, len(b.Tests), b.Duration, share)
}

// formatBucketTests lists the tests of a bucket heaviest first
func formatBucketTests(b domain.PlanBucket) string {
	if len(b.Tests) == 0 {
		return "[gray](empty)[white]"
	}

	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	for i, test := range b.Tests {
		fmt.Fprintf(w, "[yellow]%d.[white]\t%s\t[gray]%s[white]\n", i+1, test.Name, domain.FormatTime(test.Seconds))
	}
	_ = w.Flush()
	return builder.String()
}
