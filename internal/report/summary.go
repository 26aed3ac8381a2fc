package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"autopost/internal/post"
)

// Totals aggregates outcomes for one section or the whole run.
type Totals struct {
	Published int
	Draft     int
	Skipped   int
	Failed    int
}

// Total is the number of rows counted.
func (t Totals) Total() int {
	return t.Published + t.Draft + t.Skipped + t.Failed
}

func (t *Totals) add(outcome post.Outcome) {
	switch outcome {
	case post.OutcomePublished:
		t.Published++
	case post.OutcomeDraft:
		t.Draft++
	case post.OutcomeSkipped:
		t.Skipped++
	default:
		t.Failed++
	}
}

// Summarize groups results by section, in first-seen order, and computes
// overall totals.
func Summarize(results []post.RowStatus) (map[string]Totals, []string, Totals) {
	sections := make(map[string]Totals)
	var order []string
	var overall Totals
	for _, status := range results {
		if _, seen := sections[status.Section]; !seen {
			order = append(order, status.Section)
		}
		totals := sections[status.Section]
		totals.add(status.Outcome)
		sections[status.Section] = totals
		overall.add(status.Outcome)
	}
	return sections, order, overall
}

// Render produces the run summary: one row-detail table per section followed
// by the totals table.
func Render(results []post.RowStatus) string {
	if len(results) == 0 {
		return "No eligible rows were processed."
	}

	sections, order, overall := Summarize(results)

	var builder strings.Builder
	for _, section := range order {
		builder.WriteString(section)
		builder.WriteString("\n")
		builder.WriteString(sectionTable(section, results))
		builder.WriteString("\n\n")
	}

	builder.WriteString("Totals\n")
	builder.WriteString(totalsTable(sections, order, overall))
	builder.WriteString("\n")
	return builder.String()
}

func sectionTable(section string, results []post.RowStatus) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Row", "Title", "Outcome", "Post", "Detail"})
	for _, status := range results {
		if status.Section != section {
			continue
		}
		tw.AppendRow(table.Row{
			status.Row,
			status.Title,
			outcomeCell(status.Outcome),
			postCell(status),
			status.ErrorDetail,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})
	return tw.Render()
}

func totalsTable(sections map[string]Totals, order []string, overall Totals) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Section", "Rows", "Published", "Draft", "Skipped", "Failed"})

	keys := append([]string(nil), order...)
	sort.Strings(keys)
	for _, section := range keys {
		totals := sections[section]
		tw.AppendRow(table.Row{
			section,
			totals.Total(),
			countCell(totals.Published, totals.Total()),
			countCell(totals.Draft, totals.Total()),
			countCell(totals.Skipped, totals.Total()),
			countCell(totals.Failed, totals.Total()),
		})
	}
	tw.AppendFooter(table.Row{
		"All",
		overall.Total(),
		countCell(overall.Published, overall.Total()),
		countCell(overall.Draft, overall.Total()),
		countCell(overall.Skipped, overall.Total()),
		countCell(overall.Failed, overall.Total()),
	})
	return tw.Render()
}

// countCell shows a count with its share of the total.
func countCell(count, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (%.0f%%)", count, float64(count)/float64(total)*100)
}

func outcomeCell(outcome post.Outcome) string {
	switch outcome {
	case post.OutcomePublished:
		return text.FgGreen.Sprint("published")
	case post.OutcomeDraft:
		return text.FgYellow.Sprint("draft")
	case post.OutcomeSkipped:
		return "skipped"
	default:
		return text.FgRed.Sprint("failed")
	}
}

func postCell(status post.RowStatus) string {
	if status.PostLink != "" {
		return status.PostLink
	}
	if status.PostID != 0 {
		return fmt.Sprintf("#%d", status.PostID)
	}
	return ""
}
