package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/keydrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Row is one label/value line of a results summary.
type Row struct {
	Label string
	Value string
}

// SummaryRows lists the results worth showing for a finished session.
// Zero-valued optional stats are omitted.
func SummaryRows(s model.GameStats) []Row {
	rows := []Row{
		{Label: "Mode", Value: s.Mode.Label()},
		{Label: "Difficulty", Value: s.Difficulty.Label()},
		{Label: "Time Taken", Value: fmt.Sprintf("%.2fs", s.Time)},
	}
	if s.WPM > 0 {
		rows = append(rows, Row{Label: "WPM", Value: fmt.Sprintf("%d", s.WPM)})
	}
	rows = append(rows, Row{Label: "Accuracy", Value: fmt.Sprintf("%.2f%%", s.Accuracy)})
	if s.AvgReactionTime > 0 {
		rows = append(rows, Row{Label: "Avg. Reaction", Value: fmt.Sprintf("%.0fms", s.AvgReactionTime)})
	}
	rows = append(rows,
		Row{Label: "Correct", Value: fmt.Sprintf("%d", s.Correct)},
		Row{Label: "Errors", Value: fmt.Sprintf("%d", s.Errors)},
	)
	if s.Missed > 0 {
		rows = append(rows, Row{Label: "Missed Words", Value: fmt.Sprintf("%d", s.Missed)})
	}
	if s.TotalWords > 0 {
		rows = append(rows, Row{Label: "Total Words", Value: fmt.Sprintf("%d", s.TotalWords)})
	}
	if s.TotalChars > 0 {
		rows = append(rows, Row{Label: "Total Chars", Value: fmt.Sprintf("%d", s.TotalChars)})
	}
	return rows
}

// RenderSummary prints the results of a session as a plain table. Reaction
// sessions also get a latency chart sized to the terminal.
func RenderSummary(w io.Writer, s model.GameStats) error {
	if _, err := fmt.Fprintln(w, "Game Over!"); err != nil {
		return err
	}
	summary := SummaryRows(s)
	rows := make([][]string, 0, len(summary))
	for _, r := range summary {
		rows = append(rows, []string{r.Label, r.Value})
	}
	for _, line := range formatTable([]string{"Stat", "Value"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(s.ReactionTimes) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Trend: %s\n\n", Sparkline(toFloats(s.ReactionTimes))); err != nil {
		return err
	}
	return ReactionChart(w, s.ReactionTimes, 0, 0, false)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

func toFloats(samples []int64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}
	return out
}
