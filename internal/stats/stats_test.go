package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/keydrill/internal/model"
)

func TestSummaryRowsOmitsZeroOptionals(t *testing.T) {
	rows := SummaryRows(model.GameStats{
		Mode:       model.ModeReaction,
		Difficulty: model.DifficultyEasy,
		Time:       4.2,
		Accuracy:   100,
		Correct:    20,
	})
	labels := map[string]string{}
	for _, r := range rows {
		labels[r.Label] = r.Value
	}
	for _, absent := range []string{"WPM", "Missed Words", "Total Words", "Total Chars", "Avg. Reaction"} {
		if _, ok := labels[absent]; ok {
			t.Fatalf("expected %q to be omitted", absent)
		}
	}
	if labels["Time Taken"] != "4.20s" {
		t.Fatalf("unexpected time value %q", labels["Time Taken"])
	}
	if labels["Accuracy"] != "100.00%" {
		t.Fatalf("unexpected accuracy value %q", labels["Accuracy"])
	}
}

func TestRenderSummaryWordSession(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSummary(&buf, model.GameStats{
		Mode:       model.ModeWord,
		Difficulty: model.DifficultyMedium,
		Time:       60,
		Correct:    120,
		Errors:     8,
		Missed:     2,
		Accuracy:   92.31,
		WPM:        24,
		TotalWords: 30,
	})
	if err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Game Over!", "Word Typing", "WPM", "24", "Missed Words", "92.31%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Reaction times") {
		t.Fatalf("word summary should not include a reaction chart")
	}
}

func TestRenderSummaryReactionIncludesChart(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSummary(&buf, model.GameStats{
		Mode:            model.ModeReaction,
		Difficulty:      model.DifficultyEasy,
		Time:            1.2,
		Correct:         3,
		Accuracy:        100,
		ReactionTimes:   []int64{300, 400, 500},
		AvgReactionTime: 400,
	})
	if err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Avg. Reaction", "400ms", "Trend:", "Reaction times: 3 hits"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSparkline(t *testing.T) {
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
	flat := Sparkline([]float64{3, 3, 3})
	if flat != "+++" {
		t.Fatalf("unexpected flat sparkline %q", flat)
	}
	line := Sparkline([]float64{0, 10})
	if line != " @" {
		t.Fatalf("unexpected sparkline %q", line)
	}
}
