package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"studytrack/internal/aggregate"
)

func TestRenderOverviewEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderOverview(&buf, aggregate.Overview{}); err != nil {
		t.Fatalf("render overview: %v", err)
	}
	if !strings.Contains(buf.String(), "Henüz çalışma kaydı yok.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderOverviewValues(t *testing.T) {
	var buf bytes.Buffer
	o := aggregate.Overview{
		TotalSessions:  2,
		TotalQuestions: 24,
		TotalCorrect:   22,
		TotalNet:       22,
		AverageSuccess: 75,
	}
	if err := RenderOverview(&buf, o); err != nil {
		t.Fatalf("render overview: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Oturum: 2", "Toplam Soru: 24", "Ortalama Başarı: %75.0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestRenderCalendarMarkers(t *testing.T) {
	byDate := map[string]*aggregate.DayStats{
		"2025-01-10": {Date: "2025-01-10", TotalQuestions: 25, MetAllTargets: true},
		"2025-01-11": {Date: "2025-01-11", TotalQuestions: 5, MetAllTargets: true},
		"2025-01-12": {Date: "2025-01-12", TotalQuestions: 30, MetAllTargets: false},
	}
	var buf bytes.Buffer
	if err := RenderCalendar(&buf, byDate, 2025, time.January); err != nil {
		t.Fatalf("render calendar: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Ocak 2025") {
		t.Fatalf("missing month header:\n%s", out)
	}
	if !strings.Contains(out, "10*") {
		t.Fatalf("expected '*' marker on the 10th:\n%s", out)
	}
	if !strings.Contains(out, "11+") {
		t.Fatalf("expected '+' marker on the 11th (too few questions):\n%s", out)
	}
	if !strings.Contains(out, "12+") {
		t.Fatalf("expected '+' marker on the 12th (missed target):\n%s", out)
	}
	if !strings.Contains(out, "Paz  Pzt") {
		t.Fatalf("missing weekday header:\n%s", out)
	}
}

func TestRenderDailyTrendCapsToWidth(t *testing.T) {
	byDate := map[string]*aggregate.DayStats{
		"2025-01-10": {Date: "2025-01-10", TotalNet: 5},
		"2025-01-11": {Date: "2025-01-11", TotalNet: 10},
		"2025-01-12": {Date: "2025-01-12", TotalNet: 15},
	}
	var buf bytes.Buffer
	if err := RenderDailyTrend(&buf, byDate, 2); err != nil {
		t.Fatalf("render trend: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2025-01-11 .. 2025-01-12") {
		t.Fatalf("expected range capped to last 2 days:\n%s", out)
	}
}
