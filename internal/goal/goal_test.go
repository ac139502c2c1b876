package goal

import (
	"math"
	"strings"
	"testing"
	"time"

	"studytrack/internal/aggregate"
	"studytrack/internal/model"
	"studytrack/internal/subject"
)

func TestBuildReportWeighsSubjectAverages(t *testing.T) {
	bySubject := []aggregate.SubjectStats{
		{Subject: "Matematik", AverageNet: 10, Sessions: 2},
		{Subject: "Fen Bilimleri", AverageNet: 5, Sessions: 1},
	}
	goals := model.Goals{
		TotalNetGoal:   200,
		SubjectGoals:   map[string]int{"Matematik": 15},
		TargetDate:     "2025-06-15",
		DailyStudyGoal: 100,
	}
	today := time.Date(2025, 6, 5, 0, 0, 0, 0, time.Local)
	r := BuildReport(bySubject, goals, today)

	// 10*3 + 5*3 with the remaining subjects at zero.
	if math.Abs(r.CurrentTotalNet-45) > 1e-9 {
		t.Fatalf("expected current total net 45, got %f", r.CurrentTotalNet)
	}
	if r.ProgressPercent != 23 {
		t.Fatalf("expected progress 23, got %d", r.ProgressPercent)
	}
	if math.Abs(r.RemainingNet-155) > 1e-9 {
		t.Fatalf("expected remaining 155, got %f", r.RemainingNet)
	}
	if r.DaysUntilExam != 10 {
		t.Fatalf("expected 10 days until exam, got %d", r.DaysUntilExam)
	}
	if math.Abs(r.RequiredDailyNet-15.5) > 1e-9 {
		t.Fatalf("expected required daily net 15.5, got %f", r.RequiredDailyNet)
	}
	if len(r.Subjects) != 6 {
		t.Fatalf("expected 6 subject entries, got %d", len(r.Subjects))
	}
	mat := r.Subjects[0]
	if mat.Subject != "Matematik" || mat.Goal != 15 {
		t.Fatalf("unexpected first subject entry: %+v", mat)
	}
	if mat.ProgressPercent != 67 {
		t.Fatalf("expected subject progress 67, got %d", mat.ProgressPercent)
	}
}

func TestBuildReportClampsProgress(t *testing.T) {
	bySubject := []aggregate.SubjectStats{
		{Subject: "Matematik", AverageNet: 20, Sessions: 1},
		{Subject: "Fen Bilimleri", AverageNet: 20, Sessions: 1},
		{Subject: "Türkçe", AverageNet: 20, Sessions: 1},
	}
	goals := model.Goals{TotalNetGoal: 100, TargetDate: "2025-06-15"}
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	r := BuildReport(bySubject, goals, today)
	if r.ProgressPercent != 100 {
		t.Fatalf("expected progress clamped to 100, got %d", r.ProgressPercent)
	}
	if r.RequiredDailyNet != 0 {
		t.Fatalf("expected no required daily net past the goal, got %f", r.RequiredDailyNet)
	}
	if r.RemainingNet >= 0 {
		t.Fatalf("expected negative remaining net, got %f", r.RemainingNet)
	}
}

func TestDaysUntilClampsPastDates(t *testing.T) {
	today := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)
	if got := daysUntil("2025-06-15", today); got != 0 {
		t.Fatalf("expected 0 days for a past date, got %d", got)
	}
	if got := daysUntil("garbage", today); got != 0 {
		t.Fatalf("expected 0 days for an unparseable date, got %d", got)
	}
}

func TestGetMotivationTiers(t *testing.T) {
	if m := GetMotivation(85, 10); m.Title != "Harika İlerleme!" {
		t.Fatalf("unexpected tier: %+v", m)
	}
	if m := GetMotivation(60, 10); m.Title != "İyi Gidiyorsun!" {
		t.Fatalf("unexpected tier: %+v", m)
	}
	if m := GetMotivation(10, 150); m.Title != "Zamanın Var!" {
		t.Fatalf("unexpected tier: %+v", m)
	}
	if m := GetMotivation(10, 30); m.Title != "Hızlan!" {
		t.Fatalf("unexpected tier: %+v", m)
	}
}

func TestSetSubjectGoalRejectsOverMax(t *testing.T) {
	goals := model.DefaultGoals()
	err := SetSubjectGoal(&goals, "Din Kültürü", 9)
	if err == nil {
		t.Fatalf("expected error above the subject max")
	}
	if !strings.Contains(err.Error(), "maksimum net: 8") {
		t.Fatalf("unexpected error: %v", err)
	}
	if goals.SubjectGoals["Din Kültürü"] != 6 {
		t.Fatalf("expected goal untouched after rejection, got %d", goals.SubjectGoals["Din Kültürü"])
	}
	if err := SetSubjectGoal(&goals, "Din Kültürü", 7); err != nil {
		t.Fatalf("set subject goal: %v", err)
	}
	if goals.SubjectGoals["Din Kültürü"] != 7 {
		t.Fatalf("expected goal updated to 7, got %d", goals.SubjectGoals["Din Kültürü"])
	}
}

func TestSetSubjectGoalRejectsUnknownSubject(t *testing.T) {
	goals := model.DefaultGoals()
	if err := SetSubjectGoal(&goals, "Felsefe", 5); err == nil {
		t.Fatalf("expected error for unknown subject")
	}
}

func TestSetTotalGoalRejectsOverCeiling(t *testing.T) {
	goals := model.DefaultGoals()
	ceiling := subject.MaxTotalNet()
	if err := SetTotalGoal(&goals, ceiling+1); err == nil {
		t.Fatalf("expected error above the ceiling")
	}
	if goals.TotalNetGoal != 200 {
		t.Fatalf("expected goal untouched after rejection, got %d", goals.TotalNetGoal)
	}
	if err := SetTotalGoal(&goals, ceiling); err != nil {
		t.Fatalf("set total goal: %v", err)
	}
	if goals.TotalNetGoal != ceiling {
		t.Fatalf("expected goal updated, got %d", goals.TotalNetGoal)
	}
}

func TestSetTargetDateValidatesFormat(t *testing.T) {
	goals := model.DefaultGoals()
	if err := SetTargetDate(&goals, "15-06-2025"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
	if err := SetTargetDate(&goals, "2026-06-15"); err != nil {
		t.Fatalf("set target date: %v", err)
	}
	if goals.TargetDate != "2026-06-15" {
		t.Fatalf("expected date updated, got %s", goals.TargetDate)
	}
}
