// Package goal measures current performance against the configured exam
// goals and guards goal mutations.
package goal

import (
	"fmt"
	"math"
	"time"

	"studytrack/internal/aggregate"
	"studytrack/internal/model"
	"studytrack/internal/subject"
)

// SubjectProgress is the per-subject goal status. CurrentAverageNet is
// the 30-day per-session average net, not a sum.
type SubjectProgress struct {
	Subject           string
	Goal              int
	CurrentAverageNet float64
	ProgressPercent   int
	Advice            string
}

// Report combines 30-day performance with the configured goals.
// CurrentTotalNet is a weighted exam-score estimate: each subject's
// average net times its coefficient.
type Report struct {
	CurrentTotalNet  float64
	ProgressPercent  int
	RemainingNet     float64
	DaysUntilExam    int
	RequiredDailyNet float64
	DailyStudyGoal   int
	TargetDate       string
	TotalNetGoal     int
	Subjects         []SubjectProgress
}

// WindowDays is the size of the performance window goal progress is
// measured over.
const WindowDays = 30

// Motivation is the tiered headline for the goals view.
type Motivation struct {
	Emoji string
	Title string
	Text  string
}

// BuildReport computes goal progress from the per-subject rollup of the
// last-30-days window. ProgressPercent is clamped to [0, 100] even when
// the current total exceeds the goal.
func BuildReport(bySubject []aggregate.SubjectStats, goals model.Goals, today time.Time) Report {
	stats := map[string]aggregate.SubjectStats{}
	for _, s := range bySubject {
		stats[s.Subject] = s
	}

	var currentTotal float64
	for _, subj := range subject.All() {
		info := subj.Info()
		currentTotal += stats[info.Name].AverageNet * float64(info.Coefficient)
	}

	progress := 0
	if goals.TotalNetGoal > 0 {
		progress = int(math.Round(math.Min(currentTotal/float64(goals.TotalNetGoal)*100, 100)))
		if progress < 0 {
			progress = 0
		}
	}

	days := daysUntil(goals.TargetDate, today)
	required := 0.0
	if days > 0 {
		required = math.Max(0, (float64(goals.TotalNetGoal)-currentTotal)/float64(days))
	}

	r := Report{
		CurrentTotalNet:  currentTotal,
		ProgressPercent:  progress,
		RemainingNet:     float64(goals.TotalNetGoal) - currentTotal,
		DaysUntilExam:    days,
		RequiredDailyNet: required,
		DailyStudyGoal:   goals.DailyStudyGoal,
		TargetDate:       goals.TargetDate,
		TotalNetGoal:     goals.TotalNetGoal,
	}

	for _, subj := range subject.All() {
		info := subj.Info()
		current := stats[info.Name].AverageNet
		goalNet := goals.SubjectGoals[info.Name]
		pct := 0.0
		if goalNet > 0 {
			pct = math.Min(current/float64(goalNet)*100, 100)
		}
		r.Subjects = append(r.Subjects, SubjectProgress{
			Subject:           info.Name,
			Goal:              goalNet,
			CurrentAverageNet: current,
			ProgressPercent:   int(math.Round(pct)),
			Advice:            adviceFor(pct),
		})
	}
	return r
}

// GetMotivation tiers the headline by overall progress and time left.
func GetMotivation(progressPercent, daysUntilExam int) Motivation {
	switch {
	case progressPercent >= 80:
		return Motivation{Emoji: "🔥", Title: "Harika İlerleme!", Text: "Hedefine çok yaklaştın. Bu tempoda devam et!"}
	case progressPercent >= 50:
		return Motivation{Emoji: "💪", Title: "İyi Gidiyorsun!", Text: "Yarı yolu geçtin. Biraz daha gayret!"}
	case daysUntilExam > 100:
		return Motivation{Emoji: "🎯", Title: "Zamanın Var!", Text: "Planlı çalışarak hedefe ulaşabilirsin."}
	default:
		return Motivation{Emoji: "⚡", Title: "Hızlan!", Text: "Zamana karşı yarışıyorsun. Tempo artırmalısın!"}
	}
}

// SetSubjectGoal applies a per-subject goal update. Values above the
// subject's max question count are rejected before any mutation.
func SetSubjectGoal(goals *model.Goals, name string, value int) error {
	subj, ok := subject.Parse(name)
	if !ok {
		return fmt.Errorf("unknown subject %q", name)
	}
	maxNet := subj.Info().MaxQuestions
	if value > maxNet {
		return fmt.Errorf("%s için maksimum net: %d", name, maxNet)
	}
	if goals.SubjectGoals == nil {
		goals.SubjectGoals = map[string]int{}
	}
	goals.SubjectGoals[name] = value
	return nil
}

// SetTotalGoal applies the total net goal. The ceiling is the sum of all
// subjects' max questions times their coefficients.
func SetTotalGoal(goals *model.Goals, value int) error {
	maxPossible := subject.MaxTotalNet()
	if value > maxPossible {
		return fmt.Errorf("maksimum mümkün net: %d", maxPossible)
	}
	goals.TotalNetGoal = value
	return nil
}

// SetTargetDate applies the exam date after validating the format.
func SetTargetDate(goals *model.Goals, date string) error {
	if _, err := time.ParseInLocation(aggregate.DateLayout, date, time.Local); err != nil {
		return fmt.Errorf("invalid target date: %w", err)
	}
	goals.TargetDate = date
	return nil
}

func daysUntil(targetDate string, today time.Time) int {
	target, err := time.ParseInLocation(aggregate.DateLayout, targetDate, time.Local)
	if err != nil {
		return 0
	}
	days := int(math.Ceil(target.Sub(today).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

func adviceFor(pct float64) string {
	switch {
	case pct >= 80:
		return "Mükemmel! Hedefe çok yakınsın"
	case pct >= 50:
		return "İyi gidiyorsun, devam et!"
	case pct >= 20:
		return "Daha fazla çalışman gerekli"
	default:
		return "Bu derse odaklanmalısın!"
	}
}
