package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"studytrack/internal/aggregate"
	"studytrack/internal/goal"
	"studytrack/internal/model"
	"studytrack/internal/weak"
)

// RenderOverview prints the global rollup.
func RenderOverview(w io.Writer, o aggregate.Overview) error {
	if o.TotalSessions == 0 {
		return writeLines(w, []string{"Henüz çalışma kaydı yok.", ""})
	}
	lines := []string{
		"Genel Bakış",
		fmt.Sprintf("Oturum: %d", o.TotalSessions),
		fmt.Sprintf("Toplam Soru: %d", o.TotalQuestions),
		fmt.Sprintf("Toplam Doğru: %d", o.TotalCorrect),
		fmt.Sprintf("Toplam Net: %.1f", o.TotalNet),
		fmt.Sprintf("Ortalama Başarı: %%%.1f", o.AverageSuccess),
		fmt.Sprintf("Bugün: %d soru", o.TodayQuestions),
		fmt.Sprintf("Bu Hafta: %d soru", o.WeeklyQuestions),
		"",
	}
	return writeLines(w, lines)
}

// RenderSubjects prints the per-subject rollup table.
func RenderSubjects(w io.Writer, stats []aggregate.SubjectStats) error {
	headers := []string{"Ders", "Oturum", "Soru", "Net", "Ort. Net", "Başarı"}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Subject,
			fmt.Sprintf("%d", s.Sessions),
			fmt.Sprintf("%d", s.TotalQuestions),
			fmt.Sprintf("%.1f", s.TotalNet),
			fmt.Sprintf("%.1f", s.AverageNet),
			fmt.Sprintf("%%%.1f", s.SuccessRate),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	lines := append([]string{"Ders Performansı"}, formatTable(headers, rows, rightAlign)...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderRecent prints the most recent sessions.
func RenderRecent(w io.Writer, sessions []model.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	headers := []string{"Tarih", "Ders", "Konu", "D", "Y", "B", "Net", "Başarı", "Hedef"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		target := "!"
		if s.MetTarget {
			target = "✓"
		}
		rows = append(rows, []string{
			s.Date,
			s.Subject,
			s.Topic,
			fmt.Sprintf("%d", s.Correct),
			fmt.Sprintf("%d", s.Wrong),
			fmt.Sprintf("%d", s.Blank),
			fmt.Sprintf("%.1f", s.NetScore),
			fmt.Sprintf("%%%.1f", s.SuccessRate),
			target,
		})
	}
	rightAlign := map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true}
	lines := append([]string{"Son Çalışmalar"}, formatTable(headers, rows, rightAlign)...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderDailyTrend prints a sparkline of daily net totals, most recent
// on the right, capped to the given width.
func RenderDailyTrend(w io.Writer, byDate map[string]*aggregate.DayStats, width int) error {
	if len(byDate) == 0 {
		return nil
	}
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	values := make([]float64, 0, len(dates))
	for _, date := range dates {
		values = append(values, byDate[date].TotalNet)
	}
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
		dates = dates[len(dates)-width:]
	}
	lines := []string{
		"Günlük Net Eğilimi",
		Sparkline(values),
		fmt.Sprintf("%s .. %s", dates[0], dates[len(dates)-1]),
		"",
	}
	return writeLines(w, lines)
}

// RenderWeakTopics prints the weak-topic summary and list.
func RenderWeakTopics(w io.Writer, topics []weak.Topic, sum weak.Summary) error {
	if len(topics) == 0 {
		return writeLines(w, []string{"Zayıf konu yok. Tüm konularda iyi durumdasın!", ""})
	}
	lines := []string{
		"Zayıf Konular",
		fmt.Sprintf("Toplam Zayıf: %d", sum.TotalWeakTopics),
		fmt.Sprintf("Hiç Çalışılmamış: %d", sum.NeverStudied),
		fmt.Sprintf("Düşük Başarı: %d", sum.LowSuccess),
		fmt.Sprintf("Yanlış > Doğru: %d", sum.MoreWrongThanRight),
		"",
	}
	headers := []string{"Öncelik", "Ders", "Konu", "Neden", "Oturum", "D", "Y", "Son Çalışma"}
	rows := make([][]string, 0, len(topics))
	for _, t := range topics {
		last := t.LastStudied
		if last == "" {
			last = "-"
		}
		rows = append(rows, []string{
			priorityLabel(t.Priority),
			t.Subject,
			t.Topic,
			t.ReasonText,
			fmt.Sprintf("%d", t.Sessions),
			fmt.Sprintf("%d", t.TotalCorrect),
			fmt.Sprintf("%d", t.TotalWrong),
			last,
		})
	}
	rightAlign := map[int]bool{4: true, 5: true, 6: true}
	lines = append(lines, formatTable(headers, rows, rightAlign)...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderGoals prints the goal-progress report.
func RenderGoals(w io.Writer, r goal.Report) error {
	m := goal.GetMotivation(r.ProgressPercent, r.DaysUntilExam)
	lines := []string{
		fmt.Sprintf("%s %s %s", m.Emoji, m.Title, m.Text),
		"",
		"Genel İlerleme",
		fmt.Sprintf("Mevcut Net: %.0f / %d (%%%d)", r.CurrentTotalNet, r.TotalNetGoal, r.ProgressPercent),
		fmt.Sprintf("Kalan: %.0f net", r.RemainingNet),
		fmt.Sprintf("Sınava Kalan: %d gün (%s)", r.DaysUntilExam, r.TargetDate),
		fmt.Sprintf("Günlük Gereken Net: %.0f", r.RequiredDailyNet),
		"",
	}
	headers := []string{"Ders", "Hedef", "Mevcut", "İlerleme", "Tavsiye"}
	rows := make([][]string, 0, len(r.Subjects))
	for _, s := range r.Subjects {
		rows = append(rows, []string{
			s.Subject,
			fmt.Sprintf("%d", s.Goal),
			fmt.Sprintf("%.1f", s.CurrentAverageNet),
			fmt.Sprintf("%%%d", s.ProgressPercent),
			s.Advice,
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	lines = append(lines, formatTable(headers, rows, rightAlign)...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

var weekdayHeaders = []string{"Paz", "Pzt", "Sal", "Çar", "Per", "Cum", "Cmt"}

var monthNames = []string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// RenderCalendar prints a month grid. Days where every session met its
// target and at least 20 questions were solved are marked with '*';
// other studied days with '+'.
func RenderCalendar(w io.Writer, byDate map[string]*aggregate.DayStats, year int, month time.Month) error {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := firstDay.AddDate(0, 1, -1).Day()
	offset := int(firstDay.Weekday())

	lines := []string{fmt.Sprintf("%s %d", monthNames[month-1], year)}
	header := ""
	for i, day := range weekdayHeaders {
		if i > 0 {
			header += " "
		}
		header += fmt.Sprintf("%4s", day)
	}
	lines = append(lines, header)

	row := ""
	col := 0
	for i := 0; i < offset; i++ {
		if col > 0 {
			row += " "
		}
		row += "    "
		col++
	}
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		marker := " "
		if stats, ok := byDate[date]; ok {
			if stats.MetAllTargets && stats.TotalQuestions >= 20 {
				marker = "*"
			} else if stats.TotalQuestions > 0 {
				marker = "+"
			}
		}
		if col > 0 {
			row += " "
		}
		row += fmt.Sprintf("%3d%s", day, marker)
		col++
		if col == 7 {
			lines = append(lines, row)
			row = ""
			col = 0
		}
	}
	if row != "" {
		lines = append(lines, row)
	}
	lines = append(lines, "", "* hedefler başarılı   + çalışılmış", "")
	return writeLines(w, lines)
}

func priorityLabel(priority string) string {
	switch priority {
	case weak.PriorityHigh:
		return "Yüksek"
	case weak.PriorityMedium:
		return "Orta"
	case weak.PriorityLow:
		return "Düşük"
	default:
		return priority
	}
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
