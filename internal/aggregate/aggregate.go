// Package aggregate reduces session collections into rollup views. All
// functions are pure: they read the input slice and carry no state
// between calls.
package aggregate

import (
	"sort"
	"time"

	"studytrack/internal/model"
	"studytrack/internal/subject"
)

// DateLayout is the calendar-date format used by stored sessions.
const DateLayout = "2006-01-02"

// Overview summarizes the whole collection. AverageSuccess is the simple
// arithmetic mean of per-session success rates, not weighted by question
// count; the weighted variant lives on SubjectStats and TopicStats.
type Overview struct {
	TotalQuestions  int
	TotalCorrect    int
	TotalNet        float64
	AverageSuccess  float64
	TodayQuestions  int
	WeeklyQuestions int
	TotalSessions   int
}

// SubjectStats is the per-subject rollup. SuccessRate is net-weighted:
// sum(netScore)/sum(total)*100.
type SubjectStats struct {
	Subject        string
	TotalQuestions int
	TotalNet       float64
	Sessions       int
	AverageNet     float64
	SuccessRate    float64
}

// TopicKey identifies a (subject, topic) pair.
type TopicKey struct {
	Subject string
	Topic   string
}

// TopicStats is the per-topic rollup. AverageSuccess is net-weighted.
type TopicStats struct {
	Subject        string
	Topic          string
	TotalCorrect   int
	TotalWrong     int
	TotalBlank     int
	TotalQuestions int
	TotalNet       float64
	Sessions       int
	LastStudied    string
	AverageSuccess float64
}

// DayStats is the calendar rollup for a single date. MetAllTargets is
// true only when every session of the day met its own target; days with
// no sessions are absent from the rollup entirely.
type DayStats struct {
	Date           string
	TotalQuestions int
	TotalNet       float64
	Sessions       int
	Subjects       map[string]struct{}
	MetAllTargets  bool
}

// SortByRecency returns the sessions ordered most recent first: by
// timestamp descending, falling back to date descending when a record
// carries no timestamp.
func SortByRecency(sessions []model.Session) []model.Session {
	out := make([]model.Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].Date > out[j].Date
	})
	return out
}

// Recent returns the n most recent sessions.
func Recent(sessions []model.Session, n int) []model.Session {
	sorted := SortByRecency(sessions)
	if n < 0 || n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// FilterSubject keeps sessions for one subject name.
func FilterSubject(sessions []model.Session, name string) []model.Session {
	var out []model.Session
	for _, s := range sessions {
		if s.Subject == name {
			out = append(out, s)
		}
	}
	return out
}

// FilterWindow keeps sessions whose calendar date falls within the last
// `days` days up to and including the given day. Comparison is purely
// calendar-date based; ISO date strings order lexicographically.
func FilterWindow(sessions []model.Session, today time.Time, days int) []model.Session {
	cutoff := today.AddDate(0, 0, -days).Format(DateLayout)
	var out []model.Session
	for _, s := range sessions {
		if s.Date >= cutoff {
			out = append(out, s)
		}
	}
	return out
}

// FilterSince keeps sessions logged on or after the given ISO date.
func FilterSince(sessions []model.Session, date string) []model.Session {
	var out []model.Session
	for _, s := range sessions {
		if s.Date >= date {
			out = append(out, s)
		}
	}
	return out
}

// BuildOverview computes the global rollup for the collection.
func BuildOverview(sessions []model.Session, today time.Time) Overview {
	o := Overview{TotalSessions: len(sessions)}
	todayStr := today.Format(DateLayout)
	weekCutoff := today.AddDate(0, 0, -7).Format(DateLayout)
	var successSum float64
	for _, s := range sessions {
		o.TotalQuestions += s.Total
		o.TotalCorrect += s.Correct
		o.TotalNet += s.NetScore
		successSum += s.SuccessRate
		if s.Date == todayStr {
			o.TodayQuestions += s.Total
		}
		if s.Date >= weekCutoff {
			o.WeeklyQuestions += s.Total
		}
	}
	if len(sessions) > 0 {
		o.AverageSuccess = successSum / float64(len(sessions))
	}
	return o
}

// BySubject rolls sessions up per subject. Every one of the six subjects
// appears in declared order; subjects without sessions report zeros.
func BySubject(sessions []model.Session) []SubjectStats {
	index := map[string]int{}
	out := make([]SubjectStats, 0, len(subject.All()))
	for i, s := range subject.All() {
		index[s.Name()] = i
		out = append(out, SubjectStats{Subject: s.Name()})
	}
	for _, s := range sessions {
		i, ok := index[s.Subject]
		if !ok {
			continue
		}
		out[i].TotalQuestions += s.Total
		out[i].TotalNet += s.NetScore
		out[i].Sessions++
	}
	for i := range out {
		if out[i].Sessions > 0 {
			out[i].AverageNet = out[i].TotalNet / float64(out[i].Sessions)
		}
		if out[i].TotalQuestions > 0 {
			out[i].SuccessRate = out[i].TotalNet / float64(out[i].TotalQuestions) * 100
		}
	}
	return out
}

// ByTopic rolls sessions up per (subject, topic) pair.
func ByTopic(sessions []model.Session) map[TopicKey]*TopicStats {
	out := map[TopicKey]*TopicStats{}
	for _, s := range sessions {
		key := TopicKey{Subject: s.Subject, Topic: s.Topic}
		stat, ok := out[key]
		if !ok {
			stat = &TopicStats{Subject: s.Subject, Topic: s.Topic, LastStudied: s.Date}
			out[key] = stat
		}
		stat.TotalCorrect += s.Correct
		stat.TotalWrong += s.Wrong
		stat.TotalBlank += s.Blank
		stat.TotalQuestions += s.Total
		stat.TotalNet += s.NetScore
		stat.Sessions++
		if s.Date > stat.LastStudied {
			stat.LastStudied = s.Date
		}
	}
	for _, stat := range out {
		if stat.TotalQuestions > 0 {
			stat.AverageSuccess = stat.TotalNet / float64(stat.TotalQuestions) * 100
		}
	}
	return out
}

// ByDate rolls sessions up per calendar date.
func ByDate(sessions []model.Session) map[string]*DayStats {
	out := map[string]*DayStats{}
	for _, s := range sessions {
		day, ok := out[s.Date]
		if !ok {
			day = &DayStats{
				Date:          s.Date,
				Subjects:      map[string]struct{}{},
				MetAllTargets: true,
			}
			out[s.Date] = day
		}
		day.TotalQuestions += s.Total
		day.TotalNet += s.NetScore
		day.Sessions++
		day.Subjects[s.Subject] = struct{}{}
		if !s.MetTarget {
			day.MetAllTargets = false
		}
	}
	return out
}
