// Package weak flags (subject, topic) pairs that need more study.
package weak

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"studytrack/internal/aggregate"
	"studytrack/internal/subject"
)

// Reason codes, in detection order.
const (
	ReasonNeverStudied = "never_studied"
	ReasonMoreWrong    = "more_wrong"
	ReasonLowSuccess   = "low_success"
)

// Priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Classification thresholds over all-time per-topic stats.
const (
	moreWrongMinQuestions  = 5
	lowSuccessMinQuestions = 3
	lowSuccessThreshold    = 50
	criticalThreshold      = 25
)

// Topic is one flagged (subject, topic) pair. Reason holds the first
// detected code; ReasonText joins all detected reasons for display.
type Topic struct {
	Subject        string
	Topic          string
	Reason         string
	ReasonText     string
	Priority       string
	Sessions       int
	AverageSuccess float64
	TotalCorrect   int
	TotalWrong     int
	LastStudied    string
}

// Summary counts flagged topics per reason. A topic can increment both
// LowSuccess and MoreWrongThanRight; NeverStudied excludes the others.
type Summary struct {
	TotalWeakTopics    int
	NeverStudied       int
	LowSuccess         int
	MoreWrongThanRight int
}

var priorityRank = map[string]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Classify runs the threshold rules over the full fixed topic universe,
// not just pairs with session history. The result is sorted by priority
// descending; ties keep the configuration's subject and topic order.
func Classify(topics map[aggregate.TopicKey]*aggregate.TopicStats) ([]Topic, Summary) {
	var out []Topic
	var sum Summary

	for _, subj := range subject.All() {
		info := subj.Info()
		for _, topicName := range info.Topics {
			stat := topics[aggregate.TopicKey{Subject: info.Name, Topic: topicName}]
			if stat == nil {
				out = append(out, Topic{
					Subject:    info.Name,
					Topic:      topicName,
					Reason:     ReasonNeverStudied,
					ReasonText: "Hiç çalışılmamış",
					Priority:   PriorityHigh,
				})
				sum.NeverStudied++
				continue
			}

			var reasons []string
			var reasonTexts []string
			priority := PriorityLow

			if stat.TotalWrong > stat.TotalCorrect && stat.TotalQuestions >= moreWrongMinQuestions {
				reasons = append(reasons, ReasonMoreWrong)
				reasonTexts = append(reasonTexts, "Yanlış > Doğru")
				priority = PriorityMedium
				sum.MoreWrongThanRight++
			}
			if stat.AverageSuccess < lowSuccessThreshold && stat.TotalQuestions >= lowSuccessMinQuestions {
				reasons = append(reasons, ReasonLowSuccess)
				reasonTexts = append(reasonTexts, fmt.Sprintf("%%%d başarı", int(math.Round(stat.AverageSuccess))))
				priority = PriorityMedium
				sum.LowSuccess++
			}
			if stat.AverageSuccess < criticalThreshold && stat.TotalQuestions >= lowSuccessMinQuestions {
				priority = PriorityHigh
			}

			if len(reasons) == 0 {
				continue
			}
			out = append(out, Topic{
				Subject:        info.Name,
				Topic:          topicName,
				Reason:         reasons[0],
				ReasonText:     strings.Join(reasonTexts, ", "),
				Priority:       priority,
				Sessions:       stat.Sessions,
				AverageSuccess: stat.AverageSuccess,
				TotalCorrect:   stat.TotalCorrect,
				TotalWrong:     stat.TotalWrong,
				LastStudied:    stat.LastStudied,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank[out[i].Priority] > priorityRank[out[j].Priority]
	})
	sum.TotalWeakTopics = len(out)
	return out, sum
}
