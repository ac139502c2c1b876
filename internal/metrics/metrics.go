// Package metrics computes per-session derived values and repairs
// legacy stored records.
package metrics

import (
	"math"

	"studytrack/internal/model"
)

// Result holds the derived values for a single session. Values are
// unrounded; callers round at persistence time with Round2.
type Result struct {
	Total       int
	NetScore    float64
	SuccessRate float64
	MetTarget   bool
}

// Compute derives total, net score, success rate, and the target flag
// from raw counts. The wrong-answer penalty is one third per wrong and
// the net score is floored at zero.
func Compute(correct, wrong, blank, target int) Result {
	total := correct + wrong + blank
	net := math.Max(0, float64(correct)-float64(wrong)/3)
	rate := 0.0
	if total > 0 {
		rate = net / float64(total) * 100
	}
	return Result{
		Total:       total,
		NetScore:    net,
		SuccessRate: rate,
		MetTarget:   total >= target,
	}
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NewSession builds a fully derived session ready for persistence.
// Derived fields are rounded to 2 decimals, matching the stored format.
func NewSession(date, subjectName, topic string, correct, wrong, blank, target int, timestamp int64) model.Session {
	r := Compute(correct, wrong, blank, target)
	return model.Session{
		Date:        date,
		Subject:     subjectName,
		Topic:       topic,
		Correct:     correct,
		Wrong:       wrong,
		Blank:       blank,
		Total:       r.Total,
		NetScore:    Round2(r.NetScore),
		SuccessRate: Round2(r.SuccessRate),
		Target:      target,
		MetTarget:   r.MetTarget,
		Timestamp:   timestamp,
	}
}
