package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"studytrack/internal/model"
	"studytrack/internal/subject"
)

// Normalize fills derived fields on a raw stored record that may predate
// the derived-fields schema. Already-present derived values are kept
// untouched; absent numeric fields count as 0. Running Normalize on an
// already-normalized record changes nothing.
func Normalize(raw map[string]any) model.Session {
	s := model.Session{
		Date:      asString(raw["date"]),
		Subject:   asString(raw["subject"]),
		Topic:     asString(raw["topic"]),
		Correct:   int(asNumber(raw["correct"])),
		Wrong:     int(asNumber(raw["wrong"])),
		Blank:     int(asNumber(raw["blank"])),
		Total:     int(asNumber(raw["total"])),
		Target:    int(asNumber(raw["target"])),
		Timestamp: int64(asNumber(raw["timestamp"])),
	}

	if v, ok := raw["netScore"]; ok {
		s.NetScore = asNumber(v)
	} else {
		s.NetScore = math.Max(0, float64(s.Correct)-float64(s.Wrong)/3)
	}
	if v, ok := raw["successRate"]; ok {
		s.SuccessRate = asNumber(v)
	} else if s.Total > 0 {
		s.SuccessRate = s.NetScore / float64(s.Total) * 100
	}
	if v, ok := raw["metTarget"]; ok {
		s.MetTarget, _ = v.(bool)
	} else {
		target := s.Target
		if target == 0 {
			target = subject.DefaultTarget
		}
		s.MetTarget = s.Total >= target
	}
	return s
}

// DecodeSession parses a stored record and normalizes it. Only records
// that are not valid JSON at all produce an error; anything parseable is
// repaired field by field.
func DecodeSession(data []byte) (model.Session, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Session{}, fmt.Errorf("failed to parse session record: %w", err)
	}
	return Normalize(raw), nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asNumber coerces stored values to a float. Malformed values become 0.
func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
