package metrics

import (
	"math"
	"testing"
)

func TestComputeDerivesNetAndRate(t *testing.T) {
	r := Compute(15, 3, 2, 20)
	if r.Total != 20 {
		t.Fatalf("expected total 20, got %d", r.Total)
	}
	if math.Abs(r.NetScore-14) > 1e-9 {
		t.Fatalf("expected net 14, got %f", r.NetScore)
	}
	if math.Abs(r.SuccessRate-70) > 1e-9 {
		t.Fatalf("expected success rate 70, got %f", r.SuccessRate)
	}
	if !r.MetTarget {
		t.Fatalf("expected target met at 20 questions")
	}
}

func TestComputeFloorsNetAtZero(t *testing.T) {
	r := Compute(1, 9, 0, 20)
	if r.NetScore != 0 {
		t.Fatalf("expected net floored at 0, got %f", r.NetScore)
	}
	if r.SuccessRate != 0 {
		t.Fatalf("expected success rate 0, got %f", r.SuccessRate)
	}
	if r.MetTarget {
		t.Fatalf("expected target not met with 10 questions")
	}
}

func TestComputeAllZero(t *testing.T) {
	r := Compute(0, 0, 0, 20)
	if r.Total != 0 || r.NetScore != 0 || r.SuccessRate != 0 {
		t.Fatalf("expected all-zero result, got %+v", r)
	}
	if r.MetTarget {
		t.Fatalf("expected target not met with 0 questions")
	}
}

func TestComputeZeroTarget(t *testing.T) {
	r := Compute(0, 0, 0, 0)
	if !r.MetTarget {
		t.Fatalf("expected 0 >= 0 to meet a zero target")
	}
}

func TestNewSessionRoundsDerivedFields(t *testing.T) {
	sess := NewSession("2025-01-10", "Matematik", "Cebir", 10, 1, 0, 20, 1736500000000)
	if sess.Total != 11 {
		t.Fatalf("expected total 11, got %d", sess.Total)
	}
	if sess.NetScore != 9.67 {
		t.Fatalf("expected net 9.67, got %f", sess.NetScore)
	}
	if sess.SuccessRate != 87.88 {
		t.Fatalf("expected success rate 87.88, got %f", sess.SuccessRate)
	}
	if sess.MetTarget {
		t.Fatalf("expected target not met with 11 of 20 questions")
	}
	if sess.Timestamp != 1736500000000 {
		t.Fatalf("unexpected timestamp %d", sess.Timestamp)
	}
}
