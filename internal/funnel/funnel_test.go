package funnel

import (
	"math"
	"testing"

	"github.com/onurcolak/blast-tracker/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuild_Placeholder(t *testing.T) {
	stages := Build(domain.PlaceholderMetrics())

	if len(stages) != 5 {
		t.Fatalf("expected 5 stages, got %d", len(stages))
	}

	want := []struct {
		label      string
		count      int64
		percentage float64
		conversion float64
		dropOff    float64
	}{
		{"Sent", 500, 100, 100, 0},
		{"Received", 480, 96, 96, 4},
		{"Read", 350, 70, 350.0 / 480 * 100, 26},
		{"Replied", 120, 24, 120.0 / 350 * 100, 46},
		{"Closed", 25, 5, 25.0 / 120 * 100, 19},
	}

	for i, w := range want {
		s := stages[i]
		if s.Label != w.label || s.Count != w.count {
			t.Errorf("stage %d: expected %s/%d, got %s/%d", i, w.label, w.count, s.Label, s.Count)
		}
		if !almostEqual(s.Percentage, w.percentage) {
			t.Errorf("%s: expected percentage %.2f, got %.2f", w.label, w.percentage, s.Percentage)
		}
		if !almostEqual(s.ConversionRate, w.conversion) {
			t.Errorf("%s: expected conversion %.2f, got %.2f", w.label, w.conversion, s.ConversionRate)
		}
		if !almostEqual(s.DropOff, w.dropOff) {
			t.Errorf("%s: expected drop-off %.2f, got %.2f", w.label, w.dropOff, s.DropOff)
		}
	}

	if stages[0].Width != 100 || !almostEqual(stages[1].Width, 96) {
		t.Errorf("unexpected widths %.2f %.2f", stages[0].Width, stages[1].Width)
	}
}

func TestBuild_ZeroSent(t *testing.T) {
	stages := Build(domain.BlastMetrics{})

	if stages[0].Percentage != 100 || stages[0].Width != 100 {
		t.Errorf("expected Sent to always render at 100%%, got %+v", stages[0])
	}
	for _, s := range stages[1:] {
		if s.Percentage != 0 || s.ConversionRate != 0 || s.Width != 0 || s.DropOff != 0 {
			t.Errorf("%s: expected zeros, got %+v", s.Label, s)
		}
	}
}

func TestBuild_NoNegativeDropOff(t *testing.T) {
	stages := Build(domain.BlastMetrics{Sent: 10, Received: 5, Read: 8})

	if stages[2].DropOff != 0 {
		t.Errorf("expected no drop-off when a stage grows, got %.2f", stages[2].DropOff)
	}
	if !almostEqual(stages[2].ConversionRate, 160) {
		t.Errorf("expected conversion 160, got %.2f", stages[2].ConversionRate)
	}
}

func TestBuild_WidthRelativeToMax(t *testing.T) {
	stages := Build(domain.BlastMetrics{Sent: 10, Received: 20})

	if stages[0].Width != 100 {
		t.Errorf("expected Sent width pinned to 100, got %.2f", stages[0].Width)
	}
	if stages[1].Width != 100 {
		t.Errorf("expected largest stage at 100, got %.2f", stages[1].Width)
	}
}
