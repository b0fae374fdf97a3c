package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestClock_EffectiveG(t *testing.T) {
	c, err := NewClock(60)
	if err != nil {
		t.Fatalf("NewClock: %v", err)
	}
	if c.EffectiveG() != GravitationalConstant {
		t.Errorf("one second per step should leave G unscaled, got %g", c.EffectiveG())
	}

	if err := c.SetSpeed(Day); err != nil {
		t.Fatalf("SetSpeed: %v", err)
	}
	step := Day / ReferenceFrameRate
	want := GravitationalConstant * step * step
	if math.Abs(c.EffectiveG()-want) > want*1e-15 {
		t.Errorf("EffectiveG = %g, want %g", c.EffectiveG(), want)
	}
	if c.StepSeconds() != 1440 {
		t.Errorf("StepSeconds = %g, want 1440", c.StepSeconds())
	}
}

func TestClock_InvalidSpeed(t *testing.T) {
	c, _ := NewClock(1)
	for _, s := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := c.SetSpeed(s); !errors.Is(err, dynamo.ErrInvalidConfiguration) {
			t.Errorf("SetSpeed(%g): expected ErrInvalidConfiguration, got %v", s, err)
		}
	}
	if c.Speed() != 1 {
		t.Errorf("rejected speed changed state: %g", c.Speed())
	}
}

func TestClock_AdvanceTime(t *testing.T) {
	c, _ := NewClock(Hour)
	for i := 0; i < 60; i++ {
		if err := c.AdvanceTime(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}
	if math.Abs(c.Elapsed()-Hour) > 1e-9 {
		t.Errorf("Elapsed = %g, want %g", c.Elapsed(), Hour)
	}

	before := c.Elapsed()
	if err := c.AdvanceTime(-1); err == nil {
		t.Error("expected error for negative real time")
	}
	if c.Elapsed() != before {
		t.Error("elapsed time decreased")
	}
}

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		speed    float64
		expected string
	}{
		{1, "1 Sec/Sec"},
		{0.5, "0.5 Sec/Sec"},
		{30, "30 Sec/Sec"},
		{60, "1 Min/Sec"},
		{90, "1.5 Min/Sec"},
		{3.5 * Hour, "3.5 Hours/Sec"},
		{Day, "1 Days/Sec"},
		{Year / 3, "121.75 Days/Sec"},
		{2 * Year, "2 Years/Sec"},
		{Hour + 20, "1.01 Hours/Sec"},
	}

	for _, tt := range tests {
		if got := FormatSpeed(tt.speed); got != tt.expected {
			t.Errorf("FormatSpeed(%g) = %q, want %q", tt.speed, got, tt.expected)
		}
	}
}
