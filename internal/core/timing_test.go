package core

import (
	"errors"
	"testing"
)

func TestNewTimingParams_Valid(t *testing.T) {
	p, err := NewTimingParams(DefaultTimingParams())
	if err != nil {
		t.Fatalf("NewTimingParams() error = %v", err)
	}
	if p.EarliestClimbLevels != 1 || p.LatestClimbLevels != 2 {
		t.Errorf("climb levels = (%d, %d), want (1, 2)",
			p.EarliestClimbLevels, p.LatestClimbLevels)
	}
	if got := p.EdgeTime(p.VMax); got != 6 {
		t.Errorf("EdgeTime(vmax) = %g, want 6", got)
	}
}

func TestNewTimingParams_ClimbDefaults(t *testing.T) {
	in := DefaultTimingParams()
	in.FlightLevels = 1
	in.EarliestClimbLevels = 0
	in.LatestClimbLevels = 0

	p, err := NewTimingParams(in)
	if err != nil {
		t.Fatalf("NewTimingParams() error = %v", err)
	}
	// Latest climb is capped by the single available level.
	if p.EarliestClimbLevels != 1 || p.LatestClimbLevels != 1 {
		t.Errorf("climb levels = (%d, %d), want (1, 1)",
			p.EarliestClimbLevels, p.LatestClimbLevels)
	}
}

func TestNewTimingParams_Invalid(t *testing.T) {
	modify := func(f func(*TimingParams)) TimingParams {
		p := DefaultTimingParams()
		f(&p)
		return p
	}

	tests := []struct {
		name string
		p    TimingParams
	}{
		{"negative ground delay", modify(func(p *TimingParams) { p.GroundDelayMax = -1 })},
		{"zero flight levels", modify(func(p *TimingParams) { p.FlightLevels = 0 })},
		{"negative flight levels", modify(func(p *TimingParams) { p.FlightLevels = -2 })},
		{"zero level change time", modify(func(p *TimingParams) { p.LevelChangeTime = 0 })},
		{"zero vmin", modify(func(p *TimingParams) { p.VMin = 0 })},
		{"negative vmax", modify(func(p *TimingParams) { p.VMax = -5 })},
		{"inverted speed bounds", modify(func(p *TimingParams) { p.VMin = 12; p.VMax = 10 })},
		{"zero edge length", modify(func(p *TimingParams) { p.EdgeLength = 0 })},
		{"climb beyond levels", modify(func(p *TimingParams) { p.LatestClimbLevels = 5 })},
	}

	for _, tt := range tests {
		if _, err := NewTimingParams(tt.p); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: NewTimingParams() error = %v, want ErrInvalidParameter", tt.name, err)
		}
	}
}
