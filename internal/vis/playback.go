package vis

import "time"

// Playback manages instance-time playback for the visualizer.
type Playback struct {
	CurrentTime float64 // Current instance time in seconds
	MaxTime     float64 // Latest arrival across all flights
	Speed       float64 // Playback speed multiplier
	Playing     bool
	lastUpdate  time.Time
}

// NewPlayback creates a paused playback at t=0.
func NewPlayback(maxTime float64) *Playback {
	return &Playback{
		MaxTime:    maxTime,
		Speed:      10.0, // instance timelines span minutes; play them fast
		lastUpdate: time.Now(),
	}
}

// TogglePlay toggles playback on/off.
func (p *Playback) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		if p.CurrentTime >= p.MaxTime {
			p.CurrentTime = 0
		}
	}
}

// Reset rewinds to t=0 and pauses.
func (p *Playback) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves the clock by the wall time elapsed since the last frame.
func (p *Playback) Advance() {
	if !p.Playing {
		return
	}

	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now

	p.CurrentTime += elapsed * p.Speed
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime sets the current instance time, clamped to [0, MaxTime].
func (p *Playback) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxTime {
		t = p.MaxTime
	}
	p.CurrentTime = t
}

// StepForward pauses and advances by 1% of the timeline.
func (p *Playback) StepForward() {
	p.Playing = false
	p.SetTime(p.CurrentTime + p.step())
}

// StepBack pauses and rewinds by 1% of the timeline.
func (p *Playback) StepBack() {
	p.Playing = false
	p.SetTime(p.CurrentTime - p.step())
}

func (p *Playback) step() float64 {
	step := p.MaxTime / 100
	if step < 0.1 {
		step = 0.1
	}
	return step
}
