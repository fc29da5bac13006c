package core

import "fmt"

// TimingParams bundles the scalar timing constraints shared by every
// flight of one instance. Validated once at construction, immutable after.
type TimingParams struct {
	EdgeLength      float64 // meters per grid arc
	VMin            float64 // min cruise speed, m/s
	VMax            float64 // max cruise speed, m/s
	GroundDelayMax  float64 // max ground holding, seconds
	FlightLevels    int     // number of available flight levels
	LevelChangeTime float64 // seconds to ascend/descend one level

	// Levels climbed before cruise for the earliest and latest
	// trajectory bounds. Zero values default to 1 and min(2, FlightLevels).
	EarliestClimbLevels int
	LatestClimbLevels   int
}

// NewTimingParams validates p and fills climb-level defaults.
func NewTimingParams(p TimingParams) (TimingParams, error) {
	if p.EdgeLength <= 0 {
		return TimingParams{}, fmt.Errorf("%w: edge length must be positive, got %g",
			ErrInvalidParameter, p.EdgeLength)
	}
	if p.VMin <= 0 || p.VMax <= 0 {
		return TimingParams{}, fmt.Errorf("%w: cruise speeds must be positive, got vmin=%g vmax=%g",
			ErrInvalidParameter, p.VMin, p.VMax)
	}
	if p.VMin > p.VMax {
		return TimingParams{}, fmt.Errorf("%w: vmin %g exceeds vmax %g",
			ErrInvalidParameter, p.VMin, p.VMax)
	}
	if p.GroundDelayMax < 0 {
		return TimingParams{}, fmt.Errorf("%w: max ground delay must be non-negative, got %g",
			ErrInvalidParameter, p.GroundDelayMax)
	}
	if p.FlightLevels < 1 {
		return TimingParams{}, fmt.Errorf("%w: flight levels must be a positive integer, got %d",
			ErrInvalidParameter, p.FlightLevels)
	}
	if p.LevelChangeTime <= 0 {
		return TimingParams{}, fmt.Errorf("%w: level change time must be positive, got %g",
			ErrInvalidParameter, p.LevelChangeTime)
	}

	if p.EarliestClimbLevels == 0 {
		p.EarliestClimbLevels = 1
	}
	if p.LatestClimbLevels == 0 {
		p.LatestClimbLevels = min(2, p.FlightLevels)
	}
	if p.EarliestClimbLevels < 0 || p.LatestClimbLevels < 0 {
		return TimingParams{}, fmt.Errorf("%w: climb levels must be non-negative",
			ErrInvalidParameter)
	}
	if p.EarliestClimbLevels > p.FlightLevels || p.LatestClimbLevels > p.FlightLevels {
		return TimingParams{}, fmt.Errorf("%w: climb levels exceed %d available flight levels",
			ErrInvalidParameter, p.FlightLevels)
	}

	return p, nil
}

// EdgeTime returns the traversal time of one arc at speed v.
func (p TimingParams) EdgeTime(v float64) float64 {
	return p.EdgeLength / v
}

// DefaultTimingParams returns the reference scenario parameters:
// 60 m arcs, 2-10 m/s cruise band, two flight levels.
func DefaultTimingParams() TimingParams {
	return TimingParams{
		EdgeLength:          60.0,
		VMin:                2.0,
		VMax:                10.0,
		GroundDelayMax:      120.0,
		FlightLevels:        2,
		LevelChangeTime:     30.0,
		EarliestClimbLevels: 1,
		LatestClimbLevels:   2,
	}
}
