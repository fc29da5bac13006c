package instfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/utm-bench/internal/core"
)

// ScenarioConfig is the YAML scenario description accepted by utmgen.
// Every field has a reference-scenario default; flags override the file.
type ScenarioConfig struct {
	Name string `yaml:"name"`

	Grid struct {
		Rows       int     `yaml:"rows"`
		Cols       int     `yaml:"cols"`
		EdgeLength float64 `yaml:"edge_length"`
	} `yaml:"grid"`

	Timing struct {
		VMin                float64 `yaml:"v_min"`
		VMax                float64 `yaml:"v_max"`
		GroundDelayMax      float64 `yaml:"ground_delay_max"`
		FlightLevels        int     `yaml:"flight_levels"`
		LevelChangeTime     float64 `yaml:"level_change_time"`
		EarliestClimbLevels int     `yaml:"earliest_climb_levels"`
		LatestClimbLevels   int     `yaml:"latest_climb_levels"`
	} `yaml:"timing"`

	Replications     int     `yaml:"replications"`
	ShiftGranularity float64 `yaml:"shift_granularity"`
	MinSeparation    float64 `yaml:"min_separation"`

	// Optional: overrides the built-in D1-D5 catalogue. Must hold exactly
	// five entries when present.
	ReferenceFlights []struct {
		Offset float64 `yaml:"offset"`
		Path   []int   `yaml:"path"`
	} `yaml:"reference_flights"`
}

// DefaultScenario returns the reference scenario: the 9x8 grid, the
// default timing bundle and the built-in catalogue.
func DefaultScenario() *ScenarioConfig {
	c := &ScenarioConfig{}
	spec := core.DefaultGridSpec()
	c.Grid.Rows = spec.Rows
	c.Grid.Cols = spec.Cols
	c.Grid.EdgeLength = spec.EdgeLength

	t := core.DefaultTimingParams()
	c.Timing.VMin = t.VMin
	c.Timing.VMax = t.VMax
	c.Timing.GroundDelayMax = t.GroundDelayMax
	c.Timing.FlightLevels = t.FlightLevels
	c.Timing.LevelChangeTime = t.LevelChangeTime
	c.Timing.EarliestClimbLevels = t.EarliestClimbLevels
	c.Timing.LatestClimbLevels = t.LatestClimbLevels

	c.Replications = 1
	c.ShiftGranularity = 60
	c.MinSeparation = 28
	return c
}

// LoadScenario reads a YAML scenario file over the defaults.
func LoadScenario(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	c := DefaultScenario()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return c, nil
}

// GridSpec returns the configured grid spec.
func (c *ScenarioConfig) GridSpec() core.GridSpec {
	return core.GridSpec{
		Rows:       c.Grid.Rows,
		Cols:       c.Grid.Cols,
		EdgeLength: c.Grid.EdgeLength,
	}
}

// TimingParams validates and returns the configured timing bundle. The
// edge length is taken from the grid so the two can never disagree.
func (c *ScenarioConfig) TimingParams() (core.TimingParams, error) {
	return core.NewTimingParams(core.TimingParams{
		EdgeLength:          c.Grid.EdgeLength,
		VMin:                c.Timing.VMin,
		VMax:                c.Timing.VMax,
		GroundDelayMax:      c.Timing.GroundDelayMax,
		FlightLevels:        c.Timing.FlightLevels,
		LevelChangeTime:     c.Timing.LevelChangeTime,
		EarliestClimbLevels: c.Timing.EarliestClimbLevels,
		LatestClimbLevels:   c.Timing.LatestClimbLevels,
	})
}

// ReferenceSet returns the configured reference flights, or the built-in
// catalogue when the scenario does not override them.
func (c *ScenarioConfig) ReferenceSet() (*core.ReferenceFlightSet, error) {
	if len(c.ReferenceFlights) == 0 {
		return core.DefaultReferenceFlights(), nil
	}

	flights := make([]core.ReferenceFlight, len(c.ReferenceFlights))
	for i, rf := range c.ReferenceFlights {
		path := make([]core.NodeID, len(rf.Path))
		for j, node := range rf.Path {
			path[j] = core.NodeID(node)
		}
		flights[i] = core.ReferenceFlight{Offset: rf.Offset, Path: path}
	}
	return core.NewReferenceFlightSet(flights)
}
