// Package instfile defines the on-disk instance format shared by the
// generator CLI, the verifier, and the visualizer. The flight layout
// (top-level F and Sep_Nodes keys, node ids as decimal strings) is what
// the downstream trajectory solver consumes.
package instfile

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/elektrokombinacija/utm-bench/internal/core"
)

// Header records how an instance was generated.
type Header struct {
	Name             string  `json:"name"`
	Rows             int     `json:"rows"`
	Cols             int     `json:"cols"`
	EdgeLength       float64 `json:"edge_length"`
	Replications     int     `json:"replications"`
	ShiftGranularity float64 `json:"shift_granularity"`
	Generated        string  `json:"generated"`
}

// Params echoes the shared timing parameters into each flight record.
type Params struct {
	EdgeLength          float64 `json:"edge_length"`
	VMin                float64 `json:"v_min"`
	VMax                float64 `json:"v_max"`
	GroundDelayMax      float64 `json:"ground_delay_max"`
	FlightLevels        int     `json:"n_flight_levels"`
	ClimbTimePerLevel   float64 `json:"climb_time_per_level"`
	EarliestClimbLevels int     `json:"earliest_climb_levels"`
	LatestClimbLevels   int     `json:"latest_climb_levels"`
}

// NodeTime is one per-node arrival window.
type NodeTime struct {
	Node string  `json:"node"`
	TMin float64 `json:"t_min"`
	TMax float64 `json:"t_max"`
}

// FlightRecord is one flight intention as the solver reads it.
type FlightRecord struct {
	UID       string     `json:"uid"`
	Dep       string     `json:"dep"`
	Arr       string     `json:"arr"`
	DepTime   float64    `json:"dep_time"`
	Path      []string   `json:"path"`
	Params    Params     `json:"params"`
	NodeTimes []NodeTime `json:"node_times"`
}

// Instance is a complete instance file.
type Instance struct {
	Header   Header                  `json:"header"`
	F        map[string]FlightRecord `json:"F"`
	SepNodes map[string]float64      `json:"Sep_Nodes"`
}

// NodeString formats a grid node id the way the file stores it.
func NodeString(id core.NodeID) string {
	return strconv.Itoa(int(id))
}

// ParseNode parses a stored node id.
func ParseNode(s string) (core.NodeID, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad node id %q: %w", s, err)
	}
	return core.NodeID(v), nil
}

// New assembles an instance file from generated flights.
func New(name string, spec core.GridSpec, timing core.TimingParams, n int, granularity float64, flights []core.FlightIntention, sep map[core.NodeID]float64) *Instance {
	params := Params{
		EdgeLength:          timing.EdgeLength,
		VMin:                timing.VMin,
		VMax:                timing.VMax,
		GroundDelayMax:      timing.GroundDelayMax,
		FlightLevels:        timing.FlightLevels,
		ClimbTimePerLevel:   timing.LevelChangeTime,
		EarliestClimbLevels: timing.EarliestClimbLevels,
		LatestClimbLevels:   timing.LatestClimbLevels,
	}

	inst := &Instance{
		Header: Header{
			Name:             name,
			Rows:             spec.Rows,
			Cols:             spec.Cols,
			EdgeLength:       spec.EdgeLength,
			Replications:     n,
			ShiftGranularity: granularity,
			Generated:        time.Now().UTC().Format(time.RFC3339),
		},
		F:        make(map[string]FlightRecord, len(flights)),
		SepNodes: make(map[string]float64, len(sep)),
	}

	for _, f := range flights {
		rec := FlightRecord{
			UID:     f.UID.String(),
			Dep:     NodeString(f.Departure()),
			Arr:     NodeString(f.Arrival()),
			DepTime: f.DepartureTime,
			Path:    make([]string, len(f.Path)),
			Params:  params,
		}
		for j, node := range f.Path {
			rec.Path[j] = NodeString(node)
		}
		for _, w := range f.Windows {
			rec.NodeTimes = append(rec.NodeTimes, NodeTime{
				Node: NodeString(w.Node),
				TMin: w.TMin,
				TMax: w.TMax,
			})
		}
		inst.F[f.Name] = rec
	}

	for node, s := range sep {
		inst.SepNodes[NodeString(node)] = s
	}

	return inst
}

// Encode serializes the instance as indented JSON.
func (inst *Instance) Encode() ([]byte, error) {
	return json.MarshalIndent(inst, "", "  ")
}

// Decode parses an instance file.
func Decode(data []byte) (*Instance, error) {
	var inst Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("decode instance: %w", err)
	}
	return &inst, nil
}

// OrderedNames returns the flight names sorted by sequence number
// ("D1", "D2", ... "D10", ...), restoring the generator's output order.
func (inst *Instance) OrderedNames() []string {
	names := make([]string, 0, len(inst.F))
	for name := range inst.F {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool {
		return flightSeq(names[a]) < flightSeq(names[b])
	})
	return names
}

func flightSeq(name string) int {
	if len(name) < 2 || name[0] != 'D' {
		return -1
	}
	v, err := strconv.Atoi(name[1:])
	if err != nil {
		return -1
	}
	return v
}
