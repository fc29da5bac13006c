package core

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// ReferenceFlightCount is the size of the fixed reference catalogue.
const ReferenceFlightCount = 5

// ReferenceFlight is one canonical flight: a departure offset in seconds
// relative to flight 0 (which defines the zero point) and a horizontal
// walk over the grid.
type ReferenceFlight struct {
	Offset float64
	Path   []NodeID
}

// Departure returns the first path node.
func (f ReferenceFlight) Departure() NodeID { return f.Path[0] }

// Arrival returns the last path node.
func (f ReferenceFlight) Arrival() NodeID { return f.Path[len(f.Path)-1] }

// ReferenceFlightSet holds the five canonical reference flights as an
// ordered, read-only sequence.
type ReferenceFlightSet struct {
	flights [ReferenceFlightCount]ReferenceFlight
}

// NewReferenceFlightSet builds a set from exactly five flights. Flight 0
// anchors the timeline and must have offset 0; no offset may be negative.
func NewReferenceFlightSet(flights []ReferenceFlight) (*ReferenceFlightSet, error) {
	if len(flights) != ReferenceFlightCount {
		return nil, fmt.Errorf("%w: need exactly %d reference flights, got %d",
			ErrInvalidReferenceSet, ReferenceFlightCount, len(flights))
	}
	for i, f := range flights {
		if f.Offset < 0 {
			return nil, fmt.Errorf("%w: flight %d has negative offset %g",
				ErrInvalidReferenceSet, i, f.Offset)
		}
	}
	if flights[0].Offset != 0 {
		return nil, fmt.Errorf("%w: flight 0 defines the zero point and must have offset 0, got %g",
			ErrInvalidReferenceSet, flights[0].Offset)
	}

	s := &ReferenceFlightSet{}
	for i, f := range flights {
		s.flights[i] = ReferenceFlight{
			Offset: f.Offset,
			Path:   slices.Clone(f.Path),
		}
	}
	return s, nil
}

// Len returns the number of flights in the set.
func (s *ReferenceFlightSet) Len() int { return ReferenceFlightCount }

// Flight returns the i-th reference flight. The returned path is a copy,
// so callers cannot mutate the catalogue.
func (s *ReferenceFlightSet) Flight(i int) (ReferenceFlight, error) {
	if i < 0 || i >= ReferenceFlightCount {
		return ReferenceFlight{}, fmt.Errorf("%w: reference flight index %d outside [0,%d]",
			ErrIndexOutOfRange, i, ReferenceFlightCount-1)
	}
	f := s.flights[i]
	return ReferenceFlight{Offset: f.Offset, Path: slices.Clone(f.Path)}, nil
}

// DefaultReferenceFlights returns the canonical D1-D5 catalogue, defined
// on the 9x8 reference grid.
func DefaultReferenceFlights() *ReferenceFlightSet {
	return &ReferenceFlightSet{
		flights: [ReferenceFlightCount]ReferenceFlight{
			{Offset: 0, Path: []NodeID{6, 14, 22, 21, 20, 28, 36, 35, 34, 42, 50, 49, 48, 56, 64}},
			{Offset: 36, Path: []NodeID{15, 14, 13, 12, 11, 10, 9, 8}},
			{Offset: 7, Path: []NodeID{5, 13, 21, 29, 37, 45, 53, 61, 69}},
			{Offset: 0, Path: []NodeID{23, 22, 30, 38, 37, 36, 44, 52, 51, 50, 58, 66}},
			{Offset: 63, Path: []NodeID{4, 12, 20, 19, 18, 26, 34, 33, 32, 40, 48}},
		},
	}
}

// DefaultGridSpec returns the 9x8 grid the default catalogue is defined on.
func DefaultGridSpec() GridSpec {
	return GridSpec{Rows: 9, Cols: 8, EdgeLength: 60.0}
}

// NodeWindow is the earliest/latest arrival window at one path node.
type NodeWindow struct {
	Node NodeID
	TMin float64
	TMax float64
}

// FlightIntention is one concrete flight of a generated instance.
// Produced in bulk by the generator, immutable thereafter.
type FlightIntention struct {
	Name          string    // "D1".."D5n", replication-major
	UID           uuid.UUID // deterministic, derived from (replica, ref index)
	Replica       int       // replication index k, 0-based
	RefIndex      int       // source reference flight index, 0..4
	DepartureTime float64   // seconds; reference offset plus replica shift
	Path          []NodeID  // copy of the source reference path
	Windows       []NodeWindow
}

// Departure returns the departure node.
func (f *FlightIntention) Departure() NodeID { return f.Path[0] }

// Arrival returns the arrival node.
func (f *FlightIntention) Arrival() NodeID { return f.Path[len(f.Path)-1] }
