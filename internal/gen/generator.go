// Package gen implements the instance-construction algorithm: expanding
// the fixed five-flight reference set into 5n flight intentions with
// systematically shifted departure times.
package gen

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/utm-bench/internal/core"
)

// DefaultShiftGranularity is the reference time-shift granularity in seconds.
const DefaultShiftGranularity = 60.0

// ErrInvalidReplicationCount is returned when the requested replication
// count is below 1.
var ErrInvalidReplicationCount = errors.New("invalid replication count")

// intentionNamespace seeds the deterministic flight UIDs.
var intentionNamespace = uuid.MustParse("b9c7a3f2-4d6e-4a1b-9c3d-2e8f5a7b6c1d")

// Generate expands the reference set into n replicas of 5 flights each,
// ordered replication-major (replica k's flights occupy positions
// 5k..5k+4). The departure time of output flight 5k+i is
//
//	refs.Flight(i).Offset + k*granularity*(n-1)
//
// The replica shift scales with the total instance size n, not just the
// replica index: regenerating with a larger n re-times every replica, so
// instances of different sizes are not prefixes of one another.
//
// Generate is a pure function of its inputs; it never mutates the grid,
// the reference set, or the timing parameters.
func Generate(grid *core.Grid, refs *core.ReferenceFlightSet, timing core.TimingParams, n int, granularity float64) ([]core.FlightIntention, error) {
	if err := validateInputs(grid, refs, n, granularity); err != nil {
		return nil, err
	}

	out := make([]core.FlightIntention, 0, refs.Len()*n)
	for k := 0; k < n; k++ {
		for i := 0; i < refs.Len(); i++ {
			ref, err := refs.Flight(i)
			if err != nil {
				return nil, err
			}
			out = append(out, makeIntention(ref, timing, k, i, n, granularity))
		}
	}
	return out, nil
}

// GenerateParallel produces output identical to Generate, computing each
// replica's flights concurrently. The shift formula depends only on (k, n),
// so replicas are independent; output order is restored by indexed
// placement into a pre-sized slice.
func GenerateParallel(grid *core.Grid, refs *core.ReferenceFlightSet, timing core.TimingParams, n int, granularity float64) ([]core.FlightIntention, error) {
	if err := validateInputs(grid, refs, n, granularity); err != nil {
		return nil, err
	}

	out := make([]core.FlightIntention, refs.Len()*n)
	var wg sync.WaitGroup
	for k := 0; k < n; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			for i := 0; i < core.ReferenceFlightCount; i++ {
				ref, _ := refs.Flight(i) // validated above
				out[k*core.ReferenceFlightCount+i] = makeIntention(ref, timing, k, i, n, granularity)
			}
		}(k)
	}
	wg.Wait()
	return out, nil
}

// validateInputs fails fast before any flight is produced: no partial
// output on invalid input.
func validateInputs(grid *core.Grid, refs *core.ReferenceFlightSet, n int, granularity float64) error {
	if n < 1 {
		return fmt.Errorf("%w: replication count must be at least 1, got %d",
			ErrInvalidReplicationCount, n)
	}
	if granularity <= 0 {
		return fmt.Errorf("%w: shift granularity must be positive, got %g",
			core.ErrInvalidParameter, granularity)
	}
	for i := 0; i < refs.Len(); i++ {
		ref, err := refs.Flight(i)
		if err != nil {
			return err
		}
		if err := grid.ValidateWalk(ref.Path); err != nil {
			return fmt.Errorf("reference flight %d: %w", i, err)
		}
	}
	return nil
}

func makeIntention(ref core.ReferenceFlight, timing core.TimingParams, k, i, n int, granularity float64) core.FlightIntention {
	dep := ref.Offset + float64(k)*granularity*float64(n-1)
	seq := k*core.ReferenceFlightCount + i
	return core.FlightIntention{
		Name:          fmt.Sprintf("D%d", seq+1),
		UID:           intentionUID(k, i),
		Replica:       k,
		RefIndex:      i,
		DepartureTime: dep,
		Path:          ref.Path, // Flight() already returned a copy
		Windows:       nodeWindows(timing, dep, ref.Path),
	}
}

// intentionUID derives a stable UUID from the (replica, reference) pair so
// regenerating an instance yields identical ids.
func intentionUID(k, i int) uuid.UUID {
	return uuid.NewSHA1(intentionNamespace, []byte(fmt.Sprintf("replica=%d/ref=%d", k, i)))
}
