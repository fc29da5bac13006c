// Package main re-checks generated instance files against the replication
// contract: flight counts, per-replica path equality, the departure-shift
// formula, window monotonicity and separation coverage. Writes a CSV
// report and prints a summary table.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/elektrokombinacija/utm-bench/internal/core"
	"github.com/elektrokombinacija/utm-bench/internal/instfile"
)

// VerifyResult stores the outcome for a single instance file.
type VerifyResult struct {
	File      string
	Instance  string
	Flights   int
	Replicas  int
	ChecksRun int
	Failures  []string
}

// OK reports whether every check passed.
func (r *VerifyResult) OK() bool { return len(r.Failures) == 0 }

func timeEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// verifyInstance runs all contract checks against one decoded file.
func verifyInstance(file string, inst *instfile.Instance) *VerifyResult {
	r := &VerifyResult{
		File:     file,
		Instance: inst.Header.Name,
		Flights:  len(inst.F),
		Replicas: inst.Header.Replications,
	}
	fail := func(format string, args ...any) {
		r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
	}
	check := func() { r.ChecksRun++ }

	n := inst.Header.Replications
	gran := inst.Header.ShiftGranularity

	check()
	if n < 1 {
		fail("header replications = %d, must be >= 1", n)
		return r
	}

	check()
	if len(inst.F) != core.ReferenceFlightCount*n {
		fail("instance holds %d flights, want %d", len(inst.F), core.ReferenceFlightCount*n)
		return r
	}

	names := inst.OrderedNames()
	check()
	for seq, name := range names {
		if want := fmt.Sprintf("D%d", seq+1); name != want {
			fail("flight name %q at position %d, want %q", name, seq, want)
			return r
		}
	}

	grid, err := core.NewGrid(core.GridSpec{
		Rows:       inst.Header.Rows,
		Cols:       inst.Header.Cols,
		EdgeLength: inst.Header.EdgeLength,
	})
	check()
	if err != nil {
		fail("header grid invalid: %v", err)
		return r
	}

	// Replica 0 defines the reference paths and offsets.
	for k := 0; k < n; k++ {
		for i := 0; i < core.ReferenceFlightCount; i++ {
			pos := k*core.ReferenceFlightCount + i
			rec := inst.F[names[pos]]
			base := inst.F[names[i]]

			check()
			if !slices.Equal(rec.Path, base.Path) {
				fail("%s path differs from its source %s", names[pos], names[i])
			}

			// Departure shift: k * granularity * (n-1).
			check()
			wantDep := base.DepTime + float64(k)*gran*float64(n-1)
			if !timeEqual(rec.DepTime, wantDep) {
				fail("%s dep_time = %g, want %g", names[pos], rec.DepTime, wantDep)
			}

			check()
			if err := verifyFlight(grid, inst, rec); err != nil {
				fail("%s: %v", names[pos], err)
			}
		}
	}

	return r
}

// verifyFlight checks one flight record: walk validity, window shape and
// separation coverage.
func verifyFlight(grid *core.Grid, inst *instfile.Instance, rec instfile.FlightRecord) error {
	path := make([]core.NodeID, len(rec.Path))
	for j, s := range rec.Path {
		node, err := instfile.ParseNode(s)
		if err != nil {
			return err
		}
		path[j] = node
	}

	if err := grid.ValidateWalk(path); err != nil {
		return err
	}
	if rec.Dep != rec.Path[0] || rec.Arr != rec.Path[len(rec.Path)-1] {
		return fmt.Errorf("dep/arr (%s, %s) disagree with path endpoints", rec.Dep, rec.Arr)
	}

	if len(rec.NodeTimes) != len(rec.Path) {
		return fmt.Errorf("%d node times for %d path nodes", len(rec.NodeTimes), len(rec.Path))
	}
	for j, nt := range rec.NodeTimes {
		if nt.Node != rec.Path[j] {
			return fmt.Errorf("node_times[%d] is for node %s, path has %s", j, nt.Node, rec.Path[j])
		}
		if nt.TMax < nt.TMin {
			return fmt.Errorf("node_times[%d] window inverted: [%g, %g]", j, nt.TMin, nt.TMax)
		}
		if j > 0 && (nt.TMin < rec.NodeTimes[j-1].TMin || nt.TMax < rec.NodeTimes[j-1].TMax) {
			return fmt.Errorf("node_times[%d] not monotone along path", j)
		}
	}

	for _, s := range rec.Path {
		if _, ok := inst.SepNodes[s]; !ok {
			return fmt.Errorf("node %s missing from Sep_Nodes", s)
		}
	}

	return nil
}

func writeCSV(results []*VerifyResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"file", "instance", "flights", "replications", "checks_run", "failures", "status"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		status := "ok"
		if !r.OK() {
			status = "failed"
		}
		row := []string{
			r.File, r.Instance,
			fmt.Sprintf("%d", r.Flights), fmt.Sprintf("%d", r.Replicas),
			fmt.Sprintf("%d", r.ChecksRun), fmt.Sprintf("%d", len(r.Failures)),
			status,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func printSummary(results []*VerifyResult) {
	passed, flights := 0, 0
	for _, r := range results {
		if r.OK() {
			passed++
		}
		flights += r.Flights
	}

	fmt.Println("\n=== VERIFICATION SUMMARY ===")
	fmt.Printf("%-30s %8s %8s %10s %8s\n", "Instance", "Flights", "Checks", "Failures", "Status")
	fmt.Println(strings.Repeat("-", 70))
	for _, r := range results {
		status := "ok"
		if !r.OK() {
			status = "FAILED"
		}
		fmt.Printf("%-30s %8d %8d %10d %8s\n",
			r.Instance, r.Flights, r.ChecksRun, len(r.Failures), status)
	}
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("%d/%d instances passed, %d flights checked\n", passed, len(results), flights)
}

func main() {
	inputDir := flag.String("input", "testdata", "Directory containing instance JSON files")
	outputFile := flag.String("output", "evidence/verify_results.csv", "Output CSV file")
	verbose := flag.Bool("verbose", false, "Print every failure")

	flag.Parse()

	pattern := filepath.Join(*inputDir, "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding instance files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No instance files found in %s\n", *inputDir)
		fmt.Fprintf(os.Stderr, "Run utmgen first: go run ./cmd/utmgen -scaling -output %s\n", *inputDir)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*outputFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	var results []*VerifyResult
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", file, err)
			continue
		}
		inst, err := instfile.Decode(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding %s: %v\n", file, err)
			continue
		}

		r := verifyInstance(filepath.Base(file), inst)
		results = append(results, r)

		if *verbose {
			for _, f := range r.Failures {
				fmt.Printf("%s: %s\n", r.Instance, f)
			}
		}
	}

	if err := writeCSV(results, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", *outputFile)

	printSummary(results)

	for _, r := range results {
		if !r.OK() {
			os.Exit(1)
		}
	}
}
