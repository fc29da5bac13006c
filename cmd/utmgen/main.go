// Command utmgen generates UTM benchmark instance files: flight-intention
// sets over a directed grid, produced by replicating the five-flight
// reference catalogue with systematically shifted departure times.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/elektrokombinacija/utm-bench/internal/core"
	"github.com/elektrokombinacija/utm-bench/internal/gen"
	"github.com/elektrokombinacija/utm-bench/internal/instfile"
)

// Replication counts for the scaling suite.
var scalingCounts = []int{1, 2, 5, 10, 20, 50}

func main() {
	cfgPath := flag.String("config", "", "YAML scenario file (flags override it)")
	name := flag.String("name", "", "Instance name (default utm_<rows>x<cols>_n<n>)")
	rows := flag.Int("rows", 9, "Grid rows")
	cols := flag.Int("cols", 8, "Grid columns")
	edgeLen := flag.Float64("edge", 60, "Uniform edge length (m)")
	n := flag.Int("n", 1, "Replication count (output has 5n flights)")
	granularity := flag.Float64("granularity", gen.DefaultShiftGranularity, "Time-shift granularity (s)")
	vMin := flag.Float64("vmin", 2, "Min cruise speed (m/s)")
	vMax := flag.Float64("vmax", 10, "Max cruise speed (m/s)")
	delay := flag.Float64("delay", 120, "Max ground delay (s)")
	levels := flag.Int("levels", 2, "Number of flight levels")
	levelTime := flag.Float64("level-time", 30, "Level change time (s)")
	minSep := flag.Float64("min-sep", gen.DefaultMinSeparation, "Per-node separation (s)")
	outputDir := flag.String("output", "testdata", "Output directory")
	scaling := flag.Bool("scaling", false, "Generate the scaling suite (n = 1, 2, 5, 10, 20, 50)")

	flag.Parse()

	sc := instfile.DefaultScenario()
	if *cfgPath != "" {
		loaded, err := instfile.LoadScenario(*cfgPath)
		if err != nil {
			fatalf("Error loading scenario: %v", err)
		}
		sc = loaded
	}

	// Explicitly set flags win over the scenario file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			sc.Name = *name
		case "rows":
			sc.Grid.Rows = *rows
		case "cols":
			sc.Grid.Cols = *cols
		case "edge":
			sc.Grid.EdgeLength = *edgeLen
		case "n":
			sc.Replications = *n
		case "granularity":
			sc.ShiftGranularity = *granularity
		case "vmin":
			sc.Timing.VMin = *vMin
		case "vmax":
			sc.Timing.VMax = *vMax
		case "delay":
			sc.Timing.GroundDelayMax = *delay
		case "levels":
			sc.Timing.FlightLevels = *levels
		case "level-time":
			sc.Timing.LevelChangeTime = *levelTime
		case "min-sep":
			sc.MinSeparation = *minSep
		}
	})

	spec := sc.GridSpec()
	grid, err := core.NewGrid(spec)
	if err != nil {
		fatalf("Error building grid: %v", err)
	}
	timing, err := sc.TimingParams()
	if err != nil {
		fatalf("Error in timing parameters: %v", err)
	}
	refs, err := sc.ReferenceSet()
	if err != nil {
		fatalf("Error in reference flights: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fatalf("Error creating output directory: %v", err)
	}

	counts := []int{sc.Replications}
	if *scaling {
		counts = scalingCounts
	}

	for _, count := range counts {
		flights, err := gen.Generate(grid, refs, timing, count, sc.ShiftGranularity)
		if err != nil {
			fatalf("Error generating instance (n=%d): %v", count, err)
		}
		sep := gen.SeparationNodes(refs, sc.MinSeparation)

		instName := sc.Name
		if instName == "" || *scaling {
			instName = fmt.Sprintf("utm_%dx%d_n%d", spec.Rows, spec.Cols, count)
		}

		inst := instfile.New(instName, spec, timing, count, sc.ShiftGranularity, flights, sep)
		data, err := inst.Encode()
		if err != nil {
			fatalf("Error encoding instance %s: %v", instName, err)
		}

		filename := filepath.Join(*outputDir, instName+".json")
		if err := os.WriteFile(filename, data, 0644); err != nil {
			fatalf("Error writing %s: %v", filename, err)
		}

		fmt.Printf("Generated: %s (%d flights, %dx%d grid, shift %s s per replica)\n",
			filename, len(flights), spec.Rows, spec.Cols,
			strconv.FormatFloat(sc.ShiftGranularity*float64(count-1), 'g', -1, 64))
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
