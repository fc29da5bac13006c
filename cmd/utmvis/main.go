// Command utmvis renders a generated instance file: grid, flight paths,
// and a departure-time playback (space to play, arrows to step).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/utm-bench/internal/instfile"
	"github.com/elektrokombinacija/utm-bench/internal/vis"
)

func main() {
	input := flag.String("input", "", "Instance JSON file to view")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: utmvis -input <instance.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *input, err)
		os.Exit(1)
	}
	inst, err := instfile.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding %s: %v\n", *input, err)
		os.Exit(1)
	}

	application, err := vis.NewApp(inst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing viewer: %v\n", err)
		os.Exit(1)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("UTM Instance Viewer - "+inst.Header.Name),
			app.Size(unit.Dp(1200), unit.Dp(900)),
		)

		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
