// Package vis implements a Gio-based viewer for generated instances:
// the grid, the flight paths, and a departure-time playback.
package vis

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/utm-bench/internal/core"
	"github.com/elektrokombinacija/utm-bench/internal/instfile"
	"github.com/elektrokombinacija/utm-bench/internal/vis/draw"
	"github.com/elektrokombinacija/utm-bench/internal/vis/interact"
)

// flightView is one flight prepared for rendering: its path and the
// timing of its earliest trajectory (on-time departure, minimal climb,
// cruise at vmax).
type flightView struct {
	name      string
	refIndex  int
	depTime   float64
	climbTime float64
	edgeTime  float64
	path      []core.NodeID
}

func (f *flightView) airborneAt() float64 { return f.depTime + f.climbTime }

func (f *flightView) arrivalAt() float64 {
	return f.airborneAt() + float64(len(f.path)-1)*f.edgeTime
}

// App is the instance viewer application.
type App struct {
	grid     *core.Grid
	flights  []flightView
	camera   *interact.Camera
	playback *Playback
	fitted   bool
}

// NewApp prepares a viewer for a decoded instance file.
func NewApp(inst *instfile.Instance) (*App, error) {
	grid, err := core.NewGrid(core.GridSpec{
		Rows:       inst.Header.Rows,
		Cols:       inst.Header.Cols,
		EdgeLength: inst.Header.EdgeLength,
	})
	if err != nil {
		return nil, err
	}

	names := inst.OrderedNames()
	flights := make([]flightView, 0, len(names))
	maxTime := 0.0

	for seq, name := range names {
		rec := inst.F[name]
		path := make([]core.NodeID, len(rec.Path))
		for j, s := range rec.Path {
			node, err := instfile.ParseNode(s)
			if err != nil {
				return nil, fmt.Errorf("flight %s: %w", name, err)
			}
			path[j] = node
		}
		if err := grid.ValidateWalk(path); err != nil {
			return nil, fmt.Errorf("flight %s: %w", name, err)
		}

		fv := flightView{
			name:      name,
			refIndex:  seq % core.ReferenceFlightCount,
			depTime:   rec.DepTime,
			climbTime: float64(rec.Params.EarliestClimbLevels) * rec.Params.ClimbTimePerLevel,
			edgeTime:  rec.Params.EdgeLength / rec.Params.VMax,
			path:      path,
		}
		if arr := fv.arrivalAt(); arr > maxTime {
			maxTime = arr
		}
		flights = append(flights, fv)
	}

	return &App{
		grid:     grid,
		flights:  flights,
		camera:   interact.NewCamera(),
		playback: NewPlayback(maxTime),
	}, nil
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.playback.Playing {
				a.playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.playback.TogglePlay()
	case key.NameLeftArrow:
		a.playback.StepBack()
	case key.NameRightArrow:
		a.playback.StepForward()
	case key.NameHome:
		a.playback.Reset()
	case "R":
		a.camera.Reset()
		a.fitted = false
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	bounds := gtx.Constraints.Max
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	a.handlePointerEvents(gtx)

	if !a.fitted {
		spec := a.grid.Spec()
		a.camera.FitBounds(0, 0,
			float64(spec.Cols-1)*spec.EdgeLength, float64(spec.Rows-1)*spec.EdgeLength,
			float32(bounds.X), float32(bounds.Y), 60)
		a.fitted = true
	}

	draw.DrawBackdrop(gtx, a.camera, a.grid.EdgeLength(), color.NRGBA{R: 40, G: 45, B: 50, A: 255})
	draw.DrawGraph(gtx, a.grid, a.camera)

	// Paths first, dimmed, so airborne drones draw on top.
	for i := range a.flights {
		f := &a.flights[i]
		col := draw.FlightColor(f.refIndex)
		col.A = 70
		draw.DrawFlightPath(gtx, a.grid, f.path, a.camera, col)
	}

	t := a.playback.CurrentTime
	for i := range a.flights {
		f := &a.flights[i]
		col := draw.FlightColor(f.refIndex)

		switch {
		case t < f.depTime || t > f.arrivalAt():
			// Not yet scheduled or already landed.
		case t < f.airborneAt():
			// Departed, still climbing to its flight level.
			draw.DrawGroundMarker(gtx, a.grid.NodePos(f.path[0]), a.camera, col)
		default:
			draw.DrawDrone(gtx, a.positionAt(f, t), a.camera, col)
		}
	}

	return layout.Dimensions{Size: bounds}
}

// positionAt interpolates a flight's position along its path at instance
// time t, assuming cruise at vmax.
func (a *App) positionAt(f *flightView, t float64) core.Pos {
	progress := (t - f.airborneAt()) / f.edgeTime
	seg := int(progress)
	if seg >= len(f.path)-1 {
		return a.grid.NodePos(f.path[len(f.path)-1])
	}
	frac := progress - float64(seg)

	p1 := a.grid.NodePos(f.path[seg])
	p2 := a.grid.NodePos(f.path[seg+1])
	return core.Pos{
		X: p1.X + (p2.X-p1.X)*frac,
		Y: p1.Y + (p2.Y-p1.Y)*frac,
	}
}

func (a *App) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, a)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: a,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			a.camera.HandleEvent(gtx, pe)
		}
	}
}
