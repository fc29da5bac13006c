// Package draw provides rendering functions for the instance visualizer.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/utm-bench/internal/core"
	"github.com/elektrokombinacija/utm-bench/internal/vis/interact"
)

// Colors for the grid graph.
var (
	ColorNodeDefault   = color.NRGBA{R: 100, G: 120, B: 140, A: 255}
	ColorNodeDeparture = color.NRGBA{R: 80, G: 180, B: 100, A: 255}
	ColorNodeArrival   = color.NRGBA{R: 220, G: 120, B: 100, A: 255}
	ColorArcDefault    = color.NRGBA{R: 80, G: 90, B: 100, A: 180}
)

// flightPalette colors the five reference flights; replicas of the same
// reference flight share a color.
var flightPalette = []color.NRGBA{
	{R: 100, G: 200, B: 255, A: 255}, // cyan
	{R: 255, G: 150, B: 100, A: 255}, // orange
	{R: 200, G: 100, B: 255, A: 255}, // purple
	{R: 120, G: 220, B: 120, A: 255}, // green
	{R: 255, G: 210, B: 90, A: 255},  // yellow
}

// FlightColor returns the color for a reference flight index.
func FlightColor(refIndex int) color.NRGBA {
	return flightPalette[((refIndex%len(flightPalette))+len(flightPalette))%len(flightPalette)]
}

// DrawGraph renders the grid graph: arcs first, nodes on top.
func DrawGraph(gtx layout.Context, grid *core.Grid, camera *interact.Camera) {
	for id := core.NodeID(0); int(id) < grid.NumNodes(); id++ {
		p1 := grid.NodePos(id)
		for _, a := range grid.Neighbors(id) {
			// Arcs are symmetric; draw each pair once.
			if a.To < id {
				continue
			}
			p2 := grid.NodePos(a.To)
			DrawLineWorld(gtx, p1, p2, camera, ColorArcDefault, 2)
		}
	}

	for id := core.NodeID(0); int(id) < grid.NumNodes(); id++ {
		DrawNode(gtx, grid.NodePos(id), camera, ColorNodeDefault, 5)
	}
}

// DrawNode draws a grid node as a filled circle.
func DrawNode(gtx layout.Context, pos core.Pos, camera *interact.Camera, col color.NRGBA, radius float32) {
	x, y := camera.WorldToScreen(pos.X, pos.Y)
	drawFilledCircle(gtx, x, y, radius*camera.Zoom, col)
}

// DrawFlightPath draws a flight's horizontal path with direction arrows.
func DrawFlightPath(gtx layout.Context, grid *core.Grid, path []core.NodeID, camera *interact.Camera, col color.NRGBA) {
	if len(path) < 2 {
		return
	}

	for j := 0; j < len(path)-1; j++ {
		p1 := grid.NodePos(path[j])
		p2 := grid.NodePos(path[j+1])
		DrawLineWorld(gtx, p1, p2, camera, col, 2)
	}

	// Mark departure and arrival.
	DrawNode(gtx, grid.NodePos(path[0]), camera, ColorNodeDeparture, 6)
	DrawNode(gtx, grid.NodePos(path[len(path)-1]), camera, ColorNodeArrival, 6)

	// Direction arrow at the middle segment.
	mid := (len(path) - 1) / 2
	p1 := grid.NodePos(path[mid])
	p2 := grid.NodePos(path[mid+1])
	drawArrow(gtx, (p1.X+p2.X)/2, (p1.Y+p2.Y)/2, p2.X-p1.X, p2.Y-p1.Y, camera, col)
}

// DrawLineWorld draws a line between two world positions.
func DrawLineWorld(gtx layout.Context, p1, p2 core.Pos, camera *interact.Camera, col color.NRGBA, width float32) {
	x1, y1 := camera.WorldToScreen(p1.X, p1.Y)
	x2, y2 := camera.WorldToScreen(p2.X, p2.Y)
	drawLine(gtx, x1, y1, x2, y2, width*camera.Zoom, col)
}

// DrawDrone draws an airborne flight as a quadcopter glyph.
func DrawDrone(gtx layout.Context, pos core.Pos, camera *interact.Camera, col color.NRGBA) {
	cx, cy := camera.WorldToScreen(pos.X, pos.Y)
	size := float32(12) * camera.Zoom
	armLen := size * 0.7
	rotorR := size * 0.3

	// Arms in an X shape with a rotor at each tip.
	for _, angle := range []float64{45, 135, 225, 315} {
		rad := angle * math.Pi / 180
		dx := float32(math.Cos(rad)) * armLen
		dy := float32(math.Sin(rad)) * armLen
		drawLine(gtx, cx, cy, cx+dx, cy+dy, 2, col)
		drawFilledCircle(gtx, cx+dx, cy+dy, rotorR, col)
	}
	drawFilledCircle(gtx, cx, cy, size*0.25, col)
}

// DrawGroundMarker draws a flight that has not departed yet as a hollow
// circle at its departure node.
func DrawGroundMarker(gtx layout.Context, pos core.Pos, camera *interact.Camera, col color.NRGBA) {
	cx, cy := camera.WorldToScreen(pos.X, pos.Y)
	drawCircleOutline(gtx, cx, cy, 9*camera.Zoom, col, 2*camera.Zoom)
}

// DrawBackdrop draws faint background grid lines at the given spacing.
func DrawBackdrop(gtx layout.Context, camera *interact.Camera, spacing float64, col color.NRGBA) {
	bounds := gtx.Constraints.Max

	minWorldX, minWorldY := camera.ScreenToWorld(0, 0)
	maxWorldX, maxWorldY := camera.ScreenToWorld(float32(bounds.X), float32(bounds.Y))

	startX := math.Floor(minWorldX/spacing) * spacing
	startY := math.Floor(minWorldY/spacing) * spacing

	for x := startX; x <= maxWorldX; x += spacing {
		sx, _ := camera.WorldToScreen(x, minWorldY)
		if sx >= 0 && sx <= float32(bounds.X) {
			rect := image.Rect(int(sx), 0, int(sx)+1, bounds.Y)
			paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
		}
	}
	for y := startY; y <= maxWorldY; y += spacing {
		_, sy := camera.WorldToScreen(minWorldX, y)
		if sy >= 0 && sy <= float32(bounds.Y) {
			rect := image.Rect(0, int(sy), bounds.X, int(sy)+1)
			paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
		}
	}
}

func drawLine(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 16
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawCircleOutline(gtx layout.Context, cx, cy, radius float32, col color.NRGBA, strokeWidth float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 24
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	innerR := radius - strokeWidth
	if innerR < 0 {
		innerR = 0
	}
	path.Move(f32.Pt(cx+innerR-path.Pos().X, cy-path.Pos().Y))
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + innerR*float32(math.Cos(angle))
		y := cy + innerR*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawArrow(gtx layout.Context, x, y, dirX, dirY float64, camera *interact.Camera, col color.NRGBA) {
	length := math.Sqrt(dirX*dirX + dirY*dirY)
	if length < 1e-9 {
		return
	}
	dirX /= length
	dirY /= length

	screenX, screenY := camera.WorldToScreen(x, y)
	size := float32(7) * camera.Zoom

	tipX := screenX + float32(dirX)*size
	tipY := screenY + float32(dirY)*size
	perpX := -float32(dirY) * size * 0.5
	perpY := float32(dirX) * size * 0.5
	baseX := screenX - float32(dirX)*size*0.3
	baseY := screenY - float32(dirY)*size*0.3

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(tipX, tipY))
	path.LineTo(f32.Pt(baseX+perpX, baseY+perpY))
	path.LineTo(f32.Pt(baseX-perpX, baseY-perpY))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
