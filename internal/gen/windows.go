package gen

import "github.com/elektrokombinacija/utm-bench/internal/core"

// nodeWindows computes the earliest/latest arrival window at every node of
// a path. The earliest trajectory departs on time, climbs the minimal
// number of levels and cruises at vmax; the latest exhausts the ground
// delay, climbs the maximal number of levels and cruises at vmin.
func nodeWindows(p core.TimingParams, depTime float64, path []core.NodeID) []core.NodeWindow {
	t0Min := depTime + float64(p.EarliestClimbLevels)*p.LevelChangeTime
	t0Max := depTime + p.GroundDelayMax + float64(p.LatestClimbLevels)*p.LevelChangeTime
	fast := p.EdgeTime(p.VMax)
	slow := p.EdgeTime(p.VMin)

	windows := make([]core.NodeWindow, len(path))
	for j, node := range path {
		windows[j] = core.NodeWindow{
			Node: node,
			TMin: t0Min + float64(j)*fast,
			TMax: t0Max + float64(j)*slow,
		}
	}
	return windows
}
