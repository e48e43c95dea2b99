package export

import (
	"fmt"
	"strings"

	"github.com/okrylov/cardiosim/internal/cell"
)

// TraceSVG renders one state component of a trajectory as a standalone
// SVG polyline on a dark background. Returns "" when the trajectory has
// fewer than two samples.
func TraceSVG(traj *cell.Trajectory, component, width, height int, strokeColor string) string {
	if traj == nil || traj.Len() < 2 {
		return ""
	}
	ys := traj.Component(component)
	if len(ys) < 2 {
		return ""
	}
	xs := traj.Times

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range ys {
		if xs[i] < minX {
			minX = xs[i]
		}
		if xs[i] > maxX {
			maxX = xs[i]
		}
		if ys[i] < minY {
			minY = ys[i]
		}
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range ys {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
