package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/sim"
)

const (
	background = "#000000"
	starFill   = "#a0a0a0"
	holeFill   = "#ff14ff"
)

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

func project(p dynamo.Vec2, bounds dynamo.Bounds, width, height int) (float64, float64) {
	return (p.X - bounds.Origin.X) / bounds.Size.X * float64(width),
		(p.Y - bounds.Origin.Y) / bounds.Size.Y * float64(height)
}

// WorldToSVG draws every star as a dot and every hole as a filled circle
// scaled to the image.
func WorldToSVG(w *dynamo.World, width, height int) string {
	var sb strings.Builder
	header(&sb, width, height)

	fmt.Fprintf(&sb, "<g fill=%q fill-opacity=\"0.6\">\n", starFill)
	for i := range w.Stars {
		x, y := project(w.Stars[i].Pos, w.Bounds, width, height)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"0.5\"/>\n", x, y)
	}
	sb.WriteString("</g>\n")

	scale := float64(width) / w.Bounds.Size.X
	fmt.Fprintf(&sb, "<g fill=%q>\n", holeFill)
	for i := range w.Holes {
		x, y := project(w.Holes[i].Pos, w.Bounds, width, height)
		r := max(w.Holes[i].Radius*scale, 2)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", x, y, r)
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrackRecorder is a sim.Observer that records every hole position after
// each stepped frame.
type TrackRecorder struct {
	Tracks [][]dynamo.Vec2
}

func (r *TrackRecorder) OnFrame(w *dynamo.World, stats sim.FrameStats) {
	if !stats.Stepped {
		return
	}
	for len(r.Tracks) < len(w.Holes) {
		r.Tracks = append(r.Tracks, nil)
	}
	for i := range w.Holes {
		r.Tracks[i] = append(r.Tracks[i], w.Holes[i].Pos)
	}
}

// TracksToSVG draws each track as a polyline. A jump of more than half the
// domain between samples is a wrap, so the path is lifted there instead of
// drawn across the image.
func TracksToSVG(tracks [][]dynamo.Vec2, bounds dynamo.Bounds, width, height int) string {
	var sb strings.Builder
	header(&sb, width, height)

	for _, track := range tracks {
		if len(track) < 2 {
			continue
		}
		fmt.Fprintf(&sb, "<path fill=\"none\" stroke=%q stroke-width=\"1.5\" d=\"", holeFill)
		for i, p := range track {
			x, y := project(p, bounds, width, height)
			cmd := "L"
			if i == 0 || wrapped(track[i-1], p, bounds) {
				cmd = "M"
			}
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, x, y)
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func wrapped(a, b dynamo.Vec2, bounds dynamo.Bounds) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx > bounds.Size.X/2 || -dx > bounds.Size.X/2 ||
		dy > bounds.Size.Y/2 || -dy > bounds.Size.Y/2
}
