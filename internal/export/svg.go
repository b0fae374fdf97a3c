package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/gravsim/internal/storage"
)

var palette = []string{"#ffd166", "#06d6a0", "#118ab2", "#8ecae6", "#b5179e", "#90be6d", "#f8961e", "#577590"}

const breakupColor = "#ef233c"

// TracksToSVG draws every body's path on a shared, aspect-preserving
// scale. Bodies that were ever inside a Roche limit are drawn in red and
// marked at the samples where the flag was set.
func TracksToSVG(tracks []storage.Track, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, tr := range tracks {
		for _, p := range tr.Points {
			minX = math.Min(minX, p.Position.X)
			maxX = math.Max(maxX, p.Position.X)
			minY = math.Min(minY, p.Position.Y)
			maxY = math.Max(maxY, p.Position.Y)
		}
	}
	if math.IsInf(minX, 0) || math.IsInf(maxX, 0) || math.IsInf(minY, 0) || math.IsInf(maxY, 0) {
		return ""
	}

	// Add padding
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	span *= 1.2
	size := math.Min(float64(width), float64(height))

	project := func(x, y float64) (float64, float64) {
		px := float64(width)/2 + (x-cx)/span*size
		py := float64(height)/2 - (y-cy)/span*size
		return px, py
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, tr := range tracks {
		if len(tr.Points) == 0 {
			continue
		}

		color := palette[tr.Body%len(palette)]
		if tr.EverBrokeUp() {
			color = breakupColor
		}

		if len(tr.Points) > 1 {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.8" d="M`, color))
			for i, p := range tr.Points {
				x, y := project(p.Position.X, p.Position.Y)
				if i == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}

		for _, p := range tr.Points {
			if p.Breakup {
				x, y := project(p.Position.X, p.Position.Y)
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.5" fill="%s"/>
`, x, y, breakupColor))
			}
		}

		last := tr.Points[len(tr.Points)-1]
		x, y := project(last.Position.X, last.Position.Y)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
