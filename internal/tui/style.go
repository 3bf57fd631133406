package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// maxHeat is the number of decay ticks a changed path stays highlighted.
const maxHeat = 8

var (
	textColor      = colorful.Color{R: 0.8, G: 0.8, B: 0.8}
	highlightColor = colorful.Color{R: 1.0, G: 0.6, B: 0.1}
)

// heatStyle returns the style for a path row. Freshly changed paths
// render in the highlight color and fade back toward the normal text
// color as heat decays.
func heatStyle(heat int) tcell.Style {
	style := tcell.StyleDefault
	if heat <= 0 {
		return style.Foreground(toTcell(textColor))
	}
	if heat > maxHeat {
		heat = maxHeat
	}
	blend := textColor.BlendLab(highlightColor, float64(heat)/float64(maxHeat))
	return style.Foreground(toTcell(blend)).Bold(heat == maxHeat)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
