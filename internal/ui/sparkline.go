package ui

import "strings"

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// sparkline renders the last width samples as a block-glyph graph.
// Heights are scaled to the min/max of the rendered window; a constant
// series renders at the lowest glyph.
func sparkline(samples []int64, width int) string {
	if width <= 0 || len(samples) == 0 {
		return ""
	}
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	lo, hi := samples[0], samples[0]
	for _, v := range samples {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	span := hi - lo
	for _, v := range samples {
		idx := 0
		if span > 0 {
			idx = int((v - lo) * int64(len(sparkGlyphs)-1) / span)
		}
		b.WriteRune(sparkGlyphs[idx])
	}
	return b.String()
}
