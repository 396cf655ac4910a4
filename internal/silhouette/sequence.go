package silhouette

import (
	"image"
	"image/color"
	"image/gif"

	"github.com/sjbouwman/silhouette-tool/internal/colour"
	"github.com/sjbouwman/silhouette-tool/internal/histogram"
)

// RecolorGIF applies one recolouring rule to every frame of an animation and
// reassembles it with frame order, delays, loop count, disposal and
// transparency preserved verbatim. The pair is fixed for the whole animation
// so every frame recolours consistently. The input is not mutated.
func RecolorGIF(g *gif.GIF, pair histogram.Pair, target colour.Color, factor float64) *gif.GIF {
	out := &gif.GIF{
		Image:           make([]*image.Paletted, len(g.Image)),
		Delay:           append([]int(nil), g.Delay...),
		Disposal:        append([]byte(nil), g.Disposal...),
		LoopCount:       g.LoopCount,
		BackgroundIndex: g.BackgroundIndex,
		Config:          g.Config,
	}

	for i, frame := range g.Image {
		out.Image[i] = RecolorFrame(frame, pair, target, factor)
	}

	// A global colour table gets the same substitution as frame palettes.
	if p, ok := g.Config.ColorModel.(color.Palette); ok {
		out.Config.ColorModel = recolorPalette(p, pair, target, factor)
	}

	return out
}
