// Package silhouette recolours two-tone silhouette animations: the light
// source colour becomes the target colour, the dark source colour becomes
// the target darkened by a factor, everything else passes through.
package silhouette

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/soniakeys/quant/median"

	"github.com/sjbouwman/silhouette-tool/internal/colour"
	"github.com/sjbouwman/silhouette-tool/internal/histogram"
)

// RecolorFrame recolours one paletted frame by substituting palette entries.
// Pixel indices are copied verbatim, so transparency and frame structure
// survive untouched. The source frame is not mutated. Palette entries that
// match neither source colour pass through unchanged; a frame without any
// match comes back visually identical, which is a normal outcome.
func RecolorFrame(src *image.Paletted, pair histogram.Pair, target colour.Color, factor float64) *image.Paletted {
	return &image.Paletted{
		Pix:     append([]uint8(nil), src.Pix...),
		Stride:  src.Stride,
		Rect:    src.Rect,
		Palette: recolorPalette(src.Palette, pair, target, factor),
	}
}

// recolorPalette substitutes the light and dark source colours in a palette.
// The dark replacement keeps the original entry's alpha.
func recolorPalette(p color.Palette, pair histogram.Pair, target colour.Color, factor float64) color.Palette {
	dark := colour.Darken(target, factor)

	out := make(color.Palette, len(p))
	for i, pc := range p {
		c := colour.FromColor(pc)
		switch c {
		case pair.Light:
			out[i] = target.NRGBA()
		case pair.Dark:
			d := dark
			d.A = c.A
			out[i] = d.NRGBA()
		default:
			out[i] = pc
		}
	}

	return out
}

// RecolorImage recolours an arbitrary frame pixel by pixel, for callers
// whose frames are not palette-based. Matching rules are identical to
// RecolorFrame: exact equality against the source pair, dark pixels keep
// their original alpha, unmatched pixels pass through unchanged.
func RecolorImage(src image.Image, pair histogram.Pair, target colour.Color, factor float64) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	dark := colour.Darken(target, factor)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := colour.FromColor(src.At(x, y))
			switch c {
			case pair.Light:
				c = target
			case pair.Dark:
				a := c.A
				c = dark
				c.A = a
			}
			dst.SetNRGBA(x, y, c.NRGBA())
		}
	}

	return dst
}

// ToPaletted converts a frame to paletted form for GIF reassembly. When the
// frame has at most limit distinct colours the palette is exact and lossless;
// otherwise colours are reduced by median cut quantization with dithering.
func ToPaletted(img image.Image, limit int) *image.Paletted {
	if p, ok := img.(*image.Paletted); ok {
		return p
	}
	if limit <= 0 || limit > 256 {
		limit = 256
	}

	b := img.Bounds()
	if pal, ok := exactPalette(img, limit); ok {
		pm := image.NewPaletted(b, pal)
		draw.Draw(pm, b, img, b.Min, draw.Src)
		return pm
	}

	pal := median.Quantizer(limit).Quantize(make(color.Palette, 0, limit), img)
	pm := image.NewPaletted(b, pal)
	draw.FloydSteinberg.Draw(pm, b, img, b.Min)

	return pm
}

// exactPalette collects the distinct colours of a frame in scan order,
// giving up once limit is exceeded.
func exactPalette(img image.Image, limit int) (color.Palette, bool) {
	b := img.Bounds()
	seen := make(map[colour.Color]struct{}, limit)
	var pal color.Palette

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := colour.FromColor(img.At(x, y))
			if _, ok := seen[c]; ok {
				continue
			}
			if len(pal) == limit {
				return nil, false
			}
			seen[c] = struct{}{}
			pal = append(pal, c.NRGBA())
		}
	}

	return pal, true
}
