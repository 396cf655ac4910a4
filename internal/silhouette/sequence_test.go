package silhouette

import (
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/sjbouwman/silhouette-tool/internal/colour"
)

// twoFrameAnimation builds the canonical test animation: frame 1 is all
// background, frame 2 has one light and one dark pixel.
func twoFrameAnimation() *gif.GIF {
	pal := color.Palette{background.NRGBA(), lightSrc.NRGBA(), darkSrc.NRGBA()}

	f1 := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
	// all zero: background

	f2 := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
	copy(f2.Pix, []uint8{0, 1, 2, 0})

	return &gif.GIF{
		Image:     []*image.Paletted{f1, f2},
		Delay:     []int{10, 25},
		Disposal:  []byte{gif.DisposalNone, gif.DisposalBackground},
		LoopCount: 3,
	}
}

func TestRecolorGIF(t *testing.T) {
	t.Parallel()

	in := twoFrameAnimation()
	out := RecolorGIF(in, srcPair, red, 0.5)

	if len(out.Image) != 2 {
		t.Fatalf("frame count: got=%d want 2", len(out.Image))
	}

	// Frame 1 is all background and stays visually unchanged.
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if c := pixel(out.Image[0], x, y); c != background {
				t.Fatalf("frame 1 pixel (%d,%d) changed: %+v", x, y, c)
			}
		}
	}

	// Frame 2: light pixel becomes the target, dark pixel the darkened target.
	if c := pixel(out.Image[1], 1, 0); c != red {
		t.Fatalf("light pixel: got=%+v want %+v", c, red)
	}
	if c := pixel(out.Image[1], 0, 1); c != (colour.Color{R: 128, A: 255}) {
		t.Fatalf("dark pixel: got=%+v want 128,0,0", c)
	}
}

func TestRecolorGIFPreservesMetadata(t *testing.T) {
	t.Parallel()

	in := twoFrameAnimation()
	out := RecolorGIF(in, srcPair, red, 0.5)

	if out.LoopCount != in.LoopCount {
		t.Fatalf("loop count: got=%d want %d", out.LoopCount, in.LoopCount)
	}
	for i := range in.Delay {
		if out.Delay[i] != in.Delay[i] {
			t.Fatalf("delay %d: got=%d want %d", i, out.Delay[i], in.Delay[i])
		}
		if out.Disposal[i] != in.Disposal[i] {
			t.Fatalf("disposal %d: got=%d want %d", i, out.Disposal[i], in.Disposal[i])
		}
		if out.Image[i].Bounds() != in.Image[i].Bounds() {
			t.Fatalf("frame %d bounds changed", i)
		}
	}

	// Input animation must not be mutated.
	if c := pixel(in.Image[1], 1, 0); c != lightSrc {
		t.Fatalf("input frame mutated: %+v", c)
	}
}

func TestRecolorGIFRemapsGlobalPalette(t *testing.T) {
	t.Parallel()

	in := twoFrameAnimation()
	global := color.Palette{background.NRGBA(), lightSrc.NRGBA(), darkSrc.NRGBA()}
	in.Config = image.Config{ColorModel: global, Width: 2, Height: 2}

	out := RecolorGIF(in, srcPair, red, 0.5)

	got, ok := out.Config.ColorModel.(color.Palette)
	if !ok {
		t.Fatal("global palette dropped")
	}
	if colour.FromColor(got[1]) != red {
		t.Fatalf("global light entry: got=%+v want %+v", got[1], red)
	}
	if colour.FromColor(global[1]) != lightSrc {
		t.Fatal("input global palette mutated")
	}
}

func TestRecolorGIFTransparencySurvives(t *testing.T) {
	t.Parallel()

	transparent := color.NRGBA{}
	pal := color.Palette{transparent, lightSrc.NRGBA(), darkSrc.NRGBA()}
	f := image.NewPaletted(image.Rect(0, 0, 3, 1), pal)
	copy(f.Pix, []uint8{0, 1, 2})

	in := &gif.GIF{Image: []*image.Paletted{f}, Delay: []int{5}, Disposal: []byte{gif.DisposalNone}}
	out := RecolorGIF(in, srcPair, red, 0.5)

	if c := colour.FromColor(out.Image[0].Palette[0]); c != (colour.Color{}) {
		t.Fatalf("transparent entry changed: %+v", c)
	}
	if out.Image[0].Pix[0] != 0 {
		t.Fatal("pixel indices changed")
	}
}
