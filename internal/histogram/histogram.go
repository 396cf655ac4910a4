// Package histogram ranks frame colours by frequency and infers the
// light/dark silhouette pair from the ranking.
package histogram

import (
	"image"
	"sort"

	"github.com/sjbouwman/silhouette-tool/internal/colour"
)

// Entry is one colour of a frame with its pixel count.
type Entry struct {
	Color colour.Color
	N     int
}

// Count scans a frame top-left to bottom-right in row-major order and returns
// its colours ranked by descending count. Ties keep first-encountered order,
// so the ranking is deterministic for identical input. Paletted frames are
// counted by palette index without converting every pixel.
func Count(img image.Image) []Entry {
	if p, ok := img.(*image.Paletted); ok {
		return countPaletted(p)
	}

	b := img.Bounds()
	idx := make(map[colour.Color]int)
	var ranked []Entry

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := colour.FromColor(img.At(x, y))
			if i, ok := idx[c]; ok {
				ranked[i].N++
				continue
			}
			idx[c] = len(ranked)
			ranked = append(ranked, Entry{Color: c, N: 1})
		}
	}

	sortRanked(ranked)

	return ranked
}

// countPaletted counts palette indices, then merges palette entries that
// resolve to the same colour so duplicated entries rank as one colour.
func countPaletted(p *image.Paletted) []Entry {
	counts := make([]int, len(p.Palette))
	first := make([]int, len(p.Palette))
	for i := range first {
		first[i] = -1
	}

	b := p.Bounds()
	pos := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := p.Pix[(y-b.Min.Y)*p.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			i := row[x-b.Min.X]
			if int(i) < len(counts) {
				counts[i]++
				if first[i] < 0 {
					first[i] = pos
				}
			}
			pos++
		}
	}

	idx := make(map[colour.Color]int)
	seen := make(map[colour.Color]int)
	var ranked []Entry

	for i, n := range counts {
		if n == 0 {
			continue
		}
		c := colour.FromColor(p.Palette[i])
		if j, ok := idx[c]; ok {
			ranked[j].N += n
			if first[i] < seen[c] {
				seen[c] = first[i]
			}
			continue
		}
		idx[c] = len(ranked)
		seen[c] = first[i]
		ranked = append(ranked, Entry{Color: c, N: n})
	}

	// Order by first pixel occurrence before ranking, so tie-breaking
	// matches the per-pixel path.
	sort.SliceStable(ranked, func(a, b int) bool {
		return seen[ranked[a].Color] < seen[ranked[b].Color]
	})
	sortRanked(ranked)

	return ranked
}

// sortRanked sorts by descending count, keeping scan order for ties.
func sortRanked(ranked []Entry) {
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].N > ranked[b].N
	})
}
