package histogram

import (
	"errors"
	"fmt"
	"image/gif"

	"github.com/sjbouwman/silhouette-tool/internal/colour"
)

// ErrInsufficientDiversity is returned when an image has fewer than three
// distinct colours, so background, light and dark cannot be separated.
var ErrInsufficientDiversity = errors.New("insufficient colour diversity")

// Pair holds the two source colours marking the silhouette regions.
type Pair struct {
	Light colour.Color
	Dark  colour.Color
}

// Policy selects a light/dark pair from a ranked histogram. Rank selection is
// a best-effort heuristic, so it is pluggable rather than hard-coded.
type Policy func(ranked []Entry) (Pair, error)

// RankPolicy is the default selection: the most frequent colour is assumed to
// be background and excluded, the second becomes light and the third dark.
func RankPolicy(ranked []Entry) (Pair, error) {
	if len(ranked) < 3 {
		return Pair{}, fmt.Errorf("%w: found %d distinct colours, need at least 3", ErrInsufficientDiversity, len(ranked))
	}

	return Pair{Light: ranked[1].Color, Dark: ranked[2].Color}, nil
}

// Discover infers the light/dark pair from the first frame of an animation.
// Only the first frame is sampled: the result is deterministic and the pair
// is shared by every frame, so later frames cannot introduce flicker. A nil
// policy uses RankPolicy.
func Discover(g *gif.GIF, policy Policy) (Pair, error) {
	if policy == nil {
		policy = RankPolicy
	}
	if len(g.Image) == 0 {
		return Pair{}, fmt.Errorf("%w: animation has no frames", ErrInsufficientDiversity)
	}

	return policy(Count(g.Image[0]))
}
