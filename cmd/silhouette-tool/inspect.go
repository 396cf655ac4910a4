package main

import (
	"errors"
	"fmt"
	"image/gif"
	"os"

	"github.com/cenkalti/dominantcolor"

	"github.com/sjbouwman/silhouette-tool/internal/histogram"
)

type inspectCmd struct {
	Args struct {
		GIF string `positional-arg-name:"GIF" required:"true" description:"Animated GIF to inspect"`
	} `positional-args:"true"`

	Top int `short:"t" long:"top" default:"10" description:"Number of histogram rows to print, 0 for all"`
}

// Execute prints the ranked colour histogram of the first frame, the
// dominant colour, and the light/dark pair discovery would choose. This is
// the diagnostic surface for images where rank-based discovery misfires.
func (c *inspectCmd) Execute(_ []string) error {
	f, err := os.Open(c.Args.GIF)
	if err != nil {
		return err
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", c.Args.GIF, err)
	}
	if len(g.Image) == 0 {
		return fmt.Errorf("%s has no frames", c.Args.GIF)
	}

	first := g.Image[0]
	ranked := histogram.Count(first)

	fmt.Printf("%s: %d frames, %d distinct colours in frame 1\n",
		c.Args.GIF, len(g.Image), len(ranked))
	fmt.Printf("dominant colour: %s\n", dominantcolor.Hex(dominantcolor.Find(first)))

	rows := len(ranked)
	if c.Top > 0 && c.Top < rows {
		rows = c.Top
	}
	for i := 0; i < rows; i++ {
		e := ranked[i]
		fmt.Printf("%3d. %s  a=%-3d  %d px\n", i+1, e.Color.Hex(), e.Color.A, e.N)
	}

	pair, err := histogram.RankPolicy(ranked)
	if err != nil {
		if errors.Is(err, histogram.ErrInsufficientDiversity) {
			fmt.Println("discovery would fail: " + err.Error())
			return nil
		}
		return err
	}
	fmt.Printf("discovery would pick light=%s dark=%s\n", pair.Light.Hex(), pair.Dark.Hex())

	return nil
}
