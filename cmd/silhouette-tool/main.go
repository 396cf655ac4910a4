// Command silhouette-tool recolours batches of two-tone silhouette GIFs
// using a cell-to-colour reference table.
package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/sjbouwman/silhouette-tool/internal/vars"
)

type rootCmd struct {
	Version versionCmd `command:"version" description:"Show version information"`
	Colour  colourCmd  `command:"colour" description:"Recolour all silhouette GIFs in a directory"`
	Inspect inspectCmd `command:"inspect" description:"Show the ranked colour histogram of a GIF"`
}

func main() {
	var root rootCmd
	parser := flags.NewParser(&root, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

type versionCmd struct{}

// Execute prints the version information.
func (c *versionCmd) Execute(_ []string) error {
	vars.Print()
	return nil
}
