package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/sjbouwman/silhouette-tool/internal/batch"
	"github.com/sjbouwman/silhouette-tool/internal/colour"
	"github.com/sjbouwman/silhouette-tool/internal/reference"
	"github.com/sjbouwman/silhouette-tool/internal/silhouette"
)

// Built-in defaults, overridable by config file, then by explicit flags.
const (
	defaultDarkening = 0.2
	defaultLight     = "128,128,255"
	defaultDark      = "0,0,255"
)

type colourCmd struct {
	Args struct {
		CSV string `positional-arg-name:"CSV" required:"true" description:"Reference table with cell_ID, cluster and color columns"`
		Dir string `positional-arg-name:"DIR" required:"true" description:"Directory containing the silhouette GIFs"`
	} `positional-args:"true"`

	Darkening *float64 `short:"d" long:"darkening" description:"Darkening factor for the dark region, 0.0-1.0 (default: 0.2)"`
	Light     *string  `long:"light-colour" description:"Light source colour as R,G,B[,A] or hex (default: 128,128,255)"`
	Dark      *string  `long:"dark-colour" description:"Dark source colour as R,G,B[,A] or hex (default: 0,0,255)"`
	Discover  bool     `short:"D" long:"discover-colours" description:"Infer light/dark colours from each image instead"`
	Output    string   `short:"o" long:"output" description:"Output directory (default: DIR/SilhouetteOutput)"`
	Jobs      *int     `short:"j" long:"jobs" description:"Parallel images (default: number of CPUs)"`
	Verbose   bool     `short:"v" long:"verbose" description:"Log per-image diagnostics"`
	Config    string   `short:"c" long:"config" description:"Optional YAML/JSON file with default settings"`
}

// Execute runs one batch: load table, collect GIFs, recolour in parallel,
// print a summary. Exits 2 when any image was skipped so scripts can tell a
// clean run from a partial one.
func (c *colourCmd) Execute(_ []string) error {
	opts, jobs, verbose, err := c.resolve()
	if err != nil {
		return err
	}

	table, err := reference.Load(c.Args.CSV)
	if err != nil {
		return err
	}

	paths, err := filepath.Glob(filepath.Join(c.Args.Dir, "*.gif"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No GIFs found")
		return nil
	}

	outDir := c.Output
	if outDir == "" {
		outDir = filepath.Join(c.Args.Dir, "SilhouetteOutput")
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	engine := silhouette.New(table, opts, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary := batch.Run(ctx, paths, jobs, func(path string) (bool, error) {
		res, err := engine.Process(path, outDir)
		return res.NoOp, err
	})

	// One diagnostic line per skip, surfaced in verbose mode.
	for _, skip := range summary.Skips {
		log.Debug("skipped", "path", skip.Path, "reason", skip.Err)
	}

	fmt.Printf("processed: %d\n", summary.Processed)
	fmt.Printf("skipped:   %d\n", summary.Skipped())
	if summary.NoOp > 0 {
		fmt.Printf("unchanged: %d (no pixels matched the source colours)\n", summary.NoOp)
	}

	if summary.Skipped() > 0 {
		os.Exit(2)
	}

	return nil
}

// resolve merges built-in defaults, the optional config file and explicit
// flags into validated engine options.
func (c *colourCmd) resolve() (silhouette.Options, int, bool, error) {
	darkening := defaultDarkening
	light := defaultLight
	dark := defaultDark
	discover := c.Discover
	jobs := runtime.NumCPU()
	verbose := c.Verbose

	explicitColours := c.Light != nil || c.Dark != nil

	if c.Config != "" {
		cfg, err := readConfig(c.Config)
		if err != nil {
			return silhouette.Options{}, 0, false, err
		}
		if cfg.Darkening != nil {
			darkening = *cfg.Darkening
		}
		if cfg.LightColour != nil {
			light = *cfg.LightColour
			explicitColours = true
		}
		if cfg.DarkColour != nil {
			dark = *cfg.DarkColour
			explicitColours = true
		}
		if cfg.DiscoverColours != nil {
			discover = *cfg.DiscoverColours
		}
		if cfg.Jobs != nil {
			jobs = *cfg.Jobs
		}
		if cfg.Verbose != nil {
			verbose = *cfg.Verbose
		}
	}

	if c.Darkening != nil {
		darkening = *c.Darkening
	}
	if c.Light != nil {
		light = *c.Light
	}
	if c.Dark != nil {
		dark = *c.Dark
	}
	if c.Discover {
		discover = true
	}
	if c.Jobs != nil {
		jobs = *c.Jobs
	}
	if c.Verbose {
		verbose = true
	}

	if discover && explicitColours {
		return silhouette.Options{}, 0, false,
			fmt.Errorf("--discover-colours replaces --light-colour and --dark-colour; specify one or the other")
	}

	if err := colour.ValidateFactor(darkening); err != nil {
		return silhouette.Options{}, 0, false, err
	}

	lightC, err := colour.Parse(light)
	if err != nil {
		return silhouette.Options{}, 0, false, fmt.Errorf("light colour: %w", err)
	}
	darkC, err := colour.Parse(dark)
	if err != nil {
		return silhouette.Options{}, 0, false, fmt.Errorf("dark colour: %w", err)
	}

	opts := silhouette.Options{
		Light:     lightC,
		Dark:      darkC,
		Darkening: darkening,
		Discover:  discover,
	}

	return opts, jobs, verbose, nil
}
