package silhouette

import (
	"encoding/binary"
	"fmt"
	"image/gif"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash"

	"github.com/sjbouwman/silhouette-tool/internal/colour"
	"github.com/sjbouwman/silhouette-tool/internal/histogram"
	"github.com/sjbouwman/silhouette-tool/internal/reference"
)

// Options are the resolved recolouring settings for a batch run. They are
// validated once up front; a bad value here is a configuration error, not a
// per-image fault.
type Options struct {
	Light     colour.Color     // light source colour, ignored when Discover is set
	Dark      colour.Color     // dark source colour, ignored when Discover is set
	Darkening float64          // attenuation for the dark region, 0.0-1.0
	Discover  bool             // infer the pair from each image's histogram
	Policy    histogram.Policy // pair selection policy, nil for RankPolicy
}

// Result reports one successfully processed image.
type Result struct {
	Path   string // input file
	Output string // written output file
	NoOp   bool   // no pixel matched the source pair; output equals input
}

// Engine recolours one input image per Process call. It holds only
// read-only state, so a single Engine is shared by all batch workers.
type Engine struct {
	table *reference.Table
	opts  Options
	log   *slog.Logger
}

// New creates an Engine. A nil logger discards diagnostics.
func New(table *reference.Table, opts Options, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}

	return &Engine{table: table, opts: opts, log: log}
}

// Process recolours one GIF and writes it into outDir. Errors returned here
// are per-image conditions (unknown identifier, undecodable file, too few
// colours for discovery); callers skip the image and continue the batch.
func (e *Engine) Process(path, outDir string) (Result, error) {
	id := reference.CellID(path)

	assignment, err := e.table.Lookup(id)
	if err != nil {
		return Result{}, err
	}

	g, err := decode(path)
	if err != nil {
		return Result{}, err
	}

	pair := histogram.Pair{Light: e.opts.Light, Dark: e.opts.Dark}
	if e.opts.Discover {
		pair, err = histogram.Discover(g, e.opts.Policy)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", path, err)
		}
		e.log.Debug("discovered colours",
			"cell", id, "light", pair.Light.Hex(), "dark", pair.Dark.Hex())
	}

	before := hashGIF(g)
	out := RecolorGIF(g, pair, assignment.Color, e.opts.Darkening)

	res := Result{
		Path: path,
		NoOp: hashGIF(out) == before,
	}
	if res.NoOp {
		e.log.Debug("no pixels matched source colours, output equals input",
			"cell", id, "light", pair.Light.Hex(), "dark", pair.Dark.Hex())
	}

	res.Output = filepath.Join(outDir, reference.OutputName(path, assignment))
	if err := writeGIF(res.Output, out); err != nil {
		return Result{}, err
	}

	return res, nil
}

// decode reads a whole animated GIF.
func decode(path string) (*gif.GIF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return g, nil
}

// writeGIF encodes to a temporary file in the target directory and renames
// it into place, so a failed or cancelled run never leaves a partial output.
func writeGIF(path string, g *gif.GIF) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*.gif")
	if err != nil {
		return err
	}

	if err := gif.EncodeAll(tmp, g); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}

// hashGIF hashes the rendered pixels of an animation: every pixel index is
// resolved through its frame palette first, so substituting a palette entry
// no pixel uses does not change the hash. Input and output hashing equal is
// how the no-op outcome is detected.
func hashGIF(g *gif.GIF) uint64 {
	d := xxhash.New()

	for _, frame := range g.Image {
		lut := make([][4]byte, len(frame.Palette))
		for i, pc := range frame.Palette {
			c := colour.FromColor(pc)
			lut[i] = [4]byte{c.R, c.G, c.B, c.A}
		}

		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(len(frame.Pix)))
		d.Write(n[:])
		for _, idx := range frame.Pix {
			if int(idx) < len(lut) {
				d.Write(lut[idx][:])
			}
		}
	}

	return d.Sum64()
}
