// Package reference loads the cell-to-colour reference table and derives
// per-file identifiers and output names.
package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sjbouwman/silhouette-tool/internal/colour"
)

// ErrUnknownIdentifier is returned when a cell identifier has no table row.
var ErrUnknownIdentifier = errors.New("unknown cell identifier")

// requiredColumns are the CSV columns the table must provide.
var requiredColumns = []string{"cell_ID", "cluster", "color"}

// Assignment is one resolved row of the reference table.
type Assignment struct {
	CellID  string
	Cluster string
	Color   colour.Color
}

// Table is a read-only lookup from cell identifier to target assignment.
// Build it once at startup and share it across workers.
type Table struct {
	rows map[string]Assignment
}

// Load reads and parses a reference CSV file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reference table %s: %w", path, err)
	}

	return t, nil
}

// Parse reads a reference table in CSV form with at least the columns
// cell_ID, cluster and color (hex). Extra columns are ignored. An empty
// table or a row with an unparseable colour is an error.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	rows := map[string]Assignment{}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		id := strings.TrimSpace(rec[cols["cell_ID"]])
		if id == "" {
			continue
		}

		c, err := colour.ParseHex(strings.TrimSpace(rec[cols["color"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", line, id, err)
		}

		rows[id] = Assignment{
			CellID:  id,
			Cluster: strings.TrimSpace(rec[cols["cluster"]]),
			Color:   c,
		}
	}

	if len(rows) == 0 {
		return nil, errors.New("table has no rows")
	}

	return &Table{rows: rows}, nil
}

// Len returns the number of assignments in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Lookup resolves a cell identifier to its assignment.
func (t *Table) Lookup(id string) (Assignment, error) {
	a, ok := t.rows[id]
	if !ok {
		return Assignment{}, fmt.Errorf("%w: %q", ErrUnknownIdentifier, id)
	}

	return a, nil
}

// CellID derives the table identifier for an input file: the filename stem.
func CellID(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputName builds the output filename for an input file and its
// assignment: the cluster prefixed to the original name, "-sil" renamed to
// "-colored", spaces replaced with underscores.
func OutputName(path string, a Assignment) string {
	name := filepath.Base(path)
	name = strings.ReplaceAll(name, "-sil", "-colored")
	name = strings.ReplaceAll(name, " ", "_")

	return a.Cluster + "_" + name
}
