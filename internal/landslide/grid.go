package landslide

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
)

// ErrInvalidGrid is returned for malformed ESRI ASCII grid input.
var ErrInvalidGrid = errors.New("invalid ascii grid")

// Grid is an in-memory ESRI ASCII grid in WGS84 degrees.
type Grid struct {
	NCols, NRows int

	// XLL and YLL are the lower-left corner of the lower-left cell.
	XLL, YLL  float64
	CellSize  float64
	NoData    float64
	hasNoData bool

	// cells are stored row-major from the top (northernmost) row.
	cells []float64
}

// LoadGrid reads an ESRI ASCII grid file.
func LoadGrid(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grid: %w", err)
	}
	defer f.Close()

	g, err := ParseGrid(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}

// ParseGrid decodes an ESRI ASCII grid. Both the corner and the center
// forms of the origin header are accepted.
func ParseGrid(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	g := &Grid{}
	var centered bool
	seen := map[string]bool{}

	var pending string
	for sc.Scan() {
		key := strings.ToLower(sc.Text())
		if _, err := strconv.ParseFloat(key, 64); err == nil {
			pending = sc.Text()
			break
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: header %q has no value", ErrInvalidGrid, key)
		}
		val := sc.Text()
		if err := g.setHeader(key, val, &centered); err != nil {
			return nil, err
		}
		seen[key] = true
	}

	for _, required := range []string{"ncols", "nrows", "cellsize"} {
		if !seen[required] {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidGrid, required)
		}
	}
	if g.NCols <= 0 || g.NRows <= 0 || g.CellSize <= 0 {
		return nil, fmt.Errorf("%w: non-positive dimensions", ErrInvalidGrid)
	}
	if centered {
		g.XLL -= g.CellSize / 2
		g.YLL -= g.CellSize / 2
	}

	g.cells = make([]float64, 0, g.NCols*g.NRows)
	if pending != "" {
		if err := g.appendCell(pending); err != nil {
			return nil, err
		}
	}
	for sc.Scan() {
		if err := g.appendCell(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	if len(g.cells) != g.NCols*g.NRows {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidGrid, len(g.cells), g.NCols*g.NRows)
	}
	return g, nil
}

func (g *Grid) setHeader(key, val string, centered *bool) error {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("%w: header %s=%q", ErrInvalidGrid, key, val)
	}
	switch key {
	case "ncols":
		g.NCols = int(f)
	case "nrows":
		g.NRows = int(f)
	case "xllcorner":
		g.XLL = f
	case "yllcorner":
		g.YLL = f
	case "xllcenter":
		g.XLL = f
		*centered = true
	case "yllcenter":
		g.YLL = f
		*centered = true
	case "cellsize":
		g.CellSize = f
	case "nodata_value":
		g.NoData = f
		g.hasNoData = true
	default:
		return fmt.Errorf("%w: unknown header %q", ErrInvalidGrid, key)
	}
	return nil
}

func (g *Grid) appendCell(tok string) error {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return fmt.Errorf("%w: cell %q", ErrInvalidGrid, tok)
	}
	g.cells = append(g.cells, f)
	return nil
}

// At returns the cell value under p: Missing outside the grid, 0 for nodata
// and NaN cells.
func (g *Grid) At(p geo.Point) hazard.Value {
	col := int(math.Floor((p.Lon - g.XLL) / g.CellSize))
	rowFromBottom := int(math.Floor((p.Lat - g.YLL) / g.CellSize))
	if col < 0 || col >= g.NCols || rowFromBottom < 0 || rowFromBottom >= g.NRows {
		return hazard.Missing()
	}
	row := g.NRows - 1 - rowFromBottom

	v := g.cells[row*g.NCols+col]
	if math.IsNaN(v) || (g.hasNoData && v == g.NoData) {
		return hazard.Present(0)
	}
	return hazard.Present(v)
}

// Value implements Source.
func (g *Grid) Value(_ context.Context, p geo.Point) (hazard.Value, error) {
	return g.At(p), nil
}
