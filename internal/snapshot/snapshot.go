package snapshot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"conquest_ai/internal/grid"
)

var ErrCellCount = errors.New("snapshot: cell arrays do not match width*height")

//go:embed snapshot.schema.json
var schemaText string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("snapshot.schema.json", schemaText)
	})
	return schema, schemaErr
}

// Snapshot is one turn's map state in row-major order.
type Snapshot struct {
	Width       int   `json:"width"`
	Height      int   `json:"height"`
	PlayerID    int   `json:"player_id,omitempty"`
	TurnsLeft   int   `json:"turns_left,omitempty"`
	Owners      []int `json:"owners"`
	Strengths   []int `json:"strengths"`
	Productions []int `json:"productions"`
}

func FromGrid(g *grid.Grid, playerID, turnsLeft int) *Snapshot {
	s := &Snapshot{
		Width:       g.Width,
		Height:      g.Height,
		PlayerID:    playerID,
		TurnsLeft:   turnsLeft,
		Owners:      make([]int, g.Len()),
		Strengths:   make([]int, g.Len()),
		Productions: make([]int, g.Len()),
	}
	for i, c := range g.Cells() {
		s.Owners[i] = c.Owner
		s.Strengths[i] = c.Strength
		s.Productions[i] = c.Production
	}
	return s
}

func (s *Snapshot) Grid() (*grid.Grid, error) {
	g, err := grid.New(s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	n := g.Len()
	if len(s.Owners) != n || len(s.Strengths) != n || len(s.Productions) != n {
		return nil, fmt.Errorf("%w: want %d, got %d/%d/%d", ErrCellCount, n,
			len(s.Owners), len(s.Strengths), len(s.Productions))
	}
	for i := 0; i < n; i++ {
		loc := g.LocationOf(i)
		g.Set(loc.X, loc.Y, s.Owners[i], s.Strengths[i], s.Productions[i])
	}
	return g, nil
}

// Decode validates raw JSON against the snapshot schema before decoding it.
func Decode(b []byte) (*Snapshot, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return &s, nil
}

func compressed(path string) bool { return strings.HasSuffix(path, ".zst") }

// Read loads a snapshot file. Paths ending in .zst are zstd-compressed.
func Read(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if compressed(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

func Write(path string, s *Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeBody(f, b, compressed(path)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeBody(w io.Writer, b []byte, zst bool) error {
	if !zst {
		_, err := w.Write(b)
		return err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := enc.Write(b); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
