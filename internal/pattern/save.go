// Package pattern implements the serialized seed-pattern format: versioned
// JSON saves carrying board dimensions, the alive coordinate set and
// metadata, plus rectangular blueprints for stamping sub-patterns.
package pattern

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/golcore/gol/internal/grid"
	"github.com/golcore/gol/internal/rule"
)

// CurrentSaveVersion is the latest supported save format version.
const CurrentSaveVersion = 0

// ErrInvalidSave reports a save file whose contents cannot seed a board.
var ErrInvalidSave = errors.New("invalid save")

// Save is a serialized board state. Alive holds [x, y] pairs; everything
// not listed is dead.
type Save struct {
	Version     int      `json:"version"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	CreatedUnix int64    `json:"created_unix"`
	Generation  uint64   `json:"generation"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Edge        string   `json:"edge"`
	Rule        string   `json:"rule"`
	Alive       [][2]int `json:"alive"`
}

// FromGrid captures a board into a new save. The name and description
// are NFC-normalized so saves written on different platforms index
// identically in the catalog.
func FromGrid(name, description string, generation uint64, g *grid.Grid, rs rule.RuleSet) *Save {
	coords := g.Alive()
	alive := make([][2]int, len(coords))
	for i, c := range coords {
		alive[i] = [2]int{c.X, c.Y}
	}
	return &Save{
		Version:     CurrentSaveVersion,
		ID:          uuid.NewString(),
		Name:        norm.NFC.String(name),
		Description: norm.NFC.String(description),
		CreatedUnix: time.Now().Unix(),
		Generation:  generation,
		Width:       g.Width(),
		Height:      g.Height(),
		Edge:        g.Policy().String(),
		Rule:        rs.String(),
		Alive:       alive,
	}
}

// Validate checks the structural invariants of a decoded save.
func (s *Save) Validate() error {
	if s.Version > CurrentSaveVersion {
		return fmt.Errorf("save version %d newer than supported %d: %w", s.Version, CurrentSaveVersion, ErrInvalidSave)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("save dimensions %dx%d: %w", s.Width, s.Height, ErrInvalidSave)
	}
	if _, err := grid.ParseEdgePolicy(s.Edge); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidSave)
	}
	for _, c := range s.Alive {
		if c[0] < 0 || c[0] >= s.Width || c[1] < 0 || c[1] >= s.Height {
			return fmt.Errorf("alive cell (%d, %d) outside %dx%d board: %w", c[0], c[1], s.Width, s.Height, ErrInvalidSave)
		}
	}
	return nil
}

// Grid materializes the saved board.
func (s *Save) Grid() (*grid.Grid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	policy, _ := grid.ParseEdgePolicy(s.Edge)
	g := grid.New(s.Width, s.Height, policy)
	for _, c := range s.Alive {
		if err := g.Set(c[0], c[1], grid.Alive); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Seed returns the alive cells as grid coordinates, the form the engine's
// Reset takes.
func (s *Save) Seed() []grid.Coord {
	out := make([]grid.Coord, len(s.Alive))
	for i, c := range s.Alive {
		out[i] = grid.Coord{X: c[0], Y: c[1]}
	}
	return out
}

// RuleSet parses the save's rulestring, defaulting to Conway's classic
// rule when the field is empty.
func (s *Save) RuleSet() (rule.RuleSet, error) {
	if s.Rule == "" {
		return rule.Classic(), nil
	}
	return rule.Parse(s.Rule)
}

// Write serializes the save as indented JSON at path.
func (s *Save) Write(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save %q: %w", s.Name, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write save %q: %w", s.Name, err)
	}
	return nil
}
