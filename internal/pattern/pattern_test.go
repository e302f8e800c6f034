package pattern

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golcore/gol/internal/grid"
	"github.com/golcore/gol/internal/rule"
)

func blinkerGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g := grid.New(5, 5, grid.Clipped)
	require.NoError(t, g.SetAll([]grid.Coord{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}))
	return g
}

func TestSaveRoundTrip(t *testing.T) {
	g := blinkerGrid(t)
	save := FromGrid("blinker", "period-2 oscillator", 7, g, rule.Classic())

	require.NotEmpty(t, save.ID)
	assert.Equal(t, CurrentSaveVersion, save.Version)
	assert.Equal(t, "B3/S23", save.Rule)
	assert.Equal(t, "clipped", save.Edge)

	path := filepath.Join(t.TempDir(), "blinker.json")
	require.NoError(t, save.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, save.ID, loaded.ID)
	assert.Equal(t, "blinker", loaded.Name)
	assert.Equal(t, uint64(7), loaded.Generation)

	board, err := loaded.Grid()
	require.NoError(t, err)
	assert.True(t, board.Equal(g))

	rs, err := loaded.RuleSet()
	require.NoError(t, err)
	assert.Equal(t, rule.Classic(), rs)
}

func TestFromGridNormalizesName(t *testing.T) {
	g := blinkerGrid(t)
	// "e" + combining acute composes to a single rune under NFC.
	save := FromGrid("café", "", 0, g, rule.Classic())
	assert.Equal(t, "café", save.Name)
}

func TestValidateRejectsBadSaves(t *testing.T) {
	base := func() *Save {
		return &Save{
			Version: CurrentSaveVersion,
			Width:   3,
			Height:  3,
			Edge:    "toroidal",
			Alive:   [][2]int{{1, 1}},
		}
	}

	s := base()
	s.Version = CurrentSaveVersion + 1
	assert.ErrorIs(t, s.Validate(), ErrInvalidSave, "future version")

	s = base()
	s.Width = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidSave, "zero width")

	s = base()
	s.Edge = "bouncy"
	assert.ErrorIs(t, s.Validate(), ErrInvalidSave, "unknown edge policy")

	s = base()
	s.Alive = [][2]int{{3, 0}}
	assert.ErrorIs(t, s.Validate(), ErrInvalidSave, "alive cell outside board")

	assert.NoError(t, base().Validate())
}

func TestRuleSetDefaultsToClassic(t *testing.T) {
	s := &Save{Width: 3, Height: 3, Edge: "toroidal"}
	rs, err := s.RuleSet()
	require.NoError(t, err)
	assert.Equal(t, rule.Classic(), rs)
}

func TestLoadDirCollectsParseErrors(t *testing.T) {
	dir := t.TempDir()

	good := FromGrid("good", "", 0, blinkerGrid(t), rule.Classic())
	good.CreatedUnix = 100
	require.NoError(t, good.Write(filepath.Join(dir, "good.json")))

	later := FromGrid("later", "", 0, blinkerGrid(t), rule.Classic())
	later.CreatedUnix = 200
	require.NoError(t, later.Write(filepath.Join(dir, "later.json")))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{not json"), 0o644))

	saves, parseErrs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, "good", saves[0].Name, "ordered by creation time")
	assert.Equal(t, "later", saves[1].Name)

	require.Len(t, parseErrs, 1)
	var perr *ParseError
	require.ErrorAs(t, parseErrs[0], &perr)
	assert.Contains(t, perr.Path, "junk.json")
}

func TestLoadDirMissingDirectoryFails(t *testing.T) {
	_, _, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadPreviewSkipsBoardDecode(t *testing.T) {
	dir := t.TempDir()
	save := FromGrid("glider", "spaceship", 42, blinkerGrid(t), rule.Classic())
	path := filepath.Join(dir, "glider.json")
	require.NoError(t, save.Write(path))

	p, err := LoadPreview(path)
	require.NoError(t, err)
	assert.Equal(t, save.ID, p.ID)
	assert.Equal(t, "glider", p.Name)
	assert.Equal(t, "spaceship", p.Description)
	assert.Equal(t, uint64(42), p.Generation)
	assert.Equal(t, 5, p.Width)
}

func TestBlueprintClipAndStamp(t *testing.T) {
	g := blinkerGrid(t)

	// Corner order must not matter.
	b, err := Clip(g, 3, 3, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Width)
	assert.Equal(t, 3, b.Height)
	assert.ElementsMatch(t, [][2]int{{0, 1}, {1, 1}, {2, 1}}, b.Alive)

	target := grid.New(8, 8, grid.Clipped)
	require.NoError(t, target.Set(4, 1, grid.Alive)) // inside the stamped rectangle, must be overwritten
	require.NoError(t, b.Stamp(target, 4, 0))

	assert.Equal(t, 3, target.Population())
	state, err := target.Get(4, 1)
	require.NoError(t, err)
	assert.Equal(t, grid.Alive, state)
	state, err = target.Get(5, 1)
	require.NoError(t, err)
	assert.Equal(t, grid.Alive, state)
}

func TestStampOutOfBoundsOnClippedBoard(t *testing.T) {
	b := &Blueprint{Width: 3, Height: 3, Alive: [][2]int{{0, 0}}}
	target := grid.New(4, 4, grid.Clipped)

	err := b.Stamp(target, 2, 2)
	require.ErrorIs(t, err, grid.ErrOutOfBounds)
	assert.Equal(t, 0, target.Population(), "no partial application")
}

func TestStampWrapsOnToroidalBoard(t *testing.T) {
	b := &Blueprint{Width: 2, Height: 2, Alive: [][2]int{{1, 1}}}
	target := grid.New(4, 4, grid.Toroidal)

	require.NoError(t, b.Stamp(target, 3, 3))
	state, err := target.Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, grid.Alive, state, "stamp wraps past the edge")
}
