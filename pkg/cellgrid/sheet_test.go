package cellgrid

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/formula"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/selection"
)

func TestNewUsesDefaults(t *testing.T) {
	s := New(Options{})
	rows, cols := s.Bounds()
	assert.Equal(t, DefaultMinRows, rows)
	assert.Equal(t, DefaultMinCols, cols)

	s = New(Options{MinRows: 5})
	rows, cols = s.Bounds()
	assert.Equal(t, 5, rows)
	assert.Equal(t, DefaultMinCols, cols)

	s = New(Options{MinRows: -3, MinCols: 2})
	rows, cols = s.Bounds()
	assert.Equal(t, DefaultMinRows, rows)
	assert.Equal(t, 2, cols)
}

func TestLoadEmpty(t *testing.T) {
	for _, data := range []string{"", "  \n"} {
		s, err := Load(context.Background(), []byte(data), Options{})
		require.NoError(t, err)
		rows, cols := s.Bounds()
		assert.Equal(t, 40, rows)
		assert.Equal(t, 26, cols)
		_, used := s.UsedRange()
		assert.False(t, used)
	}
}

func TestLoadLegacyText(t *testing.T) {
	s, err := Load(context.Background(), []byte("a,b\nc"), Options{})
	require.NoError(t, err)

	rows, cols := s.Bounds()
	assert.Equal(t, 40, rows)
	assert.Equal(t, 26, cols)
	assert.Equal(t, "a", s.Get(0, 0))
	assert.Equal(t, "b", s.Get(0, 1))
	assert.Equal(t, "c", s.Get(1, 0))
	assert.Empty(t, s.Snapshot().Styles)
}

func TestLoadMalformedJSONFallsBackToLegacy(t *testing.T) {
	s, err := Load(context.Background(), []byte("{oops,1"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "{oops", s.Get(0, 0))
	assert.Equal(t, "1", s.Get(0, 1))
}

func TestLoadRejectsWrongFieldTypes(t *testing.T) {
	for _, data := range []string{
		`{"grid":"x"}`,
		`{"grid":[[1,2]]}`,
		`{"grid":[["a"]],"styles":{"0-0":{"bold":"yes"}}}`,
	} {
		_, err := Load(context.Background(), []byte(data), Options{})
		require.Error(t, err, data)
		assert.True(t, errors.Is(err, ErrInvalidSnapshot), data)

		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr), data)
		assert.Equal(t, "snapshot", loadErr.Format)
	}
}

func TestLoadSnapshotDropsMalformedStyleKeys(t *testing.T) {
	data := `{"grid":[["1"]],"styles":{"x":{"bold":true},"0-0":{"italic":true},"50-30":{"underline":true}}}`
	s, err := Load(context.Background(), []byte(data), Options{})
	require.NoError(t, err)

	assert.Equal(t, models.Style{Italic: true}, s.Style(0, 0))
	assert.Equal(t, models.Style{Underline: true}, s.Style(50, 30))
	assert.Len(t, s.Snapshot().Styles, 2)

	rows, cols := s.Bounds()
	assert.GreaterOrEqual(t, rows, 51)
	assert.GreaterOrEqual(t, cols, 31)
}

func TestLoadSnapshotDropsOutOfRangeStyleKeys(t *testing.T) {
	data := `{"grid":[],"styles":{"2000000-0":{"bold":true},"0-20000":{"bold":true},"1-1":{"italic":true}}}`
	s, err := Load(context.Background(), []byte(data), Options{})
	require.NoError(t, err)

	rows, cols := s.Bounds()
	assert.Equal(t, 40, rows)
	assert.Equal(t, 26, cols)
	assert.Equal(t, map[models.CellKey]models.Style{"1-1": {Italic: true}}, s.Snapshot().Styles)
}

func TestLoadObjectWithoutSnapshotFields(t *testing.T) {
	s, err := Load(context.Background(), []byte(`{"a":1}`), Options{})
	require.NoError(t, err)
	_, used := s.UsedRange()
	assert.False(t, used)
	assert.Empty(t, s.Snapshot().Styles)

	assert.False(t, hasSnapshotFields([]byte(`{"a":1}`)))
	assert.False(t, hasSnapshotFields([]byte(`{}`)))
	assert.True(t, hasSnapshotFields([]byte(`{"grid":[]}`)))
	assert.True(t, hasSnapshotFields([]byte(`{"Styles":null}`)))
}

func TestSerializeRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(Options{})
	s.Set(0, 0, "1")
	s.Set(1, 0, "2")
	s.Set(2, 0, "=SUM(A1:A2)")
	s.Set(99, 29, "far")
	s.Dispatch(selection.PointerDown{Cell: models.Coord{Row: 0, Col: 0}})
	s.Dispatch(selection.PointerMove{Cell: models.Coord{Row: 1, Col: 1}})
	s.Dispatch(selection.ToggleStyle{Attr: models.AttrBold})
	s.Dispatch(selection.SetColor{Color: "#1a73e8"})

	data, err := s.Serialize()
	require.NoError(t, err)

	loaded, err := Load(ctx, data, Options{})
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), loaded.Snapshot())
	assert.Equal(t, "3", loaded.Display(2, 0))
	assert.Equal(t, models.Style{Bold: true, Color: "#1a73e8"}, loaded.Style(1, 1))
}

func TestDisplay(t *testing.T) {
	s := New(Options{})
	require.NoError(t, s.SetAddress("A1", "=B1"))
	require.NoError(t, s.SetAddress("B1", "=A1"))
	require.NoError(t, s.SetAddress("C1", "=(1+2)*3"))

	for _, addr := range []string{"A1", "B1"} {
		v, err := s.DisplayAddress(addr)
		require.NoError(t, err)
		assert.Equal(t, formula.CircularValue, v)
	}
	assert.Equal(t, "=B1", s.Get(0, 0))

	v, err := s.DisplayAddress("c1")
	require.NoError(t, err)
	assert.Equal(t, "9", v)

	_, err = s.DisplayAddress("1A")
	assert.ErrorIs(t, err, ErrInvalidAddress)
	assert.ErrorIs(t, s.SetAddress("", "x"), ErrInvalidAddress)
}

func TestDisplayRange(t *testing.T) {
	s := New(Options{})
	s.Set(0, 0, "1")
	s.Set(0, 1, "=A1+1")
	s.Set(2, 1, "x")

	view := s.DisplayRange(models.Rect{Top: 0, Left: 0, Bottom: 2, Right: 1})
	assert.Equal(t, "A1:B3", view.Range)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, models.CellRow{R: 1, C: map[string]string{"A": "1", "B": "2"}}, view.Rows[0])
	assert.Equal(t, models.CellRow{R: 3, C: map[string]string{"B": "x"}}, view.Rows[1])
}

func TestOnChangeFiresOncePerMutation(t *testing.T) {
	ctx := context.Background()
	s := New(Options{MinRows: 3, MinCols: 3})
	var got []models.Snapshot
	s.OnChange(func(snap models.Snapshot) { got = append(got, snap) })

	s.Set(0, 0, "a")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Grid[0][0])

	s.Set(0, 0, "a")
	assert.Len(t, got, 1, "unchanged content is not a mutation")

	s.Dispatch(selection.PointerDown{Cell: models.Coord{Row: 1, Col: 1}})
	assert.Len(t, got, 1, "selection alone is not a mutation")

	s.Dispatch(selection.Key{Code: selection.KeyRune, Rune: 'z'})
	assert.Len(t, got, 2)

	require.NoError(t, s.Replace(ctx, models.Snapshot{Grid: [][]string{{"new"}}}))
	assert.Len(t, got, 3)
	assert.Equal(t, "new", got[2].Grid[0][0])
}

func TestReplaceIsIsolatedAndClampsSelection(t *testing.T) {
	ctx := context.Background()
	s := New(Options{MinRows: 2, MinCols: 2})
	s.Set(9, 9, "grow")
	s.Dispatch(selection.PointerDown{Cell: models.Coord{Row: 9, Col: 9}})

	snap := models.Snapshot{
		Grid:   [][]string{{"1", "2"}},
		Styles: map[models.CellKey]models.Style{"0-0": {Bold: true}},
	}
	require.NoError(t, s.Replace(ctx, snap))

	snap.Grid[0][0] = "mutated"
	snap.Styles["0-0"] = models.Style{}
	assert.Equal(t, "1", s.Get(0, 0))
	assert.Equal(t, models.Style{Bold: true}, s.Style(0, 0))

	rows, cols := s.Bounds()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	active, ok := s.Selection().Active()
	require.True(t, ok)
	assert.Equal(t, models.Coord{Row: 1, Col: 1}, active)

	// the selection machine now drives the new grid
	s.Dispatch(selection.Input{Text: "=A1+B1"})
	assert.Equal(t, "3", s.Display(1, 1))
}

func TestGrowthOnSet(t *testing.T) {
	s := New(Options{})
	s.Set(0, 0, "keep")
	s.Set(100, 30, "x")
	rows, cols := s.Bounds()
	assert.GreaterOrEqual(t, rows, 101)
	assert.GreaterOrEqual(t, cols, 31)
	assert.Equal(t, "keep", s.Get(0, 0))
}
