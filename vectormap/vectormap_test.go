package vectormap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/planner/geometry"
)

const squareText = `# unit square
0, 0, 1, 0
1,0,1,1

1 1 0 1
0, 1, 0, 0
`

const squareYAML = `name: square
lines:
  - [0, 0, 1, 0]
  - [1, 0, 1, 1]
  - [1, 1, 0, 1]
  - [0, 1, 0, 0]
`

func square() []geometry.Segment {
	return []geometry.Segment{
		geometry.NewSegment(0, 0, 1, 0),
		geometry.NewSegment(1, 0, 1, 1),
		geometry.NewSegment(1, 1, 0, 1),
		geometry.NewSegment(0, 1, 0, 0),
	}
}

func writeMap(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FormatsAgree(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	txt, err := Load(writeMap(t, dir, "square.txt", squareText))
	require.NoError(t, err)
	yml, err := Load(writeMap(t, dir, "other.yaml", squareYAML))
	require.NoError(t, err)

	if diff := cmp.Diff(square(), txt.Segments()); diff != "" {
		t.Errorf("text map mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(txt.Segments(), yml.Segments()); diff != "" {
		t.Errorf("yaml map mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "square", txt.Name)
	assert.Equal(t, "square", yml.Name)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("unknown extension", func(t *testing.T) {
		_, err := Load(writeMap(t, dir, "map.json", "{}"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
	t.Run("short line", func(t *testing.T) {
		_, err := Load(writeMap(t, dir, "short.txt", "0, 0, 1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})
	t.Run("bad number", func(t *testing.T) {
		_, err := Load(writeMap(t, dir, "nan.txt", "0, 0, 1, x\n"))
		require.Error(t, err)
	})
	t.Run("wrong arity yaml", func(t *testing.T) {
		_, err := Load(writeMap(t, dir, "bad.yaml", "lines:\n  - [0, 0, 1]\n"))
		require.Error(t, err)
	})
}

func TestLoader_ResolvesExtension(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeMap(t, dir, "square.txt", squareText)

	m, err := Loader{Dir: dir}.Load("square")
	require.NoError(t, err)
	assert.Len(t, m.Segments(), 4)

	_, err = Loader{Dir: dir}.Load("absent")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNilMap_Segments(t *testing.T) {
	var m *Map
	assert.Nil(t, m.Segments())
}

func TestIsMapFile(t *testing.T) {
	assert.True(t, IsMapFile("a/b.txt"))
	assert.True(t, IsMapFile("a/b.YAML"))
	assert.False(t, IsMapFile("a/b.png"))
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := writeMap(t, dir, "live.txt", squareText)

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for map write")
	}
}

func TestLoader_SampleMaps(t *testing.T) {
	t.Parallel()

	loader := Loader{Dir: filepath.Join("..", "maps")}
	for name, want := range map[string]int{"corridor": 7, "room": 5} {
		m, err := loader.Load(name)
		require.NoError(t, err, name)
		assert.Len(t, m.Segments(), want, name)
		assert.Equal(t, name, m.Name)
	}
}

func TestDebouncer(t *testing.T) {
	t.Parallel()

	d := debouncer{last: make(map[string]time.Time)}
	t0 := time.Unix(1000, 0)

	assert.True(t, d.allow("a.txt", t0))
	assert.False(t, d.allow("a.txt", t0.Add(debounce/2)), "repeat inside window")
	assert.True(t, d.allow("b.txt", t0.Add(debounce/2)))
	assert.Len(t, d.last, 2)

	// a later event prunes every entry outside the window
	assert.True(t, d.allow("c.txt", t0.Add(3*debounce)))
	assert.Equal(t, []string{"c.txt"}, keys(d.last))
	assert.True(t, d.allow("a.txt", t0.Add(3*debounce)))
}

func keys(m map[string]time.Time) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	return res
}
