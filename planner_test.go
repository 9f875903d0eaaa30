package planner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/planner/config"
	"github.com/pdrpinto/planner/viz"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_RejectsInvalidTuning(t *testing.T) {
	t.Parallel()

	tuning := testTuning()
	tuning.GridSize = 0
	_, err := New(WithTuning(tuning))
	assert.ErrorIs(t, err, config.ErrInvalidTuning)
}

func TestPlanner_NoGoalIsBenign(t *testing.T) {
	t.Parallel()

	p := newTestPlanner(t, testTuning())

	_, set := p.Goal()
	assert.False(t, set)
	assert.True(t, p.AtGoal(Point{X: 123, Y: -45}))
	assert.NoError(t, p.GetGlobalPlan(context.Background(), Point{}, 0))
	assert.Empty(t, p.GetPath())

	var rec viz.Recorder
	p.VisualizePath(&rec)
	assert.Empty(t, rec.Lines)
	assert.Empty(t, rec.Crosses)
}

func TestPlanner_AtGoal(t *testing.T) {
	t.Parallel()

	p := newTestPlanner(t, testTuning())
	p.SetGlobalGoal(Point{X: 1, Y: 1}, 1.57)

	goal, set := p.Goal()
	require.True(t, set)
	assert.Equal(t, Goal{Location: Point{X: 1, Y: 1}, Heading: 1.57}, goal)

	assert.True(t, p.AtGoal(Point{X: 1.2, Y: 1}))
	assert.False(t, p.AtGoal(Point{X: 1.5, Y: 1}), "boundary is exclusive")
	assert.False(t, p.AtGoal(Point{}))
}

func TestPlanner_SetGlobalGoalDropsPath(t *testing.T) {
	t.Parallel()

	p := newTestPlanner(t, testTuning())
	p.SetGlobalGoal(Point{X: 5, Y: 0}, 0)
	require.NoError(t, p.GetGlobalPlan(context.Background(), Point{}, 0))
	require.NotEmpty(t, p.GetPath())

	p.SetGlobalGoal(Point{X: 0, Y: 5}, 0)
	assert.Empty(t, p.GetPath())
	assert.Zero(t, p.Cursor())
}

func TestPlanner_GetPathIsACopy(t *testing.T) {
	t.Parallel()

	p := newTestPlanner(t, testTuning())
	p.SetGlobalGoal(Point{X: 3, Y: 0}, 0)
	require.NoError(t, p.GetGlobalPlan(context.Background(), Point{}, 0))

	path := p.GetPath()
	path[0] = Point{X: 99, Y: 99}
	assert.Equal(t, Point{}, p.GetPath()[0])
}

func TestPlanner_GetGlobalPlanErrors(t *testing.T) {
	t.Parallel()

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()
		p := newTestPlanner(t, testTuning())
		p.SetGlobalGoal(Point{X: 5, Y: 0}, 0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := p.GetGlobalPlan(ctx, Point{}, 0)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, p.GetPath())
	})

	t.Run("expansion limit", func(t *testing.T) {
		t.Parallel()
		tuning := testTuning()
		tuning.MaxExpansions = 1
		p := newTestPlanner(t, tuning)
		p.SetGlobalGoal(Point{X: 5, Y: 0}, 0)

		err := p.GetGlobalPlan(context.Background(), Point{}, 0)
		assert.ErrorIs(t, err, ErrExpansionLimit)
		assert.Empty(t, p.GetPath())
	})
}

func TestPlanner_VisualizePath(t *testing.T) {
	t.Parallel()

	p := newTestPlanner(t, testTuning())
	p.SetGlobalGoal(Point{X: 1, Y: 0}, 0)

	var empty viz.Recorder
	p.VisualizePath(&empty)
	assert.Empty(t, empty.Lines, "empty path draws no lines")
	require.Len(t, empty.Crosses, 1)

	require.NoError(t, p.GetGlobalPlan(context.Background(), Point{}, 0))
	require.Len(t, p.GetPath(), 3)

	var rec viz.Recorder
	p.VisualizePath(&rec)
	require.Len(t, rec.Lines, 2)
	assert.Equal(t, viz.Line{P0: Point{}, P1: Point{X: 0.5}, Color: 0x000000}, rec.Lines[0])
	assert.Equal(t, viz.Line{P0: Point{X: 0.5}, P1: Point{X: 1}, Color: 0x000000}, rec.Lines[1])
	require.Len(t, rec.Crosses, 1)
	assert.Equal(t, viz.Cross{Center: Point{X: 1}, Size: 0.3, Color: 0xFF0000}, rec.Crosses[0])
}

func TestPlanner_SetMap(t *testing.T) {
	t.Parallel()

	t.Run("vector map directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ring.txt"),
			[]byte("-2,-2,2,-2\n2,-2,2,2\n2,2,-2,2\n-2,2,-2,-2\n"), 0o644))

		p, err := New(WithTuning(testTuning()), WithLogger(discardLogger()), WithMapLoader(VectorMapLoader(dir)))
		require.NoError(t, err)
		require.NoError(t, p.SetMap("ring"))

		p.SetGlobalGoal(Point{X: 10, Y: 0}, 0)
		require.NoError(t, p.GetGlobalPlan(context.Background(), Point{}, 0))
		assert.Empty(t, p.GetPath(), "ring encloses the robot")
	})

	t.Run("loader error", func(t *testing.T) {
		t.Parallel()
		errBroken := errors.New("broken")
		loader := MapLoaderFunc(func(string) (ObstacleMap, error) { return nil, errBroken })

		p, err := New(WithTuning(testTuning()), WithLogger(discardLogger()), WithMapLoader(loader))
		require.NoError(t, err)
		assert.ErrorIs(t, p.SetMap("any"), errBroken)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		p, err := New(WithTuning(testTuning()), WithLogger(discardLogger()),
			WithMapLoader(VectorMapLoader(t.TempDir())))
		require.NoError(t, err)
		assert.ErrorIs(t, p.SetMap("nowhere"), os.ErrNotExist)
	})

	t.Run("no loader", func(t *testing.T) {
		t.Parallel()
		p, err := New(WithTuning(testTuning()), WithLogger(discardLogger()), WithMapLoader(nil))
		require.NoError(t, err)
		assert.ErrorIs(t, p.SetMap("any"), ErrNoMapLoader)
	})
}
