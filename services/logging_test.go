package services

import (
	"path/filepath"
	"testing"
	"time"

	"drone-nav-backend/algorithms"
	"drone-nav-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	db, err := OpenDatabase(sqlite.Open(filepath.Join(t.TempDir(), "runs.db")))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewRunStore(db)
}

func testRun(runID, algorithm string, success bool, length, timeMs float64, nodes int) models.PlanRun {
	return models.PlanRun{
		RunID:             runID,
		CreatedAt:         time.Now(),
		Algorithm:         algorithm,
		Success:           success,
		PathLength:        length,
		NodesExplored:     nodes,
		ComputationTimeMs: timeMs,
		Source:            SourcePlan,
	}
}

func TestRunStore_NotReady(t *testing.T) {
	var store *RunStore
	assert.False(t, store.Ready())

	_, err := store.Recent(10)
	assert.ErrorIs(t, err, ErrDatabaseNotReady)
	_, err = NewRunStore(nil).Stats(24)
	assert.ErrorIs(t, err, ErrDatabaseNotReady)
	assert.ErrorIs(t, NewRunStore(nil).Save(nil), ErrDatabaseNotReady)
}

func TestRunStore_SaveAndQuery(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save([]models.PlanRun{
		testRun("a1", models.AlgorithmAStar, true, 20, 4, 100),
		testRun("a2", models.AlgorithmAStar, true, 30, 6, 300),
		testRun("r1", models.AlgorithmRRT, false, 0, 10, 2000),
		testRun("r2", models.AlgorithmRRT, true, 25, 2, 400),
	}))

	recent, err := store.Recent(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "r2", recent[0].RunID, "newest first")

	rrt, err := store.ByAlgorithm(models.AlgorithmRRT, 10)
	require.NoError(t, err)
	require.Len(t, rrt, 2)
	for _, r := range rrt {
		assert.Equal(t, models.AlgorithmRRT, r.Algorithm)
	}

	stats, err := store.Stats(24)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, models.AlgorithmAStar, stats[0].Algorithm)
	assert.EqualValues(t, 2, stats[0].Runs)
	assert.EqualValues(t, 2, stats[0].Successes)
	assert.InDelta(t, 25.0, stats[0].AvgLength, 1e-9)
	assert.InDelta(t, 5.0, stats[0].AvgTimeMs, 1e-9)
	assert.InDelta(t, 200.0, stats[0].AvgNodes, 1e-9)

	assert.Equal(t, models.AlgorithmRRT, stats[1].Algorithm)
	assert.EqualValues(t, 2, stats[1].Runs)
	assert.EqualValues(t, 1, stats[1].Successes)
	assert.InDelta(t, 25.0, stats[1].AvgLength, 1e-9, "failed runs are excluded from the length average")
	assert.InDelta(t, 6.0, stats[1].AvgTimeMs, 1e-9)
}

func TestRunLogBuffer_FlushOnStop(t *testing.T) {
	store := newTestStore(t)
	lb := NewRunLogBuffer(store, 100, time.Hour)

	lb.Add(testRun("a1", models.AlgorithmAStar, true, 10, 1, 10))
	lb.Add(testRun("a2", models.AlgorithmAStar, true, 12, 1, 12))
	assert.Equal(t, 2, lb.Pending())

	lb.Stop()
	assert.Equal(t, 0, lb.Pending())

	runs, err := store.Recent(10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunLogBuffer_FlushWhenFull(t *testing.T) {
	store := newTestStore(t)
	lb := NewRunLogBuffer(store, 2, time.Hour)
	defer lb.Stop()

	lb.Add(testRun("a1", models.AlgorithmAStar, true, 10, 1, 10))
	lb.Add(testRun("a2", models.AlgorithmAStar, true, 12, 1, 12))

	require.Eventually(t, func() bool {
		runs, err := store.Recent(10)
		return err == nil && len(runs) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRunLogBuffer_DropsWithoutDatabase(t *testing.T) {
	lb := NewRunLogBuffer(NewRunStore(nil), 10, time.Hour)
	lb.Add(testRun("a1", models.AlgorithmAStar, true, 10, 1, 10))
	lb.Flush()
	assert.Equal(t, 0, lb.Pending())
	lb.Stop()
}

func TestRunLogBuffer_NilIsNoop(t *testing.T) {
	var lb *RunLogBuffer
	lb.Add(models.PlanRun{})
	lb.Stop()
}

func TestNewPlanRun(t *testing.T) {
	in := plannerInput{
		start:      algorithms.Point3D{X: -1},
		goal:       algorithms.Point3D{X: 1},
		obstacles:  make([]algorithms.Obstacle, 3),
		astarStep:  1,
		rrtStep:    0.8,
		autoSmooth: true,
		seed:       9,
	}
	result := algorithms.PathResult{
		Path:              []algorithms.Point3D{{X: -1}, {X: 1}},
		Length:            2,
		NodesExplored:     5,
		ComputationTimeMs: 0.5,
		Success:           true,
	}

	run := newPlanRun("run-1", "scene-1", models.AlgorithmRRT, SourceCompare, in, result)

	assert.Equal(t, "run-1", run.RunID)
	assert.Equal(t, "scene-1", run.SceneID)
	assert.Equal(t, 0.8, run.StepSize)
	assert.Equal(t, 3, run.ObstacleCount)
	assert.Equal(t, 2, run.Waypoints)
	assert.Equal(t, int64(9), run.Seed)
	assert.Equal(t, SourceCompare, run.Source)
	assert.JSONEq(t, `[{"x":-1,"y":0,"z":0},{"x":1,"y":0,"z":0}]`, run.PathJSON)
}
