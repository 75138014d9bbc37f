package services

import (
	"testing"

	"drone-nav-backend/algorithms"
	"drone-nav-backend/models"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScene(t *testing.T) {
	scene := DefaultScene()

	assert.NotEmpty(t, scene.ID)
	assert.Equal(t, algorithms.Point3D{X: -8, Y: -8, Z: -8}, scene.Start)
	assert.Equal(t, algorithms.Point3D{X: 8, Y: 8, Z: 8}, scene.Goal)
	assert.Equal(t, algorithms.DefaultBounds(), scene.Bounds)
	require.Len(t, scene.Obstacles, 10)

	ids := map[string]bool{}
	for _, o := range scene.Obstacles {
		require.NoError(t, o.Validate())
		ids[o.ID] = true
	}
	assert.Len(t, ids, 10, "obstacle IDs must be unique")

	obstacles := scene.ObstacleList()
	assert.False(t, algorithms.CheckCollision(scene.Start, obstacles, algorithms.DefaultDroneRadius))
	assert.False(t, algorithms.CheckCollision(scene.Goal, obstacles, algorithms.DefaultDroneRadius))
}

func TestSceneManager_ActiveReturnsCopy(t *testing.T) {
	sm := NewSceneManager(1)

	scene, err := sm.Active()
	require.NoError(t, err)
	scene.Obstacles[0].Position.X = 99
	scene.Obstacles = scene.Obstacles[:1]

	again, err := sm.Active()
	require.NoError(t, err)
	assert.Len(t, again.Obstacles, 10)
	assert.Equal(t, 0.0, again.Obstacles[0].Position.X)
}

func TestSceneManager_AddAndRemoveObstacle(t *testing.T) {
	sm := NewSceneManager(1)

	added, err := sm.AddObstacle(algorithms.Obstacle{
		Position: algorithms.Point3D{X: 3, Y: -3},
		Size:     algorithms.Point3D{X: 1, Y: 1, Z: 1},
		Kind:     algorithms.ObstacleBox,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	scene, err := sm.Active()
	require.NoError(t, err)
	require.Len(t, scene.Obstacles, 11)
	assert.Equal(t, added, scene.Obstacles[10])

	require.NoError(t, sm.RemoveObstacle(added.ID))
	scene, err = sm.Active()
	require.NoError(t, err)
	assert.Len(t, scene.Obstacles, 10)

	err = sm.RemoveObstacle(added.ID)
	assert.ErrorIs(t, err, ErrObstacleNotFound)
}

func TestSceneManager_AddObstacleRejectsInvalid(t *testing.T) {
	sm := NewSceneManager(1)

	_, err := sm.AddObstacle(algorithms.Obstacle{Size: algorithms.Point3D{X: -1, Y: 1, Z: 1}, Kind: algorithms.ObstacleBox})
	assert.ErrorIs(t, err, algorithms.ErrNegativeSize)

	_, err = sm.AddObstacle(algorithms.Obstacle{Size: algorithms.Point3D{X: 1, Y: 1, Z: 1}, Kind: "cone"})
	assert.ErrorIs(t, err, algorithms.ErrUnknownObstacleKind)

	scene, err := sm.Active()
	require.NoError(t, err)
	assert.Len(t, scene.Obstacles, 10)
}

func TestSceneManager_AddRandomObstacle(t *testing.T) {
	sm := NewSceneManager(42)
	sm.Clear()
	_, err := sm.AddRandomObstacle()
	require.ErrorIs(t, err, ErrNoActiveScene)

	sm.Reset()
	kinds := map[algorithms.ObstacleKind]int{}
	for i := 0; i < 200; i++ {
		o, err := sm.AddRandomObstacle()
		require.NoError(t, err)

		for _, v := range []float64{o.Position.X, o.Position.Y, o.Position.Z} {
			assert.GreaterOrEqual(t, v, -5.0)
			assert.Less(t, v, 5.0)
		}
		for _, v := range []float64{o.Size.X, o.Size.Y, o.Size.Z} {
			assert.GreaterOrEqual(t, v, 1.0)
			assert.Less(t, v, 3.0)
		}
		kinds[o.Kind]++
	}
	assert.Positive(t, kinds[algorithms.ObstacleBox])
	assert.Positive(t, kinds[algorithms.ObstacleSphere])
}

func TestSceneManager_RandomObstacleIsSeeded(t *testing.T) {
	a, err := NewSceneManager(7).AddRandomObstacle()
	require.NoError(t, err)
	b, err := NewSceneManager(7).AddRandomObstacle()
	require.NoError(t, err)

	if diff := cmp.Diff(a, b, cmpopts.IgnoreFields(models.SceneObstacle{}, "ID")); diff != "" {
		t.Errorf("same seed produced different obstacles (-a +b):\n%s", diff)
	}
}

func TestSceneManager_SetEndpoints(t *testing.T) {
	sm := NewSceneManager(1)

	start := algorithms.Point3D{X: -5, Y: -5, Z: -5}
	scene, err := sm.SetEndpoints(&start, nil)
	require.NoError(t, err)
	assert.Equal(t, start, scene.Start)
	assert.Equal(t, algorithms.Point3D{X: 8, Y: 8, Z: 8}, scene.Goal)

	outside := algorithms.Point3D{X: 11}
	_, err = sm.SetEndpoints(nil, &outside)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSceneManager_ReplaceAndReset(t *testing.T) {
	sm := NewSceneManager(1)
	before, err := sm.Active()
	require.NoError(t, err)

	replaced, err := sm.Replace(&models.Scene{
		Start: algorithms.Point3D{X: -1},
		Goal:  algorithms.Point3D{X: 1},
		Obstacles: []models.SceneObstacle{
			{Obstacle: algorithms.Obstacle{Size: algorithms.Point3D{X: 0.2, Y: 0.2, Z: 0.2}, Kind: algorithms.ObstacleSphere}},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, before.ID, replaced.ID)
	assert.Equal(t, algorithms.DefaultBounds(), replaced.Bounds)
	require.Len(t, replaced.Obstacles, 1)
	assert.NotEmpty(t, replaced.Obstacles[0].ID)

	_, err = sm.Replace(&models.Scene{
		Obstacles: []models.SceneObstacle{{Obstacle: algorithms.Obstacle{Kind: "pyramid"}}},
	})
	assert.ErrorIs(t, err, algorithms.ErrUnknownObstacleKind)

	active, err := sm.Active()
	require.NoError(t, err)
	assert.Equal(t, replaced.ID, active.ID, "failed replace must keep the previous scene")

	reset := sm.Reset()
	assert.Len(t, reset.Obstacles, 10)
}

func TestSceneManager_IsPositionValid(t *testing.T) {
	sm := NewSceneManager(1)

	assert.True(t, sm.IsPositionValid(algorithms.Point3D{X: -8, Y: -8, Z: -8}))
	assert.False(t, sm.IsPositionValid(algorithms.Point3D{}), "inside the central box")
	assert.False(t, sm.IsPositionValid(algorithms.Point3D{X: 10.5}), "outside bounds")

	sm.Clear()
	assert.False(t, sm.IsPositionValid(algorithms.Point3D{X: -8, Y: -8, Z: -8}))
	assert.Nil(t, sm.SceneMessage())
}
