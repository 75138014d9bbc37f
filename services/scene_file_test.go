package services

import (
	"os"
	"path/filepath"
	"testing"

	"drone-nav-backend/algorithms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScene = `
start: {x: -6, y: -6, z: -6}
goal: {x: 6, y: 6, z: 6}
bounds:
  min: {x: -8, y: -8, z: -8}
  max: {x: 8, y: 8, z: 8}
obstacles:
  - id: pillar
    type: box
    position: {x: 0, y: 0, z: 0}
    size: {x: 2, y: 8, z: 2}
  - type: sphere
    position: {x: 3, y: 3, z: 3}
    size: {x: 2, y: 2, z: 2}
`

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScene), 0o600))

	scene, err := LoadSceneFile(path)
	require.NoError(t, err)

	assert.Equal(t, algorithms.Point3D{X: -6, Y: -6, Z: -6}, scene.Start)
	assert.Equal(t, algorithms.Point3D{X: 6, Y: 6, Z: 6}, scene.Goal)
	assert.Equal(t, algorithms.CubeBounds(-8, 8), scene.Bounds)
	require.Len(t, scene.Obstacles, 2)

	assert.Equal(t, "pillar", scene.Obstacles[0].ID)
	assert.Equal(t, algorithms.ObstacleBox, scene.Obstacles[0].Kind)
	assert.Equal(t, algorithms.Point3D{X: 2, Y: 8, Z: 2}, scene.Obstacles[0].Size)
	assert.NotEmpty(t, scene.Obstacles[1].ID, "missing IDs are generated")
	assert.Equal(t, algorithms.ObstacleSphere, scene.Obstacles[1].Kind)
}

func TestLoadSceneFile_Missing(t *testing.T) {
	_, err := LoadSceneFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "unknown kind",
			yaml: "obstacles:\n  - type: cone\n    size: {x: 1, y: 1, z: 1}\n",
			want: algorithms.ErrUnknownObstacleKind,
		},
		{
			name: "negative size",
			yaml: "obstacles:\n  - type: box\n    size: {x: 1, y: -1, z: 1}\n",
			want: algorithms.ErrNegativeSize,
		},
		{
			name: "goal outside bounds",
			yaml: "goal: {x: 20, y: 0, z: 0}\n",
			want: ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := ParseScene([]byte("start: [1, 2"))
	assert.Error(t, err)
}

// PUT /api/scene 본문 그대로 장면 파일로 쓸 수 있어야 함
func TestParseScene_SameKeysAsSceneJSON(t *testing.T) {
	body := `{"start":{"x":-2,"y":0,"z":0},"goal":{"x":2,"y":0,"z":0},` +
		`"obstacles":[{"id":"b1","type":"sphere","position":{"x":0,"y":5,"z":0},"size":{"x":2,"y":2,"z":2}}]}`

	scene, err := ParseScene([]byte(body))
	require.NoError(t, err)
	require.Len(t, scene.Obstacles, 1)
	assert.Equal(t, "b1", scene.Obstacles[0].ID)
	assert.Equal(t, algorithms.ObstacleSphere, scene.Obstacles[0].Kind)

	_, err = ParseScene([]byte("obstacles:\n  - kind: box\n    size: {x: 1, y: 1, z: 1}\n"))
	assert.ErrorIs(t, err, algorithms.ErrUnknownObstacleKind)
}

func TestParseScene_DefaultBounds(t *testing.T) {
	scene, err := ParseScene([]byte("goal: {x: 9, y: 0, z: 0}\n"))
	require.NoError(t, err)
	assert.Equal(t, algorithms.DefaultBounds(), scene.Bounds)
	assert.Empty(t, scene.Obstacles)
}
