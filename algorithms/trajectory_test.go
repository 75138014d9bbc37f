package algorithms

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionAtProgress(t *testing.T) {
	path := []Point3D{{}, {X: 2}, {X: 2, Y: 2}}

	tests := []struct {
		name     string
		progress float64
		want     Point3D
	}{
		{"start", 0, Point3D{}},
		{"first segment", 0.25, Point3D{X: 1}},
		{"corner", 0.5, Point3D{X: 2}},
		{"second segment", 0.75, Point3D{X: 2, Y: 1}},
		{"end", 1, Point3D{X: 2, Y: 2}},
		{"clamped below", -1, Point3D{}},
		{"clamped above", 3, Point3D{X: 2, Y: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PositionAtProgress(path, tt.progress)
			require.True(t, ok)
			assert.True(t, cmp.Equal(tt.want, got, approx), "got %+v", got)
		})
	}

	t.Run("too short", func(t *testing.T) {
		_, ok := PositionAtProgress([]Point3D{{X: 1}}, 0.5)
		assert.False(t, ok)
		_, ok = PositionAtProgress(nil, 0.5)
		assert.False(t, ok)
	})

	t.Run("skips zero-length segments", func(t *testing.T) {
		got, ok := PositionAtProgress([]Point3D{{}, {}, {X: 4}}, 0.5)
		require.True(t, ok)
		assert.True(t, cmp.Equal(Point3D{X: 2}, got, approx))
	})
}

func TestTrailTracker_Eviction(t *testing.T) {
	tracker := NewTrailTracker(5)
	for i := 0; i < 8; i++ {
		tracker.AddPosition(Point3D{X: float64(i)})
	}

	trail := tracker.Trail()
	require.Len(t, trail, 5)
	for i, p := range trail {
		assert.Equal(t, float64(i+3), p.X)
	}
}

func TestTrailTracker_SnapshotIsolation(t *testing.T) {
	tracker := NewTrailTracker(3)
	tracker.AddPosition(Point3D{X: 1})

	snapshot := tracker.Trail()
	snapshot[0].X = 99
	tracker.AddPosition(Point3D{X: 2})

	assert.Len(t, snapshot, 1)
	assert.Equal(t, 99.0, snapshot[0].X)
	assert.Equal(t, []Point3D{{X: 1}, {X: 2}}, tracker.Trail())
}

func TestTrailTracker_SmoothedTrail(t *testing.T) {
	tracker := NewTrailTracker(0)
	assert.Equal(t, DefaultTrailCapacity, tracker.Capacity())

	for _, x := range []float64{0, 3, 6, 0} {
		tracker.AddPosition(Point3D{X: x})
	}

	got := tracker.SmoothedTrail(DefaultTrailWindow)
	want := []Point3D{{X: 1.5}, {X: 3}, {X: 3}, {X: 3}}
	assert.True(t, cmp.Equal(want, got, approx), cmp.Diff(want, got))

	// shorter than the window returns the raw trail
	assert.Equal(t, tracker.Trail(), tracker.SmoothedTrail(10))
}

func TestTrailTracker_Clear(t *testing.T) {
	tracker := NewTrailTracker(4)
	tracker.AddPosition(Point3D{X: 1})
	tracker.AddPosition(Point3D{X: 2})

	tracker.Clear()

	assert.Zero(t, tracker.Len())
	assert.Empty(t, tracker.Trail())
	tracker.AddPosition(Point3D{X: 3})
	assert.Equal(t, []Point3D{{X: 3}}, tracker.Trail())
}
