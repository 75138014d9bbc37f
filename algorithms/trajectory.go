package algorithms

const (
	DefaultTrailCapacity = 500
	DefaultTrailWindow   = 3
)

// PositionAtProgress returns the point at progress*totalLength along path.
// Paths with fewer than two points yield false.
func PositionAtProgress(path []Point3D, progress float64) (Point3D, bool) {
	if len(path) < 2 {
		return Point3D{}, false
	}
	if progress <= 0 {
		return path[0], true
	}
	if progress >= 1 {
		return path[len(path)-1], true
	}

	target := progress * PathLength(path)
	walked := 0.0
	for i := 1; i < len(path); i++ {
		segLen := Distance(path[i-1], path[i])
		if segLen < minMagnitude {
			walked += segLen
			continue
		}
		if walked+segLen >= target {
			return path[i-1].Lerp(path[i], (target-walked)/segLen), true
		}
		walked += segLen
	}
	return path[len(path)-1], true
}

// TrailTracker keeps the most recent positions, oldest evicted first.
// Not safe for concurrent use.
type TrailTracker struct {
	trail    []Point3D
	capacity int
}

func NewTrailTracker(capacity int) *TrailTracker {
	if capacity <= 0 {
		capacity = DefaultTrailCapacity
	}
	return &TrailTracker{
		trail:    make([]Point3D, 0, capacity),
		capacity: capacity,
	}
}

// AddPosition - 위치 추가, 용량 초과 시 가장 오래된 항목 제거
func (t *TrailTracker) AddPosition(p Point3D) {
	if len(t.trail) == t.capacity {
		copy(t.trail, t.trail[1:])
		t.trail = t.trail[:len(t.trail)-1]
	}
	t.trail = append(t.trail, p)
}

// Trail - 스냅샷 복사본
func (t *TrailTracker) Trail() []Point3D {
	return clonePath(t.trail)
}

func (t *TrailTracker) Len() int {
	return len(t.trail)
}

func (t *TrailTracker) Capacity() int {
	return t.capacity
}

// SmoothedTrail - 중심 이동 평균, 양 끝은 가용 범위로 잘림
func (t *TrailTracker) SmoothedTrail(window int) []Point3D {
	if window < 1 {
		window = 1
	}
	n := len(t.trail)
	if n < window {
		return t.Trail()
	}

	smoothed := make([]Point3D, 0, n)
	for i := 0; i < n; i++ {
		lo := max(0, i-window/2)
		hi := min(n, i+(window+1)/2)

		var sum Point3D
		for _, p := range t.trail[lo:hi] {
			sum.X += p.X
			sum.Y += p.Y
			sum.Z += p.Z
		}
		count := float64(hi - lo)
		smoothed = append(smoothed, Point3D{X: sum.X / count, Y: sum.Y / count, Z: sum.Z / count})
	}
	return smoothed
}

func (t *TrailTracker) Clear() {
	t.trail = t.trail[:0]
}
