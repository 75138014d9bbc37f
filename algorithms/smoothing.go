package algorithms

import "math"

const (
	DefaultRDPEpsilon       = 0.3
	AutoSmoothEpsilon       = 0.5
	DefaultAngleTolerance   = 0.5
	DefaultSmoothIterations = 3
	DefaultCurveSegments    = 50
	DefaultPointsPerSegment = 20
)

// SimplifyPath drops interior waypoints whose turning angle is at most tolerance radians.
func SimplifyPath(path []Point3D, tolerance float64) []Point3D {
	if len(path) <= 2 {
		return clonePath(path)
	}

	simplified := []Point3D{path[0]}
	for i := 1; i < len(path)-1; i++ {
		prev := simplified[len(simplified)-1]
		v1 := path[i].vec().Sub(prev.vec())
		v2 := path[i+1].vec().Sub(path[i].vec())

		mag1, mag2 := v1.Norm(), v2.Norm()
		if mag1 < minMagnitude || mag2 < minMagnitude {
			continue
		}

		cos := math.Max(-1, math.Min(1, v1.Dot(v2)/(mag1*mag2)))
		if math.Acos(cos) > tolerance {
			simplified = append(simplified, path[i])
		}
	}
	return append(simplified, path[len(path)-1])
}

// RamerDouglasPeucker - RDP 경로 간소화
func RamerDouglasPeucker(path []Point3D, epsilon float64) []Point3D {
	if len(path) < 3 {
		return clonePath(path)
	}

	// 가장 먼 점 찾기
	dmax := 0.0
	index := 0
	last := len(path) - 1
	for i := 1; i < last; i++ {
		d := PointToLineDistance(path[i], path[0], path[last])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	if dmax > epsilon {
		left := RamerDouglasPeucker(path[:index+1], epsilon)
		right := RamerDouglasPeucker(path[index:], epsilon)
		return append(left[:len(left)-1], right...)
	}

	return []Point3D{path[0], path[last]}
}

// lineOfSightPass - 현재 점에서 보이는 가장 먼 웨이포인트로 점프
func lineOfSightPass(path []Point3D, obstacles []Obstacle) []Point3D {
	if len(path) < 3 {
		return path
	}

	result := []Point3D{path[0]}
	current := 0
	for current < len(path)-1 {
		farthest := current + 1
		for i := current + 2; i < len(path); i++ {
			if !HasLineOfSight(path[current], path[i], obstacles, DefaultLineOfSightSamples) {
				break
			}
			farthest = i
		}
		current = farthest
		result = append(result, path[current])
	}
	return result
}

// SmoothPath - 가시선 기반 string pulling, 최대 maxIterations 회
func SmoothPath(path []Point3D, obstacles []Obstacle, maxIterations int) []Point3D {
	smoothed := clonePath(path)
	if len(smoothed) < 3 {
		return smoothed
	}

	for i := 0; i < maxIterations; i++ {
		optimized := lineOfSightPass(smoothed, obstacles)
		if len(optimized) == len(smoothed) {
			break
		}
		smoothed = optimized
	}
	return smoothed
}

// CreateSmoothCurve - Catmull-Rom 곡선, 구간마다 segments개 점
func CreateSmoothCurve(waypoints []Point3D, segments int) []Point3D {
	if len(waypoints) < 2 || segments <= 0 {
		return clonePath(waypoints)
	}
	if len(waypoints) == 2 {
		return InterpolatePathForMovement(waypoints, segments)
	}

	last := len(waypoints) - 1
	curve := make([]Point3D, 0, last*segments+1)
	for i := 0; i < last; i++ {
		p0 := waypoints[max(0, i-1)]
		p1 := waypoints[i]
		p2 := waypoints[i+1]
		p3 := waypoints[min(last, i+2)]

		for j := 0; j < segments; j++ {
			t := float64(j) / float64(segments)
			curve = append(curve, Point3D{
				X: catmullRom(p0.X, p1.X, p2.X, p3.X, t),
				Y: catmullRom(p0.Y, p1.Y, p2.Y, p3.Y, t),
				Z: catmullRom(p0.Z, p1.Z, p2.Z, p3.Z, t),
			})
		}
	}
	return append(curve, waypoints[last])
}

func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * (2*p1 +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}

// InterpolatePathForMovement - 구간마다 pointsPerSegment개 균등 분할, 마지막 점은 한 번만
func InterpolatePathForMovement(waypoints []Point3D, pointsPerSegment int) []Point3D {
	if len(waypoints) < 2 {
		return clonePath(waypoints)
	}
	if pointsPerSegment < 1 {
		pointsPerSegment = 1
	}

	last := len(waypoints) - 1
	interpolated := make([]Point3D, 0, last*pointsPerSegment+1)
	for i := 0; i < last; i++ {
		start, end := waypoints[i], waypoints[i+1]
		for j := 0; j < pointsPerSegment; j++ {
			interpolated = append(interpolated, start.Lerp(end, float64(j)/float64(pointsPerSegment)))
		}
	}
	return append(interpolated, waypoints[last])
}

func clonePath(path []Point3D) []Point3D {
	out := make([]Point3D, len(path))
	copy(out, path)
	return out
}
