package algorithms

import "time"

// PathResult - 경로 탐색 결과
type PathResult struct {
	Path                   []Point3D `json:"path"`
	Length                 float64   `json:"length"`
	ComputationTimeMs      float64   `json:"computation_time_ms"`
	NodesExplored          int       `json:"nodes_explored"`
	Success                bool      `json:"success"`
	ExploredNodes          []Point3D `json:"explored_nodes,omitempty"`
	CollisionAvoidanceRate *float64  `json:"collision_avoidance_rate,omitempty"`
}

// PathLength - 연속 웨이포인트 간 거리 합
func PathLength(path []Point3D) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += Distance(path[i-1], path[i])
	}
	return total
}

func autoSmooth(rawPath []Point3D, obstacles []Obstacle) []Point3D {
	simplified := RamerDouglasPeucker(rawPath, AutoSmoothEpsilon)
	return SmoothPath(simplified, obstacles, DefaultSmoothIterations)
}

func elapsedMs(started time.Time) float64 {
	return float64(time.Since(started).Microseconds()) / 1000.0
}

func successResult(rawPath []Point3D, obstacles []Obstacle, smooth bool, started time.Time, explored int, trace []Point3D) PathResult {
	finalPath := rawPath
	if smooth {
		finalPath = autoSmooth(rawPath, obstacles)
	}
	rate := 100.0
	return PathResult{
		Path:                   finalPath,
		Length:                 PathLength(finalPath),
		ComputationTimeMs:      elapsedMs(started),
		NodesExplored:          explored,
		Success:                true,
		ExploredNodes:          trace,
		CollisionAvoidanceRate: &rate,
	}
}

func failureResult(started time.Time, explored int, trace []Point3D) PathResult {
	rate := 0.0
	return PathResult{
		Path:                   []Point3D{},
		Length:                 0,
		ComputationTimeMs:      elapsedMs(started),
		NodesExplored:          explored,
		Success:                false,
		ExploredNodes:          trace,
		CollisionAvoidanceRate: &rate,
	}
}
