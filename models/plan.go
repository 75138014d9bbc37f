package models

import "drone-nav-backend/algorithms"

const (
	AlgorithmAStar = "astar"
	AlgorithmRRT   = "rrt"

	WinnerNone = "none"
)

// PlanRequest - 경로 계획 요청 (nil 필드는 활성 장면/기본값 사용)
type PlanRequest struct {
	Algorithm     string              `json:"algorithm"`
	Start         *algorithms.Point3D `json:"start,omitempty"`
	Goal          *algorithms.Point3D `json:"goal,omitempty"`
	Obstacles     []SceneObstacle     `json:"obstacles,omitempty"`
	Bounds        *algorithms.Bounds  `json:"bounds,omitempty"`
	StepSize      *float64            `json:"step_size,omitempty"`
	MaxIterations *int                `json:"max_iterations,omitempty"`
	AutoSmooth    *bool               `json:"auto_smooth,omitempty"`
	Seed          *int64              `json:"seed,omitempty"`
	CurveSegments int                 `json:"smooth_curve_segments,omitempty"`
	Animate       bool                `json:"animate,omitempty"`
	Runs          int                 `json:"runs,omitempty"`
}

// PlanResponse - 단일 알고리즘 결과
type PlanResponse struct {
	Success   bool                  `json:"success"`
	RunID     string                `json:"run_id"`
	SceneID   string                `json:"scene_id,omitempty"`
	Algorithm string                `json:"algorithm"`
	Result    algorithms.PathResult `json:"result"`
	Curve     []algorithms.Point3D  `json:"curve,omitempty"`
	Message   string                `json:"message,omitempty"`
}

// ComparisonResult - A* vs RRT 비교
type ComparisonResult struct {
	AStar          PlanResponse `json:"astar"`
	RRT            PlanResponse `json:"rrt"`
	LengthWinner   string       `json:"length_winner"`
	TimeWinner     string       `json:"time_winner"`
	NodesWinner    string       `json:"nodes_winner"`
	PercentShorter float64      `json:"percent_shorter"` // 승자가 더 짧은 비율 (%)
	PercentFaster  float64      `json:"percent_faster"`  // 시간 승자가 더 빠른 비율 (%)
}

// BenchmarkResult - 반복 실행 통계
type BenchmarkResult struct {
	Algorithm    string  `json:"algorithm"`
	Runs         int     `json:"runs"`
	Successes    int     `json:"successes"`
	SuccessRate  float64 `json:"success_rate"`
	MeanLength   float64 `json:"mean_length"`
	StdDevLength float64 `json:"stddev_length"`
	MinLength    float64 `json:"min_length"`
	MaxLength    float64 `json:"max_length"`
	MeanTimeMs   float64 `json:"mean_time_ms"`
	StdDevTimeMs float64 `json:"stddev_time_ms"`
	MeanNodes    float64 `json:"mean_nodes"`
	StdDevNodes  float64 `json:"stddev_nodes"`
}
