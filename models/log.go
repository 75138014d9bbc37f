package models

import (
	"time"
)

// PlanRun - 경로 계획 실행 기록
type PlanRun struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RunID     string    `gorm:"size:36;index" json:"run_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	SceneID   string    `gorm:"size:36;index" json:"scene_id"`
	Algorithm string    `gorm:"size:16;index" json:"algorithm"` // "astar" | "rrt"

	// 요청
	StartX        float64 `json:"start_x"`
	StartY        float64 `json:"start_y"`
	StartZ        float64 `json:"start_z"`
	GoalX         float64 `json:"goal_x"`
	GoalY         float64 `json:"goal_y"`
	GoalZ         float64 `json:"goal_z"`
	ObstacleCount int     `json:"obstacle_count"`
	StepSize      float64 `json:"step_size"`
	AutoSmooth    bool    `json:"auto_smooth"`
	Seed          int64   `json:"seed"`

	// 결과
	Success           bool    `json:"success"`
	PathLength        float64 `json:"path_length"`
	Waypoints         int     `json:"waypoints"`
	NodesExplored     int     `json:"nodes_explored"`
	ComputationTimeMs float64 `json:"computation_time_ms"`

	// 메타데이터
	PathJSON string `gorm:"type:text" json:"path_json"` // 최종 경로 JSON
	Source   string `gorm:"size:16" json:"source"`      // "plan" | "compare" | "benchmark"
}

// AlgorithmStats - 알고리즘별 집계
type AlgorithmStats struct {
	Algorithm string  `json:"algorithm"`
	Runs      int64   `json:"runs"`
	Successes int64   `json:"successes"`
	AvgLength float64 `json:"avg_length"`
	AvgTimeMs float64 `json:"avg_time_ms"`
	AvgNodes  float64 `json:"avg_nodes"`
}
