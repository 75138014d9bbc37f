package models

import (
	"time"

	"drone-nav-backend/algorithms"
)

// SceneObstacle represents an obstacle placed in the scene
type SceneObstacle struct {
	ID                  string `json:"id" yaml:"id"`
	algorithms.Obstacle `yaml:",inline"`
}

// Scene represents the 3D planning volume shared by the planners
type Scene struct {
	ID        string             `json:"id"`
	Start     algorithms.Point3D `json:"start"`
	Goal      algorithms.Point3D `json:"goal"`
	Bounds    algorithms.Bounds  `json:"bounds"`
	Obstacles []SceneObstacle    `json:"obstacles"`
	CreatedAt time.Time          `json:"created_at"`
}

// ObstacleList strips IDs for the planners.
func (s *Scene) ObstacleList() []algorithms.Obstacle {
	obstacles := make([]algorithms.Obstacle, len(s.Obstacles))
	for i, o := range s.Obstacles {
		obstacles[i] = o.Obstacle
	}
	return obstacles
}

// Clone - 장애물 슬라이스까지 복사
func (s *Scene) Clone() *Scene {
	c := *s
	c.Obstacles = append([]SceneObstacle(nil), s.Obstacles...)
	return &c
}

// SceneMessage is the WebSocket payload for scene broadcasting
type SceneMessage struct {
	SceneID   string             `json:"scene_id"`
	Start     algorithms.Point3D `json:"start"`
	Goal      algorithms.Point3D `json:"goal"`
	Bounds    algorithms.Bounds  `json:"bounds"`
	Obstacles []SceneObstacle    `json:"obstacles"`
}
