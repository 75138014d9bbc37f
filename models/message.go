package models

import (
	"time"

	"drone-nav-backend/algorithms"
)

// ========================================
// 메시지 타입 상수
// ========================================
const (
	// Server → Web
	MessageTypePlaybackPosition = "playback_position" // 재생 중 드론 위치
	MessageTypePlaybackComplete = "playback_complete" // 재생 완료
	MessageTypePathUpdate       = "path_update"       // 새 경로 계산됨
	MessageTypeSceneUpdate      = "scene_update"      // 장면(장애물) 변경
	MessageTypeSystemInfo       = "system_info"       // 시스템 정보

	// Web → Server
	MessageTypePlaybackStart = "playback_start" // 재생 요청
	MessageTypePlaybackStop  = "playback_stop"  // 재생 중지
)

// ========================================
// 공통 WebSocket 메시지 형식
// ========================================
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"` // Unix timestamp (ms)
}

// ========================================
// 재생 위치 데이터
// ========================================
type PlaybackPositionData struct {
	Position algorithms.Point3D   `json:"position"`
	Progress float64              `json:"progress"` // 0~1
	Trail    []algorithms.Point3D `json:"trail,omitempty"`
}

// PlaybackStatus - 재생 상태
type PlaybackStatus struct {
	Running    bool               `json:"running"`
	Progress   float64            `json:"progress"`
	Position   algorithms.Point3D `json:"position"`
	DurationMs int64              `json:"duration_ms"`
	TrailSize  int                `json:"trail_size"`
	StartedAt  time.Time          `json:"started_at"`
}

// PlaybackRequest - 재생 시작 요청
type PlaybackRequest struct {
	Path       []algorithms.Point3D `json:"path"`
	DurationMs int64                `json:"duration_ms"`
}

// ========================================
// 경로 데이터
// ========================================
type PathData struct {
	RunID     string               `json:"run_id"`
	Algorithm string               `json:"algorithm"` // "astar" | "rrt"
	Points    []algorithms.Point3D `json:"points"`
	Curve     []algorithms.Point3D `json:"curve,omitempty"`
	Length    float64              `json:"length"`
	CreatedAt time.Time            `json:"created_at"`
}

// ========================================
// 시스템 정보
// ========================================
type SystemInfo struct {
	ConnectedClients int       `json:"connected_clients"`
	ServerTime       time.Time `json:"server_time"`
	Message          string    `json:"message,omitempty"`
}
