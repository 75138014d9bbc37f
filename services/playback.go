package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"drone-nav-backend/algorithms"
	"drone-nav-backend/models"
)

var ErrEmptyPath = errors.New("playback path is empty")

// PlaybackService - 계산된 경로를 따라 드론 위치를 재생
type PlaybackService struct {
	broadcastFunc   func(models.WebSocketMessage)
	defaultDuration time.Duration
	tick            time.Duration

	// 재생 상태
	running   bool
	path      []algorithms.Point3D
	duration  time.Duration
	startedAt time.Time
	progress  float64
	position  algorithms.Point3D
	trail     *algorithms.TrailTracker

	// 제어
	startMu  sync.Mutex
	stopChan chan struct{}
	done     chan struct{}
	mu       sync.RWMutex
}

// NewPlaybackService - 재생 서비스 생성
func NewPlaybackService(broadcastFunc func(models.WebSocketMessage), duration, tick time.Duration, trailCapacity int) *PlaybackService {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	if tick <= 0 {
		tick = 100 * time.Millisecond // 10Hz 업데이트
	}
	return &PlaybackService{
		broadcastFunc:   broadcastFunc,
		defaultDuration: duration,
		tick:            tick,
		trail:           algorithms.NewTrailTracker(trailCapacity),
	}
}

// Start begins playback; a running playback is restarted and the trail cleared.
// duration <= 0 uses the configured default.
func (s *PlaybackService) Start(path []algorithms.Point3D, duration time.Duration) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	if duration <= 0 {
		duration = s.defaultDuration
	}

	s.startMu.Lock()
	defer s.startMu.Unlock()

	s.Stop()

	dense := algorithms.InterpolatePathForMovement(path, algorithms.DefaultPointsPerSegment)

	s.mu.Lock()
	s.running = true
	s.path = dense
	s.duration = duration
	s.startedAt = time.Now()
	s.progress = 0
	s.position = dense[0]
	s.trail.Clear()
	s.trail.AddPosition(dense[0])
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	log.Printf("🚁 경로 재생 시작: 웨이포인트 %d개 → 보간 %d개, %v", len(path), len(dense), duration)

	go s.runPlayback(stop, done)
	return nil
}

// Stop halts a running playback; returns false if nothing was running
func (s *PlaybackService) Stop() bool {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return false
	}
	s.running = false
	close(s.stopChan)
	done := s.done
	s.mu.Unlock()

	<-done
	log.Println("🛑 경로 재생 중지")
	return true
}

// runPlayback - 재생 메인 루프
func (s *PlaybackService) runPlayback(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if finished := s.update(); finished {
				return
			}
		}
	}
}

// update - 진행률 갱신 후 위치 브로드캐스트, 완료 시 true
func (s *PlaybackService) update() bool {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return true
	}

	progress := float64(time.Since(s.startedAt)) / float64(s.duration)
	if progress > 1 {
		progress = 1
	}
	if pos, ok := algorithms.PositionAtProgress(s.path, progress); ok {
		s.position = pos
		s.trail.AddPosition(pos)
	}
	s.progress = progress

	msgs := []models.WebSocketMessage{{
		Type: models.MessageTypePlaybackPosition,
		Data: models.PlaybackPositionData{
			Position: s.position,
			Progress: progress,
		},
		Timestamp: time.Now().UnixMilli(),
	}}

	finished := progress >= 1
	if finished {
		s.running = false
		msgs = append(msgs, models.WebSocketMessage{
			Type: models.MessageTypePlaybackComplete,
			Data: models.PlaybackPositionData{
				Position: s.position,
				Progress: 1,
				Trail:    s.trail.SmoothedTrail(algorithms.DefaultTrailWindow),
			},
			Timestamp: time.Now().UnixMilli(),
		})
	}
	s.mu.Unlock()

	for _, msg := range msgs {
		s.broadcast(msg)
	}
	if finished {
		log.Println("🏁 경로 재생 완료")
	}
	return finished
}

func (s *PlaybackService) broadcast(msg models.WebSocketMessage) {
	if s.broadcastFunc == nil {
		return
	}
	s.broadcastFunc(msg)
}

// Status - 현재 재생 상태
func (s *PlaybackService) Status() models.PlaybackStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.PlaybackStatus{
		Running:    s.running,
		Progress:   s.progress,
		Position:   s.position,
		DurationMs: s.duration.Milliseconds(),
		TrailSize:  s.trail.Len(),
		StartedAt:  s.startedAt,
	}
}

// Trail - 지나온 위치 기록 (복사본)
func (s *PlaybackService) Trail() []algorithms.Point3D {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trail.Trail()
}

// SmoothedTrail - 이동 평균으로 부드럽게 만든 기록
func (s *PlaybackService) SmoothedTrail(window int) []algorithms.Point3D {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trail.SmoothedTrail(window)
}
