package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"drone-nav-backend/algorithms"
	"drone-nav-backend/models"

	"gorm.io/gorm"
)

// RunStore - 경로 계획 실행 기록 조회/저장
type RunStore struct {
	db *gorm.DB
}

func NewRunStore(db *gorm.DB) *RunStore {
	return &RunStore{db: db}
}

// Ready - DB 연결 여부
func (s *RunStore) Ready() bool {
	return s != nil && s.db != nil
}

// Save - 일괄 저장
func (s *RunStore) Save(runs []models.PlanRun) error {
	if !s.Ready() {
		return ErrDatabaseNotReady
	}
	return s.db.CreateInBatches(runs, 100).Error
}

// Recent - 최근 실행 기록
func (s *RunStore) Recent(limit int) ([]models.PlanRun, error) {
	if !s.Ready() {
		return nil, ErrDatabaseNotReady
	}
	var runs []models.PlanRun
	err := s.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// ByAlgorithm - 알고리즘별 실행 기록
func (s *RunStore) ByAlgorithm(algorithm string, limit int) ([]models.PlanRun, error) {
	if !s.Ready() {
		return nil, ErrDatabaseNotReady
	}
	var runs []models.PlanRun
	err := s.db.Where("algorithm = ?", algorithm).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}

// Stats - 최근 hours 시간 동안 알고리즘별 통계
func (s *RunStore) Stats(hours int) ([]models.AlgorithmStats, error) {
	if !s.Ready() {
		return nil, ErrDatabaseNotReady
	}
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	var stats []models.AlgorithmStats
	err := s.db.Model(&models.PlanRun{}).
		Select(`algorithm,
			COUNT(*) AS runs,
			SUM(CASE WHEN success THEN 1 ELSE 0 END) AS successes,
			COALESCE(AVG(CASE WHEN success THEN path_length END), 0) AS avg_length,
			COALESCE(AVG(computation_time_ms), 0) AS avg_time_ms,
			COALESCE(AVG(nodes_explored), 0) AS avg_nodes`).
		Where("created_at >= ?", since).
		Group("algorithm").
		Order("algorithm").
		Scan(&stats).Error
	return stats, err
}

// RunLogBuffer - 실행 기록 버퍼 (비동기 일괄 처리)
type RunLogBuffer struct {
	store     *RunStore
	runs      []models.PlanRun
	mu        sync.Mutex
	flushSize int           // 일괄 저장 크기
	flushTime time.Duration // 자동 플러시 시간
	stopChan  chan struct{}
	done      chan struct{}
}

// NewRunLogBuffer - 버퍼 생성 및 자동 플러시 고루틴 시작
func NewRunLogBuffer(store *RunStore, flushSize int, flushInterval time.Duration) *RunLogBuffer {
	lb := &RunLogBuffer{
		store:     store,
		runs:      make([]models.PlanRun, 0, flushSize*2),
		flushSize: flushSize,
		flushTime: flushInterval,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}

	go lb.autoFlush()

	log.Printf("✅ 실행 로그 초기화 완료 (flushSize: %d, flushInterval: %v)", flushSize, flushInterval)
	return lb
}

// autoFlush - 주기적 저장
func (lb *RunLogBuffer) autoFlush() {
	defer close(lb.done)
	ticker := time.NewTicker(lb.flushTime)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lb.Flush()
		case <-lb.stopChan:
			lb.Flush() // 종료 시 남은 기록 저장
			return
		}
	}
}

// Add - 버퍼에 추가, 가득 차면 즉시 플러시
func (lb *RunLogBuffer) Add(run models.PlanRun) {
	if lb == nil {
		return
	}

	lb.mu.Lock()
	lb.runs = append(lb.runs, run)
	size := len(lb.runs)
	lb.mu.Unlock()

	if size >= lb.flushSize {
		go lb.Flush()
	}
}

// Pending - 저장 대기 중인 기록 수
func (lb *RunLogBuffer) Pending() int {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return len(lb.runs)
}

// Flush - 버퍼의 모든 기록을 DB에 저장
func (lb *RunLogBuffer) Flush() {
	lb.mu.Lock()
	if len(lb.runs) == 0 {
		lb.mu.Unlock()
		return
	}

	toSave := make([]models.PlanRun, len(lb.runs))
	copy(toSave, lb.runs)
	lb.runs = lb.runs[:0]
	lb.mu.Unlock()

	if !lb.store.Ready() {
		log.Printf("⚠️ DB 미연결, 실행 기록 %d개 버림", len(toSave))
		return
	}
	if err := lb.store.Save(toSave); err != nil {
		log.Printf("❌ 실행 기록 저장 실패: %v", err)
		return
	}
	log.Printf("💾 실행 기록 %d개 저장 완료", len(toSave))
}

// Stop - 남은 기록을 저장하고 종료
func (lb *RunLogBuffer) Stop() {
	if lb == nil {
		return
	}
	close(lb.stopChan)
	<-lb.done
	log.Println("🛑 실행 로그 종료")
}

// newPlanRun - 요청/결과로 실행 기록 생성
func newPlanRun(runID, sceneID, algorithm, source string, in plannerInput, result algorithms.PathResult) models.PlanRun {
	pathJSON, _ := json.Marshal(result.Path)
	return models.PlanRun{
		RunID:             runID,
		CreatedAt:         time.Now(),
		SceneID:           sceneID,
		Algorithm:         algorithm,
		StartX:            in.start.X,
		StartY:            in.start.Y,
		StartZ:            in.start.Z,
		GoalX:             in.goal.X,
		GoalY:             in.goal.Y,
		GoalZ:             in.goal.Z,
		ObstacleCount:     len(in.obstacles),
		StepSize:          in.stepSize(algorithm),
		AutoSmooth:        in.autoSmooth,
		Seed:              in.seed,
		Success:           result.Success,
		PathLength:        result.Length,
		Waypoints:         len(result.Path),
		NodesExplored:     result.NodesExplored,
		ComputationTimeMs: result.ComputationTimeMs,
		PathJSON:          string(pathJSON),
		Source:            source,
	}
}
