package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"drone-nav-backend/algorithms"
	"drone-nav-backend/models"

	"github.com/google/uuid"
)

var (
	ErrNoActiveScene    = errors.New("no active scene")
	ErrObstacleNotFound = errors.New("obstacle not found")
	ErrOutOfBounds      = errors.New("position outside scene bounds")
)

// SceneManager handles the active planning scene and random obstacle generation
type SceneManager struct {
	mu     sync.RWMutex
	active *models.Scene

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewSceneManager creates a SceneManager holding the default scene
func NewSceneManager(seed int64) *SceneManager {
	return &SceneManager{
		active: DefaultScene(),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// DefaultScene - 기본 장면 (장애물 10개, (-8,-8,-8) → (8,8,8))
func DefaultScene() *models.Scene {
	box := func(x, y, z, sx, sy, sz float64) algorithms.Obstacle {
		return algorithms.Obstacle{
			Position: algorithms.Point3D{X: x, Y: y, Z: z},
			Size:     algorithms.Point3D{X: sx, Y: sy, Z: sz},
			Kind:     algorithms.ObstacleBox,
		}
	}
	sphere := func(x, y, z, d float64) algorithms.Obstacle {
		return algorithms.Obstacle{
			Position: algorithms.Point3D{X: x, Y: y, Z: z},
			Size:     algorithms.Point3D{X: d, Y: d, Z: d},
			Kind:     algorithms.ObstacleSphere,
		}
	}

	layout := []algorithms.Obstacle{
		box(0, 0, 0, 3, 3, 3),
		sphere(4, 4, 4, 4),
		box(-4, 2, 2, 2, 4, 2),
		box(6, -3, 0, 2.5, 2.5, 2.5),
		sphere(-6, 5, -3, 3),
		box(2, -5, 5, 2, 5, 2),
		sphere(-3, -2, 6, 3.5),
		box(5, 6, -5, 2, 2, 4),
		box(-7, -6, 3, 2, 3, 2),
		sphere(1, 7, 1, 3),
	}

	obstacles := make([]models.SceneObstacle, len(layout))
	for i, o := range layout {
		obstacles[i] = models.SceneObstacle{ID: fmt.Sprintf("obstacle-%d", i+1), Obstacle: o}
	}

	return &models.Scene{
		ID:        uuid.New().String(),
		Start:     algorithms.Point3D{X: -8, Y: -8, Z: -8},
		Goal:      algorithms.Point3D{X: 8, Y: 8, Z: 8},
		Bounds:    algorithms.DefaultBounds(),
		Obstacles: obstacles,
		CreatedAt: time.Now(),
	}
}

// Active returns a copy of the current scene
func (sm *SceneManager) Active() (*models.Scene, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.active == nil {
		return nil, ErrNoActiveScene
	}
	return sm.active.Clone(), nil
}

// Replace validates and installs a new scene
func (sm *SceneManager) Replace(scene *models.Scene) (*models.Scene, error) {
	next := scene.Clone()
	if err := normalizeScene(next); err != nil {
		return nil, err
	}
	next.ID = uuid.New().String()
	next.CreatedAt = time.Now()

	sm.mu.Lock()
	sm.active = next
	sm.mu.Unlock()

	return next.Clone(), nil
}

// normalizeScene - 장애물 검증, 빈 ID 채우기, 기본 영역 적용
func normalizeScene(scene *models.Scene) error {
	if scene.Bounds == (algorithms.Bounds{}) {
		scene.Bounds = algorithms.DefaultBounds()
	}
	for i := range scene.Obstacles {
		if err := scene.Obstacles[i].Validate(); err != nil {
			return fmt.Errorf("obstacle %d: %w", i, err)
		}
		if scene.Obstacles[i].ID == "" {
			scene.Obstacles[i].ID = uuid.New().String()
		}
	}
	if !scene.Bounds.Contains(scene.Start) {
		return fmt.Errorf("start: %w", ErrOutOfBounds)
	}
	if !scene.Bounds.Contains(scene.Goal) {
		return fmt.Errorf("goal: %w", ErrOutOfBounds)
	}
	return nil
}

// SetEndpoints updates start and/or goal of the active scene
func (sm *SceneManager) SetEndpoints(start, goal *algorithms.Point3D) (*models.Scene, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.active == nil {
		return nil, ErrNoActiveScene
	}
	if start != nil {
		if !sm.active.Bounds.Contains(*start) {
			return nil, fmt.Errorf("start: %w", ErrOutOfBounds)
		}
		sm.active.Start = *start
	}
	if goal != nil {
		if !sm.active.Bounds.Contains(*goal) {
			return nil, fmt.Errorf("goal: %w", ErrOutOfBounds)
		}
		sm.active.Goal = *goal
	}
	return sm.active.Clone(), nil
}

// AddObstacle adds a validated obstacle to the active scene
func (sm *SceneManager) AddObstacle(o algorithms.Obstacle) (models.SceneObstacle, error) {
	if err := o.Validate(); err != nil {
		return models.SceneObstacle{}, err
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.active == nil {
		return models.SceneObstacle{}, ErrNoActiveScene
	}

	added := models.SceneObstacle{ID: uuid.New().String(), Obstacle: o}
	sm.active.Obstacles = append(sm.active.Obstacles, added)
	return added, nil
}

// AddRandomObstacle - 위치 [-5,5], 축별 크기 [1,3], box/sphere 반반
func (sm *SceneManager) AddRandomObstacle() (models.SceneObstacle, error) {
	return sm.AddObstacle(sm.randomObstacle())
}

func (sm *SceneManager) randomObstacle() algorithms.Obstacle {
	sm.rngMu.Lock()
	defer sm.rngMu.Unlock()

	o := algorithms.Obstacle{
		Position: algorithms.Point3D{
			X: sm.rng.Float64()*10 - 5,
			Y: sm.rng.Float64()*10 - 5,
			Z: sm.rng.Float64()*10 - 5,
		},
		Size: algorithms.Point3D{
			X: 1 + sm.rng.Float64()*2,
			Y: 1 + sm.rng.Float64()*2,
			Z: 1 + sm.rng.Float64()*2,
		},
		Kind: algorithms.ObstacleBox,
	}
	if sm.rng.Float64() > 0.5 {
		o.Kind = algorithms.ObstacleSphere
	}
	return o
}

// RemoveObstacle removes an obstacle by ID
func (sm *SceneManager) RemoveObstacle(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.active == nil {
		return ErrNoActiveScene
	}

	for i, o := range sm.active.Obstacles {
		if o.ID == id {
			sm.active.Obstacles = append(sm.active.Obstacles[:i], sm.active.Obstacles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrObstacleNotFound, id)
}

// Reset restores the default scene
func (sm *SceneManager) Reset() *models.Scene {
	scene := DefaultScene()

	sm.mu.Lock()
	sm.active = scene
	sm.mu.Unlock()

	return scene.Clone()
}

// Clear removes the active scene
func (sm *SceneManager) Clear() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.active = nil
}

// IsPositionValid checks a position is inside the bounds and clear of obstacles
func (sm *SceneManager) IsPositionValid(pos algorithms.Point3D) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.active == nil {
		return false
	}
	if !sm.active.Bounds.Contains(pos) {
		return false
	}
	return !algorithms.CheckCollision(pos, sm.active.ObstacleList(), algorithms.DefaultDroneRadius)
}

// SceneMessage converts the active scene to the WebSocket payload
func (sm *SceneManager) SceneMessage() *models.SceneMessage {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.active == nil {
		return nil
	}

	return &models.SceneMessage{
		SceneID:   sm.active.ID,
		Start:     sm.active.Start,
		Goal:      sm.active.Goal,
		Bounds:    sm.active.Bounds,
		Obstacles: append([]models.SceneObstacle(nil), sm.active.Obstacles...),
	}
}
