package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"drone-nav-backend/algorithms"
	"drone-nav-backend/models"

	"github.com/google/uuid"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrInvalidStepSize  = errors.New("step size must be positive")
)

const (
	SourcePlan      = "plan"
	SourceCompare   = "compare"
	SourceBenchmark = "benchmark"
)

// plannerInput - 요청과 활성 장면을 합친 실제 계획 입력
type plannerInput struct {
	sceneID       string
	start         algorithms.Point3D
	goal          algorithms.Point3D
	obstacles     []algorithms.Obstacle
	bounds        algorithms.Bounds
	astarStep     float64
	rrtStep       float64
	maxIterations int
	autoSmooth    bool
	seed          int64
	curveSegments int
	animate       bool
}

func (in plannerInput) stepSize(algorithm string) float64 {
	if algorithm == models.AlgorithmRRT {
		return in.rrtStep
	}
	return in.astarStep
}

// PlannerService runs A* and RRT against the active scene and records every run
type PlannerService struct {
	scenes        *SceneManager
	runLog        *RunLogBuffer
	playback      *PlaybackService
	broadcastFunc func(models.WebSocketMessage)
}

// NewPlannerService - runLog, playback, broadcastFunc는 nil 허용
func NewPlannerService(scenes *SceneManager, runLog *RunLogBuffer, playback *PlaybackService, broadcastFunc func(models.WebSocketMessage)) *PlannerService {
	return &PlannerService{
		scenes:        scenes,
		runLog:        runLog,
		playback:      playback,
		broadcastFunc: broadcastFunc,
	}
}

// resolve fills unset request fields from the active scene and planner defaults
func (p *PlannerService) resolve(req models.PlanRequest) (plannerInput, error) {
	in := plannerInput{
		bounds:        algorithms.DefaultBounds(),
		astarStep:     algorithms.DefaultAStarStepSize,
		rrtStep:       algorithms.DefaultRRTStepSize,
		maxIterations: algorithms.DefaultRRTMaxIterations,
		autoSmooth:    true,
		seed:          time.Now().UnixNano(),
		curveSegments: req.CurveSegments,
		animate:       req.Animate,
	}

	scene, err := p.scenes.Active()
	if err != nil && (req.Start == nil || req.Goal == nil) {
		return in, err
	}
	if scene != nil {
		in.sceneID = scene.ID
		in.start = scene.Start
		in.goal = scene.Goal
		in.bounds = scene.Bounds
		in.obstacles = scene.ObstacleList()
	}

	if req.Start != nil {
		in.start = *req.Start
	}
	if req.Goal != nil {
		in.goal = *req.Goal
	}
	if req.Bounds != nil {
		in.bounds = *req.Bounds
	}
	if req.Obstacles != nil {
		in.sceneID = ""
		in.obstacles = make([]algorithms.Obstacle, len(req.Obstacles))
		for i, o := range req.Obstacles {
			if err := o.Validate(); err != nil {
				return in, fmt.Errorf("obstacle %d: %w", i, err)
			}
			in.obstacles[i] = o.Obstacle
		}
	}
	if req.StepSize != nil {
		if *req.StepSize <= 0 {
			return in, fmt.Errorf("%w: %v", ErrInvalidStepSize, *req.StepSize)
		}
		in.astarStep = *req.StepSize
		in.rrtStep = *req.StepSize
	}
	if req.MaxIterations != nil {
		in.maxIterations = max(0, *req.MaxIterations)
	}
	if req.AutoSmooth != nil {
		in.autoSmooth = *req.AutoSmooth
	}
	if req.Seed != nil {
		in.seed = *req.Seed
	}
	return in, nil
}

// run dispatches to a planner; seedOffset lets benchmarks vary the RRT seed
func run(algorithm string, in plannerInput, seedOffset int64) (algorithms.PathResult, error) {
	switch algorithm {
	case models.AlgorithmAStar:
		return algorithms.AStarPathfinding(in.start, in.goal, in.obstacles, algorithms.AStarOptions{
			Bounds:     in.bounds,
			StepSize:   in.astarStep,
			AutoSmooth: in.autoSmooth,
		}), nil
	case models.AlgorithmRRT:
		return algorithms.RRTPathfinding(in.start, in.goal, in.obstacles, algorithms.RRTOptions{
			Bounds:        in.bounds,
			MaxIterations: in.maxIterations,
			StepSize:      in.rrtStep,
			AutoSmooth:    in.autoSmooth,
			GoalBias:      algorithms.DefaultGoalBias,
			Rand:          rand.New(rand.NewSource(in.seed + seedOffset)),
		}), nil
	default:
		return algorithms.PathResult{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// execute runs one planner, logs the run and builds the response
func (p *PlannerService) execute(algorithm string, in plannerInput, source string) (models.PlanResponse, error) {
	result, err := run(algorithm, in, 0)
	if err != nil {
		return models.PlanResponse{}, err
	}

	runID := uuid.New().String()
	p.runLog.Add(newPlanRun(runID, in.sceneID, algorithm, source, in, result))

	resp := models.PlanResponse{
		Success:   result.Success,
		RunID:     runID,
		SceneID:   in.sceneID,
		Algorithm: algorithm,
		Result:    result,
	}
	if result.Success {
		if in.curveSegments > 0 {
			resp.Curve = algorithms.CreateSmoothCurve(result.Path, in.curveSegments)
		}
		resp.Message = fmt.Sprintf("경로 탐색 성공: %d개 웨이포인트", len(result.Path))
	} else {
		resp.Message = "경로를 찾을 수 없습니다"
	}

	log.Printf("📍 %s 경로 탐색: success=%v length=%.2f nodes=%d (%.2fms)",
		algorithm, result.Success, result.Length, result.NodesExplored, result.ComputationTimeMs)
	return resp, nil
}

// Plan runs a single planner
func (p *PlannerService) Plan(req models.PlanRequest) (*models.PlanResponse, error) {
	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = models.AlgorithmAStar
	}
	if err := ValidateAlgorithm(algorithm); err != nil {
		return nil, err
	}

	in, err := p.resolve(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.execute(algorithm, in, SourcePlan)
	if err != nil {
		return nil, err
	}

	if resp.Success {
		p.publishPath(resp)
		if in.animate && p.playback != nil {
			p.playback.Start(resp.Result.Path, 0)
		}
	}
	return &resp, nil
}

// Compare runs both planners on the same input
func (p *PlannerService) Compare(req models.PlanRequest) (*models.ComparisonResult, error) {
	in, err := p.resolve(req)
	if err != nil {
		return nil, err
	}

	astar, err := p.execute(models.AlgorithmAStar, in, SourceCompare)
	if err != nil {
		return nil, err
	}
	rrt, err := p.execute(models.AlgorithmRRT, in, SourceCompare)
	if err != nil {
		return nil, err
	}

	cmp := CompareResults(astar, rrt)
	log.Printf("⚖️ 비교 결과: length=%s time=%s nodes=%s", cmp.LengthWinner, cmp.TimeWinner, cmp.NodesWinner)
	return &cmp, nil
}

// CompareResults picks per-metric winners; ties go to RRT.
func CompareResults(astar, rrt models.PlanResponse) models.ComparisonResult {
	a, r := astar.Result, rrt.Result
	cmp := models.ComparisonResult{
		AStar:        astar,
		RRT:          rrt,
		LengthWinner: models.WinnerNone,
		TimeWinner:   lowerWins(a.ComputationTimeMs, r.ComputationTimeMs),
		NodesWinner:  lowerWins(float64(a.NodesExplored), float64(r.NodesExplored)),
	}
	if cmp.TimeWinner == models.AlgorithmAStar {
		cmp.PercentFaster = percentLess(a.ComputationTimeMs, r.ComputationTimeMs)
	} else {
		cmp.PercentFaster = percentLess(r.ComputationTimeMs, a.ComputationTimeMs)
	}

	switch {
	case a.Success && r.Success:
		cmp.LengthWinner = lowerWins(a.Length, r.Length)
		if cmp.LengthWinner == models.AlgorithmAStar {
			cmp.PercentShorter = percentLess(a.Length, r.Length)
		} else {
			cmp.PercentShorter = percentLess(r.Length, a.Length)
		}
	case a.Success:
		cmp.LengthWinner = models.AlgorithmAStar
	case r.Success:
		cmp.LengthWinner = models.AlgorithmRRT
	}
	return cmp
}

func lowerWins(astar, rrt float64) string {
	if astar < rrt {
		return models.AlgorithmAStar
	}
	return models.AlgorithmRRT
}

func percentLess(winner, loser float64) float64 {
	if loser == 0 {
		return 0
	}
	return (1 - winner/loser) * 100
}

// publishPath - path_update 브로드캐스트
func (p *PlannerService) publishPath(resp models.PlanResponse) {
	if p.broadcastFunc == nil {
		return
	}

	p.broadcastFunc(models.WebSocketMessage{
		Type: models.MessageTypePathUpdate,
		Data: models.PathData{
			RunID:     resp.RunID,
			Algorithm: resp.Algorithm,
			Points:    resp.Result.Path,
			Curve:     resp.Curve,
			Length:    resp.Result.Length,
			CreatedAt: time.Now(),
		},
		Timestamp: time.Now().UnixMilli(),
	})
}
