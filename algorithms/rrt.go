package algorithms

import (
	"math/rand"
	"time"
)

const (
	DefaultRRTMaxIterations = 2000
	DefaultRRTStepSize      = 0.8
	DefaultGoalBias         = 0.1
)

// RandomSource - RRT 샘플링 난수원 (*rand.Rand 호환)
type RandomSource interface {
	Float64() float64
}

type RRTOptions struct {
	Bounds        Bounds
	MaxIterations int
	StepSize      float64
	AutoSmooth    bool
	GoalBias      float64
	Rand          RandomSource
}

func DefaultRRTOptions() RRTOptions {
	return RRTOptions{
		Bounds:        DefaultBounds(),
		MaxIterations: DefaultRRTMaxIterations,
		StepSize:      DefaultRRTStepSize,
		AutoSmooth:    true,
		GoalBias:      DefaultGoalBias,
	}
}

// treeNode - RRT 트리 노드
type treeNode struct {
	point  Point3D
	parent int
}

// RRTPathfinding - RRT 경로 탐색
func RRTPathfinding(start, goal Point3D, obstacles []Obstacle, opts RRTOptions) PathResult {
	started := time.Now()

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if opts.StepSize <= 0 {
		return failureResult(started, 0, nil)
	}

	tree := []treeNode{{point: start, parent: noParent}}
	explored := []Point3D{start}
	nodesExplored := 0

	for i := 0; i < opts.MaxIterations; i++ {
		nodesExplored++

		target := sampleTarget(rng, goal, opts)
		nearestIdx := nearest(tree, target)
		newPoint := steer(tree[nearestIdx].point, target, opts.StepSize)

		if CheckCollision(newPoint, obstacles, DefaultDroneRadius) {
			continue
		}

		tree = append(tree, treeNode{point: newPoint, parent: nearestIdx})
		explored = append(explored, newPoint)

		if Distance(newPoint, goal) < opts.StepSize*2 {
			rawPath := reconstructTreePath(tree, len(tree)-1)
			rawPath = append(rawPath, goal)
			return successResult(rawPath, obstacles, opts.AutoSmooth, started, nodesExplored, explored)
		}
	}

	return failureResult(started, nodesExplored, explored)
}

// sampleTarget - goal bias 확률로 목표점, 아니면 영역 내 균등 샘플
func sampleTarget(rng RandomSource, goal Point3D, opts RRTOptions) Point3D {
	if rng.Float64() < opts.GoalBias {
		return goal
	}
	b := opts.Bounds
	return Point3D{
		X: b.Min.X + rng.Float64()*(b.Max.X-b.Min.X),
		Y: b.Min.Y + rng.Float64()*(b.Max.Y-b.Min.Y),
		Z: b.Min.Z + rng.Float64()*(b.Max.Z-b.Min.Z),
	}
}

// nearest - 선형 탐색, 동률이면 먼저 추가된 노드
func nearest(tree []treeNode, target Point3D) int {
	best := 0
	bestDist := Distance(target, tree[0].point)
	for i := 1; i < len(tree); i++ {
		if d := Distance(target, tree[i].point); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// steer - from에서 to 방향으로 최대 stepSize만큼 이동
func steer(from, to Point3D, stepSize float64) Point3D {
	dist := Distance(from, to)
	if dist < stepSize || dist < minMagnitude {
		return to
	}
	return from.Lerp(to, stepSize/dist)
}

func reconstructTreePath(tree []treeNode, idx int) []Point3D {
	var path []Point3D
	for i := idx; i != noParent; i = tree[i].parent {
		path = append(path, tree[i].point)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
