package algorithms

import (
	"math"
	"time"
)

// MaxAStarExpansions bounds the worst-case latency of a single A* call.
const MaxAStarExpansions = 10000

const DefaultAStarStepSize = 1.0

// Bounds - 축 정렬 탐색 영역
type Bounds struct {
	Min Point3D `json:"min" yaml:"min"`
	Max Point3D `json:"max" yaml:"max"`
}

// CubeBounds - 모든 축에 같은 [min, max] 범위
func CubeBounds(min, max float64) Bounds {
	return Bounds{
		Min: Point3D{X: min, Y: min, Z: min},
		Max: Point3D{X: max, Y: max, Z: max},
	}
}

func DefaultBounds() Bounds {
	return CubeBounds(-10, 10)
}

// Contains - inclusive on both ends
func (b Bounds) Contains(p Point3D) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

type AStarOptions struct {
	Bounds     Bounds
	StepSize   float64
	AutoSmooth bool
}

func DefaultAStarOptions() AStarOptions {
	return AStarOptions{
		Bounds:     DefaultBounds(),
		StepSize:   DefaultAStarStepSize,
		AutoSmooth: true,
	}
}

// Node - A* 노드 (arena 인덱스로 부모 참조)
type Node struct {
	Point  Point3D
	G      float64
	H      float64
	F      float64
	Parent int
}

const noParent = -1

type gridKey struct {
	X, Y, Z int64
}

// pointKey - 0.1 단위 격자 키 (step size와 무관)
func pointKey(p Point3D) gridKey {
	round := func(v float64) int64 { return int64(math.Floor(v*10 + 0.5)) }
	return gridKey{X: round(p.X), Y: round(p.Y), Z: round(p.Z)}
}

// 18방향: 두 축은 {-1,0,1}, 나머지 한 축은 0
var directions = [18]Point3D{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
	{X: 1, Y: 1}, {X: 1, Y: -1},
	{X: -1, Y: 1}, {X: -1, Y: -1},
	{X: 1, Z: 1}, {X: 1, Z: -1},
	{X: -1, Z: 1}, {X: -1, Z: -1},
	{Y: 1, Z: 1}, {Y: 1, Z: -1},
	{Y: -1, Z: 1}, {Y: -1, Z: -1},
}

// AStarPathfinding - 격자 A* 경로 탐색
func AStarPathfinding(start, goal Point3D, obstacles []Obstacle, opts AStarOptions) PathResult {
	started := time.Now()
	if opts.StepSize <= 0 {
		return failureResult(started, 0, nil)
	}

	arena := []Node{{
		Point:  start,
		G:      0,
		H:      Distance(start, goal),
		F:      Distance(start, goal),
		Parent: noParent,
	}}
	openList := []int{0}
	openIndex := map[gridKey]int{pointKey(start): 0}
	closedSet := make(map[gridKey]bool)

	var explored []Point3D
	nodesExplored := 0

	for len(openList) > 0 && nodesExplored < MaxAStarExpansions {
		// F 값 작은 노드 찾기 (동률이면 먼저 스캔된 노드)
		currentPos := 0
		for i := 1; i < len(openList); i++ {
			if arena[openList[i]].F < arena[openList[currentPos]].F {
				currentPos = i
			}
		}
		currentIdx := openList[currentPos]
		current := arena[currentIdx]
		nodesExplored++
		explored = append(explored, current.Point)

		if PointsEqual(current.Point, goal, opts.StepSize) {
			rawPath := reconstructPath(arena, currentIdx)
			// 시작점이 이미 목표 근처면 [start, goal]
			if len(rawPath) < 2 {
				rawPath = append(rawPath, goal)
			}
			return successResult(rawPath, obstacles, opts.AutoSmooth, started, nodesExplored, explored)
		}

		openList = append(openList[:currentPos], openList[currentPos+1:]...)
		currentKey := pointKey(current.Point)
		delete(openIndex, currentKey)
		closedSet[currentKey] = true

		for _, dir := range directions {
			neighbor := Point3D{
				X: current.Point.X + dir.X*opts.StepSize,
				Y: current.Point.Y + dir.Y*opts.StepSize,
				Z: current.Point.Z + dir.Z*opts.StepSize,
			}
			if !opts.Bounds.Contains(neighbor) {
				continue
			}
			key := pointKey(neighbor)
			if closedSet[key] {
				continue
			}
			if CheckCollision(neighbor, obstacles, DefaultDroneRadius) {
				continue
			}

			g := current.G + Distance(current.Point, neighbor)
			h := Distance(neighbor, goal)

			if idx, ok := openIndex[key]; ok {
				if g < arena[idx].G {
					arena[idx].G = g
					arena[idx].F = g + arena[idx].H
					arena[idx].Parent = currentIdx
				}
				continue
			}

			arena = append(arena, Node{Point: neighbor, G: g, H: h, F: g + h, Parent: currentIdx})
			openIndex[key] = len(arena) - 1
			openList = append(openList, len(arena)-1)
		}
	}

	return failureResult(started, nodesExplored, explored)
}

func reconstructPath(arena []Node, idx int) []Point3D {
	var path []Point3D
	for i := idx; i != noParent; i = arena[i].Parent {
		path = append(path, arena[i].Point)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
