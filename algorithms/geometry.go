package algorithms

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

const (
	// DefaultDroneRadius - 드론 충돌 반경
	DefaultDroneRadius = 0.5

	// DefaultPointTolerance - 목표 도달 판정 허용 오차
	DefaultPointTolerance = 0.1

	// DefaultLineOfSightSamples - 가시선 검사 샘플 수
	DefaultLineOfSightSamples = 20

	minMagnitude = 0.001
)

var (
	ErrNegativeSize        = errors.New("obstacle size must be non-negative")
	ErrUnknownObstacleKind = errors.New("unknown obstacle kind")
)

type Point3D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func (p Point3D) vec() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

func fromVec(v r3.Vector) Point3D {
	return Point3D{X: v.X, Y: v.Y, Z: v.Z}
}

// Lerp - p에서 q로 t 비율만큼 선형 보간
func (p Point3D) Lerp(q Point3D, t float64) Point3D {
	return fromVec(p.vec().Add(q.vec().Sub(p.vec()).Mul(t)))
}

type ObstacleKind string

const (
	ObstacleBox    ObstacleKind = "box"
	ObstacleSphere ObstacleKind = "sphere"
)

// Obstacle - 정적 장애물
// Box: Size는 축별 전체 크기. Sphere: Size.X가 지름.
type Obstacle struct {
	Position Point3D      `json:"position" yaml:"position"`
	Size     Point3D      `json:"size" yaml:"size"`
	Kind     ObstacleKind `json:"type" yaml:"type"`
}

// NewObstacle - 검증된 장애물 생성
func NewObstacle(kind ObstacleKind, position, size Point3D) (Obstacle, error) {
	o := Obstacle{Position: position, Size: size, Kind: kind}
	if err := o.Validate(); err != nil {
		return Obstacle{}, err
	}
	return o, nil
}

// Validate - 종류와 크기(음수 불가) 검사
func (o Obstacle) Validate() error {
	switch o.Kind {
	case ObstacleBox, ObstacleSphere:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownObstacleKind, o.Kind)
	}
	if o.Size.X < 0 || o.Size.Y < 0 || o.Size.Z < 0 {
		return fmt.Errorf("%w: (%.2f, %.2f, %.2f)", ErrNegativeSize, o.Size.X, o.Size.Y, o.Size.Z)
	}
	return nil
}

// Radius - 구의 반지름 (Size.X / 2)
func (o Obstacle) Radius() float64 {
	return o.Size.X / 2
}

// Distance - 유클리드 거리
func Distance(a, b Point3D) float64 {
	return b.vec().Sub(a.vec()).Norm()
}

// PointsEqual - 축별 차이가 모두 tolerance 미만이면 true
func PointsEqual(a, b Point3D, tolerance float64) bool {
	return math.Abs(a.X-b.X) < tolerance &&
		math.Abs(a.Y-b.Y) < tolerance &&
		math.Abs(a.Z-b.Z) < tolerance
}

// CheckCollision - 드론 반경만큼 부풀린 점이 장애물과 겹치는지 검사
func CheckCollision(point Point3D, obstacles []Obstacle, droneRadius float64) bool {
	for _, obs := range obstacles {
		switch obs.Kind {
		case ObstacleBox:
			hx := obs.Size.X/2 + droneRadius
			hy := obs.Size.Y/2 + droneRadius
			hz := obs.Size.Z/2 + droneRadius
			if point.X >= obs.Position.X-hx && point.X <= obs.Position.X+hx &&
				point.Y >= obs.Position.Y-hy && point.Y <= obs.Position.Y+hy &&
				point.Z >= obs.Position.Z-hz && point.Z <= obs.Position.Z+hz {
				return true
			}
		case ObstacleSphere:
			if Distance(point, obs.Position) < obs.Radius()+droneRadius {
				return true
			}
		}
	}
	return false
}

// PointToLineDistance - 점에서 선분까지 거리 (선분 끝점으로 클램프)
func PointToLineDistance(point, lineStart, lineEnd Point3D) float64 {
	d := lineEnd.vec().Sub(lineStart.vec())
	lenSq := d.Norm2()
	if lenSq == 0 {
		return Distance(point, lineStart)
	}

	t := point.vec().Sub(lineStart.vec()).Dot(d) / lenSq
	t = math.Max(0, math.Min(1, t))

	closest := lineStart.vec().Add(d.Mul(t))
	return point.vec().Sub(closest).Norm()
}

// HasLineOfSight - from~to 구간을 samples+1개 점으로 샘플링, 충돌 없으면 true
// 샘플 간격보다 좁은 틈은 놓칠 수 있음
func HasLineOfSight(from, to Point3D, obstacles []Obstacle, samples int) bool {
	if samples <= 0 {
		samples = 1
	}
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		if CheckCollision(from.Lerp(to, t), obstacles, DefaultDroneRadius) {
			return false
		}
	}
	return true
}
