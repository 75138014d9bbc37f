package services

import (
	"fmt"
	"log"

	"drone-nav-backend/models"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultBenchmarkRuns = 10
	MaxBenchmarkRuns     = 200
)

// Benchmark repeats one planner and summarises the runs; RRT run i uses seed+i.
func (p *PlannerService) Benchmark(req models.PlanRequest) (*models.BenchmarkResult, error) {
	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = models.AlgorithmAStar
	}
	if err := ValidateAlgorithm(algorithm); err != nil {
		return nil, err
	}

	runs := req.Runs
	if runs <= 0 {
		runs = DefaultBenchmarkRuns
	}
	runs = min(runs, MaxBenchmarkRuns)

	in, err := p.resolve(req)
	if err != nil {
		return nil, err
	}

	var lengths []float64
	times := make([]float64, 0, runs)
	nodes := make([]float64, 0, runs)

	for i := 0; i < runs; i++ {
		result, err := run(algorithm, in, int64(i))
		if err != nil {
			return nil, err
		}

		logged := in
		logged.seed = in.seed + int64(i)
		p.runLog.Add(newPlanRun(uuid.New().String(), in.sceneID, algorithm, SourceBenchmark, logged, result))

		times = append(times, result.ComputationTimeMs)
		nodes = append(nodes, float64(result.NodesExplored))
		if result.Success {
			lengths = append(lengths, result.Length)
		}
	}

	summary := &models.BenchmarkResult{
		Algorithm:   algorithm,
		Runs:        runs,
		Successes:   len(lengths),
		SuccessRate: float64(len(lengths)) / float64(runs) * 100,
	}
	summary.MeanTimeMs, summary.StdDevTimeMs = meanStdDev(times)
	summary.MeanNodes, summary.StdDevNodes = meanStdDev(nodes)
	if len(lengths) > 0 {
		summary.MeanLength, summary.StdDevLength = meanStdDev(lengths)
		summary.MinLength = floats.Min(lengths)
		summary.MaxLength = floats.Max(lengths)
	}

	log.Printf("📊 %s 벤치마크 %d회: 성공률 %.1f%%, 평균 길이 %.2f, 평균 시간 %.2fms",
		algorithm, runs, summary.SuccessRate, summary.MeanLength, summary.MeanTimeMs)
	return summary, nil
}

// meanStdDev - 표본이 하나면 표준편차 0
func meanStdDev(xs []float64) (float64, float64) {
	switch len(xs) {
	case 0:
		return 0, 0
	case 1:
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}

// ValidateAlgorithm - 알 수 없는 알고리즘이면 ErrUnknownAlgorithm
func ValidateAlgorithm(algorithm string) error {
	switch algorithm {
	case "", models.AlgorithmAStar, models.AlgorithmRRT:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
}
