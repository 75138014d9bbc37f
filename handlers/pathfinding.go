package handlers

import (
	"errors"
	"log"

	"drone-nav-backend/algorithms"
	"drone-nav-backend/models"
	"drone-nav-backend/services"

	"github.com/gofiber/fiber/v2"
)

var (
	plannerService  *services.PlannerService
	sceneManager    *services.SceneManager
	playbackService *services.PlaybackService
	runStore        *services.RunStore
)

// InitServices - 핸들러가 사용할 서비스 연결
func InitServices(planner *services.PlannerService, scenes *services.SceneManager, playback *services.PlaybackService, store *services.RunStore) {
	plannerService = planner
	sceneManager = scenes
	playbackService = playback
	runStore = store
	log.Println("✅ 핸들러 서비스 연결 완료")
}

// errorStatus maps service errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrUnknownAlgorithm),
		errors.Is(err, services.ErrInvalidStepSize),
		errors.Is(err, services.ErrOutOfBounds),
		errors.Is(err, services.ErrEmptyPath),
		errors.Is(err, algorithms.ErrNegativeSize),
		errors.Is(err, algorithms.ErrUnknownObstacleKind):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrObstacleNotFound),
		errors.Is(err, services.ErrNoActiveScene):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrDatabaseNotReady):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func parsePlanRequest(c *fiber.Ctx) (models.PlanRequest, error) {
	var req models.PlanRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	err := c.BodyParser(&req)
	return req, err
}

// HandlePlan - 단일 알고리즘 경로 탐색
func HandlePlan(c *fiber.Ctx) error {
	req, err := parsePlanRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.PlanResponse{
			Success: false,
			Message: "잘못된 요청 형식입니다",
		})
	}

	resp, err := plannerService.Plan(req)
	if err != nil {
		log.Printf("❌ 경로 탐색 실패: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// HandleCompare - A* vs RRT 비교
func HandleCompare(c *fiber.Ctx) error {
	req, err := parsePlanRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "잘못된 요청 형식입니다",
		})
	}

	result, err := plannerService.Compare(req)
	if err != nil {
		log.Printf("❌ 비교 실패: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

// HandleBenchmark - 반복 실행 통계
func HandleBenchmark(c *fiber.Ctx) error {
	req, err := parsePlanRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "잘못된 요청 형식입니다",
		})
	}

	result, err := plannerService.Benchmark(req)
	if err != nil {
		log.Printf("❌ 벤치마크 실패: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"benchmark": result,
	})
}
