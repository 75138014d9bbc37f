package handlers

import (
	"strconv"

	"drone-nav-backend/services"

	"github.com/gofiber/fiber/v2"
)

func queryLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	return min(limit, 1000)
}

// HandleGetRecentRuns - 최근 실행 기록 조회
func HandleGetRecentRuns(c *fiber.Ctx) error {
	runs, err := runStore.Recent(queryLimit(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(runs),
		"runs":    runs,
	})
}

// HandleGetRunsByAlgorithm - 알고리즘별 실행 기록 조회
func HandleGetRunsByAlgorithm(c *fiber.Ctx) error {
	algorithm := c.Query("algorithm")
	if algorithm == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "algorithm parameter is required",
		})
	}
	if err := services.ValidateAlgorithm(algorithm); err != nil {
		return errorResponse(c, err)
	}

	runs, err := runStore.ByAlgorithm(algorithm, queryLimit(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"count":     len(runs),
		"algorithm": algorithm,
		"runs":      runs,
	})
}

// HandleGetRunStats - 알고리즘별 통계 조회
func HandleGetRunStats(c *fiber.Ctx) error {
	hours, err := strconv.Atoi(c.Query("hours", "24"))
	if err != nil || hours <= 0 {
		hours = 24
	}

	stats, err := runStore.Stats(hours)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"hours":   hours,
		"stats":   stats,
	})
}
