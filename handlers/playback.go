package handlers

import (
	"time"

	"drone-nav-backend/models"

	"github.com/gofiber/fiber/v2"
)

// HandleStartPlayback - 경로 재생 시작 (재생 중이면 재시작)
func HandleStartPlayback(c *fiber.Ctx) error {
	var req models.PlaybackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "잘못된 요청 형식입니다",
		})
	}

	if err := playbackService.Start(req.Path, time.Duration(req.DurationMs)*time.Millisecond); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(playbackService.Status())
}

// HandleStopPlayback - 재생 중지
func HandleStopPlayback(c *fiber.Ctx) error {
	stopped := playbackService.Stop()
	return c.JSON(fiber.Map{
		"success": true,
		"stopped": stopped,
		"status":  playbackService.Status(),
	})
}

// HandleGetPlayback - 재생 상태 조회
func HandleGetPlayback(c *fiber.Ctx) error {
	return c.JSON(playbackService.Status())
}

// HandleGetPlaybackTrail - 지나온 경로 (?window=n 이면 이동 평균)
func HandleGetPlaybackTrail(c *fiber.Ctx) error {
	window := c.QueryInt("window", 0)

	trail := playbackService.Trail()
	if window > 0 {
		trail = playbackService.SmoothedTrail(window)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"window":  window,
		"count":   len(trail),
		"trail":   trail,
	})
}
