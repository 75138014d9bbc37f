package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes - REST API + WebSocket 라우트 등록
func RegisterRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Drone Nav 서버가 실행 중입니다.")
	})

	api := app.Group("/api")

	api.Get("/health", HandleHealth)

	// 경로 탐색
	api.Post("/plan", HandlePlan)
	api.Post("/compare", HandleCompare)
	api.Post("/benchmark", HandleBenchmark)

	// 장면
	sceneAPI := api.Group("/scene")
	sceneAPI.Get("/", HandleGetScene)
	sceneAPI.Put("/", HandleReplaceScene)
	sceneAPI.Post("/reset", HandleResetScene)
	sceneAPI.Put("/endpoints", HandleSetEndpoints)
	sceneAPI.Post("/obstacles", HandleAddObstacle)
	sceneAPI.Delete("/obstacles/:id", HandleRemoveObstacle)

	// 실행 기록
	runsAPI := api.Group("/runs")
	runsAPI.Get("/recent", HandleGetRecentRuns)
	runsAPI.Get("/algorithm", HandleGetRunsByAlgorithm)
	runsAPI.Get("/stats", HandleGetRunStats)

	// 재생
	playbackAPI := api.Group("/playback")
	playbackAPI.Post("/", HandleStartPlayback)
	playbackAPI.Delete("/", HandleStopPlayback)
	playbackAPI.Get("/", HandleGetPlayback)
	playbackAPI.Get("/trail", HandleGetPlaybackTrail)

	// WebSocket
	app.Use("/websocket", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/websocket/playback", websocket.New(HandlePlaybackWebSocket))
}

// HandleHealth - 서버 상태
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "OK",
		"clients":  Manager.GetClientCount(),
		"database": runStore.Ready(),
		"time":     time.Now().Format(time.RFC3339),
	})
}
