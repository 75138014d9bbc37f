package handlers

import (
	"log"
	"time"

	"drone-nav-backend/algorithms"
	"drone-nav-backend/models"

	"github.com/gofiber/fiber/v2"
)

// EndpointsRequest - 시작/목표 변경 (nil이면 유지)
type EndpointsRequest struct {
	Start *algorithms.Point3D `json:"start,omitempty"`
	Goal  *algorithms.Point3D `json:"goal,omitempty"`
}

// broadcastScene - 장면 변경을 모든 웹 클라이언트에 알림
func broadcastScene() {
	scene := sceneManager.SceneMessage()
	if scene == nil {
		return
	}
	Manager.BroadcastMessage(models.WebSocketMessage{
		Type:      models.MessageTypeSceneUpdate,
		Data:      scene,
		Timestamp: time.Now().UnixMilli(),
	})
}

// HandleGetScene - 현재 장면 조회
func HandleGetScene(c *fiber.Ctx) error {
	scene, err := sceneManager.Active()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(scene)
}

// HandleReplaceScene - 장면 전체 교체
func HandleReplaceScene(c *fiber.Ctx) error {
	var scene models.Scene
	if err := c.BodyParser(&scene); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "잘못된 요청 형식입니다",
		})
	}

	replaced, err := sceneManager.Replace(&scene)
	if err != nil {
		return errorResponse(c, err)
	}

	log.Printf("🗺️ 장면 교체: %s (장애물 %d개)", replaced.ID, len(replaced.Obstacles))
	broadcastScene()
	return c.JSON(replaced)
}

// HandleResetScene - 기본 장면으로 초기화
func HandleResetScene(c *fiber.Ctx) error {
	scene := sceneManager.Reset()
	log.Println("🔄 장면 초기화")
	broadcastScene()
	return c.JSON(scene)
}

// HandleSetEndpoints - 시작/목표 위치 변경
func HandleSetEndpoints(c *fiber.Ctx) error {
	var req EndpointsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "잘못된 요청 형식입니다",
		})
	}

	scene, err := sceneManager.SetEndpoints(req.Start, req.Goal)
	if err != nil {
		return errorResponse(c, err)
	}
	broadcastScene()
	return c.JSON(scene)
}

// HandleAddObstacle - 장애물 추가 (?random=true면 무작위 생성)
func HandleAddObstacle(c *fiber.Ctx) error {
	var (
		added models.SceneObstacle
		err   error
	)

	if c.QueryBool("random") {
		added, err = sceneManager.AddRandomObstacle()
	} else {
		var obstacle algorithms.Obstacle
		if perr := c.BodyParser(&obstacle); perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "잘못된 요청 형식입니다",
			})
		}
		added, err = sceneManager.AddObstacle(obstacle)
	}
	if err != nil {
		return errorResponse(c, err)
	}

	log.Printf("➕ 장애물 추가: %s (%s)", added.ID, added.Kind)
	broadcastScene()
	return c.Status(fiber.StatusCreated).JSON(added)
}

// HandleRemoveObstacle - 장애물 삭제
func HandleRemoveObstacle(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := sceneManager.RemoveObstacle(id); err != nil {
		return errorResponse(c, err)
	}

	log.Printf("➖ 장애물 삭제: %s", id)
	broadcastScene()
	return c.JSON(fiber.Map{
		"success": true,
		"id":      id,
	})
}
