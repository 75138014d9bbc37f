package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drone-nav-backend/handlers"
	"drone-nav-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// .env 파일 + 환경 변수
	cfg := services.LoadConfig()

	// MySQL 연결 (선택 사항, 없으면 실행 기록 비활성화)
	store := services.NewRunStore(nil)
	if cfg.DatabaseConfigured() {
		db, err := services.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ DB 초기화 실패: %v", err)
		}
		store = services.NewRunStore(db)
	} else {
		log.Println("⚠️  MySQL 설정 없음, 실행 기록은 저장되지 않습니다.")
	}

	// 실행 기록 버퍼
	runLog := services.NewRunLogBuffer(store, cfg.RunLogFlushSize, cfg.RunLogFlushInterval)
	defer runLog.Stop() // 종료 시 남은 기록 저장

	// 장면
	scenes := services.NewSceneManager(time.Now().UnixNano())
	if cfg.SceneFile != "" {
		scene, err := services.LoadSceneFile(cfg.SceneFile)
		if err != nil {
			log.Fatalf("❌ 장면 파일 로드 실패: %v", err)
		}
		if _, err := scenes.Replace(scene); err != nil {
			log.Fatalf("❌ 장면 적용 실패: %v", err)
		}
	}

	playback := services.NewPlaybackService(handlers.Manager.BroadcastMessage, cfg.PlaybackDuration, cfg.PlaybackTick, cfg.TrailCapacity)
	defer playback.Stop()

	planner := services.NewPlannerService(scenes, runLog, playback, handlers.Manager.BroadcastMessage)
	handlers.InitServices(planner, scenes, playback, store)

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	go handlers.Manager.Start()

	handlers.RegisterRoutes(app)

	// 종료 시그널 처리
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("🛑 서버 종료 중...")
		_ = app.Shutdown()
	}()

	log.Printf("🚀 서버 시작: http://localhost:%s", cfg.Port)
	log.Printf("📡 WebSocket: ws://localhost:%s/websocket/playback", cfg.Port)
	log.Printf("🧭 경로 탐색 API: POST http://localhost:%s/api/plan", cfg.Port)
	log.Printf("💾 실행 기록 API: GET http://localhost:%s/api/runs/*", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("❌ 서버 오류: %v", err)
	}
}
