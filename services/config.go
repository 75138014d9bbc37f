package services

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - 서버 설정 (.env + 환경 변수)
type Config struct {
	Port           string
	AllowedOrigins string

	MySQLHost     string
	MySQLPort     int
	MySQLUser     string
	MySQLPassword string
	MySQLDatabase string

	RunLogFlushSize     int
	RunLogFlushInterval time.Duration

	SceneFile        string
	PlaybackDuration time.Duration
	PlaybackTick     time.Duration
	TrailCapacity    int
}

// LoadConfig - .env 파일 로드 후 환경 변수 읽기
func LoadConfig(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("⚠️  .env 파일을 찾을 수 없습니다. 환경 변수만 사용합니다.")
	}

	return &Config{
		Port:           getEnv("PORT", "3000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173, http://localhost:3000"),

		MySQLHost:     os.Getenv("MYSQL_HOST"),
		MySQLPort:     getEnvInt("MYSQL_PORT", 3306),
		MySQLUser:     os.Getenv("MYSQL_USER"),
		MySQLPassword: os.Getenv("MYSQL_PASSWORD"),
		MySQLDatabase: os.Getenv("MYSQL_DATABASE"),

		RunLogFlushSize:     getEnvInt("RUN_LOG_FLUSH_SIZE", 50),
		RunLogFlushInterval: getEnvDuration("RUN_LOG_FLUSH_INTERVAL", 10*time.Second),

		SceneFile:        os.Getenv("SCENE_FILE"),
		PlaybackDuration: getEnvDuration("PLAYBACK_DURATION", 5*time.Second),
		PlaybackTick:     getEnvDuration("PLAYBACK_TICK", 100*time.Millisecond),
		TrailCapacity:    getEnvInt("TRAIL_CAPACITY", 500),
	}
}

// DatabaseConfigured - MySQL 필수 변수가 모두 있는지
func (c *Config) DatabaseConfigured() bool {
	return c.MySQLHost != "" && c.MySQLUser != "" && c.MySQLPassword != "" && c.MySQLDatabase != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("⚠️  %s 값이 잘못되었습니다 (%q), 기본값 %v 사용", key, raw, fallback)
		return fallback
	}
	return d
}
