package services

import (
	"fmt"
	"log"
	"os"

	"drone-nav-backend/algorithms"
	"drone-nav-backend/models"

	"gopkg.in/yaml.v3"
)

// sceneFile - YAML 장면 파일 형식
type sceneFile struct {
	Start     algorithms.Point3D     `yaml:"start"`
	Goal      algorithms.Point3D     `yaml:"goal"`
	Bounds    *algorithms.Bounds     `yaml:"bounds"`
	Obstacles []models.SceneObstacle `yaml:"obstacles"`
}

// LoadSceneFile reads and validates a YAML scene description
func LoadSceneFile(path string) (*models.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("장면 파일 읽기 실패: %w", err)
	}
	return ParseScene(data)
}

// ParseScene decodes YAML scene bytes
func ParseScene(data []byte) (*models.Scene, error) {
	var f sceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("장면 파일 파싱 실패: %w", err)
	}

	scene := &models.Scene{
		Start:     f.Start,
		Goal:      f.Goal,
		Obstacles: f.Obstacles,
	}
	if f.Bounds != nil {
		scene.Bounds = *f.Bounds
	}
	if err := normalizeScene(scene); err != nil {
		return nil, err
	}

	log.Printf("🗺️ 장면 파일 로드: 장애물 %d개", len(scene.Obstacles))
	return scene, nil
}
