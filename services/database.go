package services

import (
	"errors"
	"fmt"
	"log"

	"drone-nav-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrDatabaseNotReady = errors.New("database not initialized")

// InitDatabase - 설정값으로 MySQL 연결
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	if !cfg.DatabaseConfigured() {
		return nil, fmt.Errorf("MySQL 환경 변수가 모두 설정되지 않았습니다: MYSQL_HOST, MYSQL_USER, MYSQL_PASSWORD, MYSQL_DATABASE")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.MySQLUser, cfg.MySQLPassword, cfg.MySQLHost, cfg.MySQLPort, cfg.MySQLDatabase)

	db, err := OpenDatabase(mysql.Open(dsn))
	if err != nil {
		return nil, err
	}

	log.Println("✅ MySQL 연결 및 마이그레이션 완료")
	log.Printf("📡 연결 정보: %s@%s:%d/%s", cfg.MySQLUser, cfg.MySQLHost, cfg.MySQLPort, cfg.MySQLDatabase)
	return db, nil
}

// OpenDatabase - 임의의 dialector로 연결 후 AutoMigrate
func OpenDatabase(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("DB 연결 실패: %w", err)
	}

	if err := db.AutoMigrate(&models.PlanRun{}); err != nil {
		return nil, fmt.Errorf("마이그레이션 실패: %w", err)
	}
	return db, nil
}
