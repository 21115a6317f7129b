// Package db opens the PostgreSQL connection and runs schema migrations.
package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	appentity "magang_backend/internal/feature/application/domain/entity"
	authentity "magang_backend/internal/feature/auth/domain/entity"
	posentity "magang_backend/internal/feature/position/domain/entity"

	"magang_backend/internal/config"
)

// OpenDB connects to PostgreSQL, retrying until the database is reachable.
// TranslateError is enabled so unique violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func OpenDB(cfg config.DBConfig) *gorm.DB {
	var (
		conn *gorm.DB
		err  error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		conn, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := conn.AutoMigrate(
			&authentity.User{},
			&posentity.Position{},
			&appentity.Application{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return conn
}
