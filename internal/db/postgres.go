package db

import (
  "fmt"
  "strings"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/types"
  "github.com/WeBoost/aurora-backend/internal/utils"
  "github.com/WeBoost/aurora-backend/internal/logger"
)

type DatabaseService struct {
  db *gorm.DB
  log *logger.Logger
  driver string
}

func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
  serviceLog := log.With("service", "DatabaseService")

  driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))
  if driver == "sqlite" {
    return newSQLiteService(serviceLog)
  }

  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "aurora", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  serviceLog.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
  }

  return &DatabaseService{db: db, log: serviceLog, driver: "postgres"}, nil
}

// newSQLiteService is the local/dev fallback; uuid defaults come from
// the application instead of uuid-ossp.
func newSQLiteService(log *logger.Logger) (*DatabaseService, error) {
  path := utils.GetEnv("SQLITE_PATH", "aurora.db", log)
  log.Info("Opening SQLite database", "path", path)
  db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
  if err != nil {
    log.Error("Failed to open SQLite database", "error", err)
    return nil, fmt.Errorf("Failed to open SQLite database: %w", err)
  }
  return &DatabaseService{db: db, log: log, driver: "sqlite"}, nil
}

func (s *DatabaseService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Business{},
    &types.TourService{},
    &types.Booking{},
    &types.Payment{},
    &types.SEOSettings{},
    &types.MediaAsset{},
    &types.PageView{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  if s.driver != "postgres" {
    return nil
  }
  s.log.Info("Configuring foreign key relationships...")
  if err := s.db.Exec(`
    ALTER TABLE "user_token"
    ADD CONSTRAINT "fk_user_token_user_id"
    FOREIGN KEY ("user_id")
    REFERENCES "user"("id")
    ON DELETE CASCADE
  `).Error; err != nil && !isDuplicateConstraint(err) {
    return fmt.Errorf("Failed to add fk_user_token_user_id: %w", err)
  }
  return nil
}

func isDuplicateConstraint(err error) bool {
  return err != nil && strings.Contains(err.Error(), "already exists")
}

func (s *DatabaseService) DB() *gorm.DB {
  return s.db
}
