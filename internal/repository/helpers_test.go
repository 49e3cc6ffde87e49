package repository

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"ParlaySync/internal/config"
	"ParlaySync/internal/database"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// newTestDB 每个测试一个独立的内存 SQLite 库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(&config.DatabaseConfig{
		Driver:       database.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, log)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
