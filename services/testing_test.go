package services

import (
	"testing"

	"board-club-system/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database. A single pooled
// connection keeps the :memory: database alive for the test's duration.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Session{},
		&models.Participation{},
		&models.UserStats{},
		&models.Badge{},
		&models.Attendance{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestCache returns a Cache backed by miniredis.
func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCache(rdb), mr
}

func seedUser(t *testing.T, db *gorm.DB, nickname string) string {
	t.Helper()
	u := models.User{
		ID:       uuid.NewString(),
		Email:    nickname + "@club.test",
		Nickname: nickname,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", nickname, err)
	}
	return u.ID
}

func seedGame(t *testing.T, db *gorm.DB, name string) string {
	t.Helper()
	g := models.Game{
		ID:   uuid.NewString(),
		Name: name,
		Slug: name + "-" + uuid.NewString()[:8],
	}
	if err := db.Create(&g).Error; err != nil {
		t.Fatalf("seed game %s: %v", name, err)
	}
	return g.ID
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
