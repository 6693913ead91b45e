package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lemiae/PlantShelf/model"
)

var dbCounter uint64

// NewTestDB opens a fresh in-memory sqlite database with the schema migrated.
// Each call gets its own database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddUint64(&dbCounter, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	for _, m := range []interface{}{&model.User{}, &model.Species{}, &model.Room{}, &model.Plant{}} {
		if err := db.AutoMigrate(m); err != nil {
			t.Fatalf("migrating test database: %v", err)
		}
	}

	return db
}
