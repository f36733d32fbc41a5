// Package testutil provides an in-memory store and a controllable clock for tests
// that exercise handlers end to end without a PostgreSQL container.
package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres"
	"laundry/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private shared-cache SQLite database and migrates the schema. The
// pool holds one connection, so a second transaction waits for the first to finish.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", kernel.NewUUID().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))
	return db
}

// NewUnitOfWorkFactory returns a factory over a fresh database.
func NewUnitOfWorkFactory(t testing.TB, opts ...postgres.Option) (*postgres.GormUnitOfWorkFactory, *gorm.DB) {
	t.Helper()

	db := NewDB(t)
	return postgres.NewGormUnitOfWorkFactory(db, opts...), db
}

// Clock is a settable ports.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now.UTC()}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now.UTC()
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
