package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var _ domain.KVStore = (*SQLiteStore)(nil)

// KVRecord is the single table of the on-device database.
type KVRecord struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (KVRecord) TableName() string {
	return "kv_store"
}

type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database file at path and migrates it.
// An empty path falls back to food_diary.db in the working directory.
func OpenSQLite(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "food_diary.db"
	}
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("repository: open sqlite %s: %w", path, err)
	}
	return NewSQLiteStore(gdb)
}

func NewSQLiteStore(gdb *gorm.DB) (*SQLiteStore, error) {
	if err := gdb.AutoMigrate(&KVRecord{}); err != nil {
		return nil, fmt.Errorf("repository: migrate kv_store: %w", err)
	}
	return &SQLiteStore{db: gdb}, nil
}

func (r *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record KVRecord
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("repository: get %q failed: %w", key, err)
	}
	return record.Value, nil
}

func (r *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	record := KVRecord{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("repository: set %q failed: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *SQLiteStore) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("repository: database path parent is not a directory")
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
