package repository

import (
	"context"
	"errors"

	"github.com/employee-records/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository определяет интерфейс строкового хранилища ключ-значение
type KVRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type kvRepository struct {
	db *gorm.DB
}

// NewKVRepository создаёт новый экземпляр репозитория
func NewKVRepository(db *gorm.DB) KVRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, error) {
	var entry domain.KVEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrKeyNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

func (r *kvRepository) Set(ctx context.Context, key, value string) error {
	entry := domain.KVEntry{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}
