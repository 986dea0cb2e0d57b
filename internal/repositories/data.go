package repositories

import (
	"context"
	"time"

	"github.com/maxaizer/job-portal/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Data struct {
	db *gorm.DB
}

func NewDataRepository(db *gorm.DB) *Data {
	return &Data{db: db}
}

func (repo *Data) Save(ctx context.Context, key string, data []byte) error {
	return repo.db.WithContext(ctx).Save(&entities.StoredValue{
		Key:   key,
		Value: data,
	}).Error
}

// Load returns nil without error when key is missing.
func (repo *Data) Load(ctx context.Context, key string) ([]byte, error) {
	value := &entities.StoredValue{}
	err := repo.db.WithContext(ctx).First(value, "storage_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if value.Value == nil {
		return []byte{}, nil
	}
	return value.Value, nil
}

func (repo *Data) Remove(ctx context.Context, key string) error {
	return repo.db.WithContext(ctx).Delete(&entities.StoredValue{}, "storage_key = ?", key).Error
}

// RemoveOlderThan deletes keys not written since expirationTime.
func (repo *Data) RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&entities.StoredValue{}, "updated_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}
