package entities

import "time"

// StoredValue is one browser-scoped key of persisted state, e.g. "<browserID>/user".
type StoredValue struct {
	Key       string `gorm:"primaryKey;column:storage_key"`
	Value     []byte
	UpdatedAt time.Time `gorm:"index"`
}
