package models

import "time"

// KVEntry is one row of the key-value store backing the Store capability.
type KVEntry struct {
	Key       string    `gorm:"type:varchar(255);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName pins the table name used by the migrations.
func (KVEntry) TableName() string { return "kv_entries" }
