package model

import "time"

// ImportKV backs the generic cache port; the importer stores incremental
// cursors here.
type ImportKV struct {
	Key       string     `gorm:"column:key;primaryKey"`
	Value     string     `gorm:"column:value;type:text;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null"`
}

func (ImportKV) TableName() string {
	return "import_kv"
}
