package models

import (
	"time"

	"gorm.io/gorm"
)

// Base carries the columns shared by every entity. DeletedAt is the
// soft-delete flag: gorm filters flagged rows out of every query made
// through the regular API, which is the only API the repositories use.
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"add_time"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
