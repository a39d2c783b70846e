// Package domain contains church calendar events.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
)

type Event struct {
	ID          snowflake.ID   `gorm:"primaryKey"`
	ChurchID    snowflake.ID   `gorm:"column:church_id;not null;index"`
	Title       string         `gorm:"type:text;not null"`
	Description string         `gorm:"type:text"`
	Location    string         `gorm:"type:text"`
	StartsAt    time.Time      `gorm:"column:starts_at;not null;index"`
	EndsAt      *time.Time     `gorm:"column:ends_at"`
	AllDay      bool           `gorm:"column:all_day;not null;default:false"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Event) TableName() string { return "events" }
