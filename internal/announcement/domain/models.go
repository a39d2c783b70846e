// Package domain contains church announcements.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

type Announcement struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	ChurchID    snowflake.ID `gorm:"column:church_id;not null;index"`
	Title       string       `gorm:"type:text;not null"`
	Body        string       `gorm:"type:text"`
	Status      Status       `gorm:"type:text;not null;default:'draft'"`
	PublishedAt *time.Time   `gorm:"column:published_at"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Announcement) TableName() string { return "announcements" }
