// Package domain contains per-church feature override records.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// FeatureOverride pins one feature on or off for one church, taking
// precedence over plan membership in both directions. The store enforces
// at most one override per (church, feature key).
type FeatureOverride struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	ChurchID   snowflake.ID `gorm:"not null;index:ux_feature_overrides_church_key,unique,priority:1"`
	FeatureKey string       `gorm:"type:text;not null;index:ux_feature_overrides_church_key,unique,priority:2"`
	Enabled    bool         `gorm:"not null"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (FeatureOverride) TableName() string { return "feature_overrides" }
