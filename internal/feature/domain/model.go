// Package domain contains the platform-wide feature catalog.
package domain

import "time"

// Feature is one gatable capability. Keys are stable, dot-namespaced
// strings (e.g. "engage.groups") shared by every tenant; the catalog is
// platform-owned reference data, never mutated per church.
type Feature struct {
	Key         string    `json:"key" gorm:"type:text;primaryKey;column:key"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Feature) TableName() string { return "features" }
