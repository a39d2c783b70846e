// Package domain contains persistence models for the church (tenant) service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Roles a user can hold inside a church.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// CampusMode selects whether a church tracks a single campus or several.
type CampusMode string

const (
	CampusModeSingle CampusMode = "single"
	CampusModeMulti  CampusMode = "multi"
)

// Church represents a tenant. Churches are created at signup and never
// hard-deleted; deactivation is a settings concern.
type Church struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"type:text;not null" json:"name"`
	Slug         string            `gorm:"type:text;not null;uniqueIndex:ux_churches_slug" json:"slug"`
	SupportEmail string            `gorm:"type:text;column:support_email" json:"support_email"`
	CampusMode   CampusMode        `gorm:"type:text;not null;default:'single'" json:"campus_mode"`
	TimezoneName string            `gorm:"column:timezone_name" json:"timezone_name"`
	Settings     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"settings"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Church) TableName() string { return "churches" }

// ChurchMember represents membership of a user in a church.
type ChurchMember struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ChurchID  snowflake.ID `gorm:"not null;index;uniqueIndex:ux_church_user,priority:1" json:"church_id"`
	UserID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_church_user,priority:2" json:"user_id"`
	Role      string       `gorm:"type:text;not null" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ChurchMember) TableName() string { return "church_members" }
