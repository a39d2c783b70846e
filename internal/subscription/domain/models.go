// Package domain contains persistence models for church subscriptions.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// SubscriptionStatus represents lifecycle states for a subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive     SubscriptionStatus = "ACTIVE"
	SubscriptionStatusSuperseded SubscriptionStatus = "SUPERSEDED"
	SubscriptionStatusCanceled   SubscriptionStatus = "CANCELED"
)

// Subscription links a church to its plan. At most one ACTIVE subscription
// exists per church (partial unique index); plan changes supersede the
// current record rather than mutating or deleting it.
type Subscription struct {
	ID        snowflake.ID       `gorm:"primaryKey"`
	ChurchID  snowflake.ID       `gorm:"not null;index"`
	PlanCode  string             `gorm:"type:text;not null"`
	Status    SubscriptionStatus `gorm:"type:text;not null"`
	StartAt   time.Time          `gorm:"not null"`
	EndedAt   *time.Time         `gorm:""`
	Metadata  datatypes.JSONMap  `gorm:"type:jsonb"`
	CreatedAt time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Subscription) TableName() string { return "subscriptions" }
