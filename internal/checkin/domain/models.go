// Package domain contains kids check-in sessions and check-in records.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CheckinSession is one open check-in window, usually tied to an event.
type CheckinSession struct {
	ID       snowflake.ID  `gorm:"primaryKey"`
	ChurchID snowflake.ID  `gorm:"column:church_id;not null;index"`
	EventID  *snowflake.ID `gorm:"column:event_id"`
	Name     string        `gorm:"type:text;not null"`
	OpenedAt time.Time     `gorm:"column:opened_at;not null;default:CURRENT_TIMESTAMP"`
	ClosedAt *time.Time    `gorm:"column:closed_at"`
}

func (CheckinSession) TableName() string { return "checkin_sessions" }

// Checkin records one child checked into a session. SecurityCode is the
// pickup code printed on the label; it must match at check-out.
type Checkin struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	ChurchID     snowflake.ID `gorm:"column:church_id;not null;index"`
	SessionID    snowflake.ID `gorm:"column:session_id;not null;index"`
	PersonID     snowflake.ID `gorm:"column:person_id;not null"`
	SecurityCode string       `gorm:"column:security_code;type:text;not null"`
	CheckedInAt  time.Time    `gorm:"column:checked_in_at;not null;default:CURRENT_TIMESTAMP"`
	CheckedOutAt *time.Time   `gorm:"column:checked_out_at"`
}

func (Checkin) TableName() string { return "checkins" }
