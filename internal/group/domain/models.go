// Package domain contains small groups and their rosters.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
)

type Group struct {
	ID          snowflake.ID   `gorm:"primaryKey"`
	ChurchID    snowflake.ID   `gorm:"column:church_id;not null;index"`
	Name        string         `gorm:"type:text;not null"`
	Description string         `gorm:"type:text"`
	MeetingDay  string         `gorm:"column:meeting_day;type:text"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Group) TableName() string { return "groups" }

const (
	MemberRoleLeader = "leader"
	MemberRoleMember = "member"
)

type GroupMember struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	ChurchID  snowflake.ID `gorm:"column:church_id;not null;index"`
	GroupID   snowflake.ID `gorm:"column:group_id;not null;uniqueIndex:ux_group_person"`
	PersonID  snowflake.ID `gorm:"column:person_id;not null;uniqueIndex:ux_group_person"`
	Role      string       `gorm:"type:text;not null;default:'member'"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (GroupMember) TableName() string { return "group_members" }
