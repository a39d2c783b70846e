// Package domain contains people and household records.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Household groups people who live together for mailing and check-in.
type Household struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	ChurchID  snowflake.ID `gorm:"column:church_id;not null;index"`
	Name      string       `gorm:"type:text;not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Household) TableName() string { return "households" }

// Person is a directory record, not a login. Users and people are
// deliberately separate: most people never sign in.
type Person struct {
	ID          snowflake.ID  `gorm:"primaryKey"`
	ChurchID    snowflake.ID  `gorm:"column:church_id;not null;index"`
	HouseholdID *snowflake.ID `gorm:"column:household_id"`
	FirstName   string        `gorm:"column:first_name;type:text;not null"`
	LastName    string        `gorm:"column:last_name;type:text"`
	Email       string        `gorm:"type:text"`
	Phone       string        `gorm:"type:text"`
	Birthdate   *time.Time    `gorm:"column:birthdate"`
	Notes       string        `gorm:"type:text"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Person) TableName() string { return "people" }
