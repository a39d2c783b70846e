package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertPerson(ctx context.Context, db *gorm.DB, p *Person) error
	FindPersonByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*Person, error)
	ListPeople(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]Person, error)
	UpdatePerson(ctx context.Context, db *gorm.DB, p *Person) error
	DeletePerson(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) error

	InsertHousehold(ctx context.Context, db *gorm.DB, h *Household) error
	FindHouseholdByID(ctx context.Context, db *gorm.DB, churchID, id snowflake.ID) (*Household, error)
	ListHouseholds(ctx context.Context, db *gorm.DB, churchID snowflake.ID) ([]Household, error)
}
