package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	CreatePerson(ctx context.Context, req PersonRequest) (*PersonResponse, error)
	GetPerson(ctx context.Context, id string) (*PersonResponse, error)
	ListPeople(ctx context.Context) ([]PersonResponse, error)
	UpdatePerson(ctx context.Context, id string, req PersonRequest) (*PersonResponse, error)
	DeletePerson(ctx context.Context, id string) error

	CreateHousehold(ctx context.Context, name string) (*HouseholdResponse, error)
	ListHouseholds(ctx context.Context) ([]HouseholdResponse, error)
}

type PersonRequest struct {
	HouseholdID string     `json:"household_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Birthdate   *time.Time `json:"birthdate"`
	Notes       string     `json:"notes"`
}

type PersonResponse struct {
	ID          string     `json:"id"`
	HouseholdID string     `json:"household_id,omitempty"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Birthdate   *time.Time `json:"birthdate,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type HouseholdResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrInvalidChurch = errors.New("invalid church")
	ErrInvalidID     = errors.New("invalid person id")
	ErrInvalidName   = errors.New("invalid name")
	ErrNotFound      = errors.New("person not found")
)
