package authorization

import "errors"

var (
	ErrInvalidActor  = errors.New("invalid actor")
	ErrInvalidChurch = errors.New("invalid church")
	ErrInvalidObject = errors.New("invalid object")
	ErrInvalidAction = errors.New("invalid action")
	ErrForbidden     = errors.New("forbidden")
)
