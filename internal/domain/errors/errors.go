package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidStage       = errors.New("invalid stage")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrStageRegression    = errors.New("stage regression")
	ErrStaleWrite         = errors.New("stale write")
	ErrInvalidOrderNumber = errors.New("invalid order number")
	ErrEmptyMessage       = errors.New("empty message")
)
