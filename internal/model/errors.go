package model

import "errors"

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidFormat       = errors.New("invalid format")
	ErrPersistenceCorrupt  = errors.New("persisted state is corrupt")
)
