package domain

import "errors"

// Domain errors
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists")
	ErrNoActiveAccount     = errors.New("no active account")
	ErrEmailRequired       = errors.New("email is required")
	ErrNameRequired        = errors.New("name is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrAmountRequired      = errors.New("amount is required")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryRequired    = errors.New("category name is required")
	ErrCategoryExists      = errors.New("category already exists")
	ErrPersistenceFailed   = errors.New("persistence failed")
)
