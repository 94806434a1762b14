package services

import "errors"

var (
	// ErrInvalidAmount rejects zero or negative deposit/spend/debit amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrZeroAmount rejects a zero balance adjustment.
	ErrZeroAmount = errors.New("amount must be non-zero")

	// ErrInsufficientBalance rejects a debit that would drive the wallet
	// balance below zero. No transaction row is written.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)
