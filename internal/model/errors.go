package model

import "errors"

// Common errors used across the application
var (
	// Member errors
	ErrMemberNotFound = errors.New("member not found")

	// Line errors
	ErrLineNotFound      = errors.New("line not found")
	ErrInvalidOptions    = errors.New("a line needs at least two distinct non-empty options")
	ErrNotOpen           = errors.New("line is not open")
	ErrAlreadyResolved   = errors.New("line is already resolved")
	ErrInvalidTransition = errors.New("invalid line status transition")
	ErrUnknownOption     = errors.New("option is not on this line")

	// Stake errors
	ErrStakeNotFound       = errors.New("stake not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicateStake      = errors.New("stake already placed on this option")

	// Ledger errors
	ErrUnknownStatField = errors.New("unknown stat field")
)
