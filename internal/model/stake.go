package model

import "time"

// StakeID uniquely identifies a stake
type StakeID string

// Stake is a member's committed wager on one option of a line.
// At most one stake exists per (member, line) pair; placing a different
// choice retires the previous stake. Stakes are immutable once the line
// is resolved.
type Stake struct {
	ID       StakeID
	MemberID MemberID
	LineID   LineID

	// Option is the chosen option text, always one of the line's options
	Option string

	// Amount is the unit stake size. Always the configured stake unit in
	// the current model; kept as an integer for future generalization.
	Amount int

	CreatedAt time.Time
}
