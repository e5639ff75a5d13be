package model

import "time"

// MemberID is the opaque external identity of a chat member
type MemberID string

// StatField enumerates the mutable member statistics.
// Stat mutation goes through the ledger and is restricted to these fields.
type StatField string

const (
	StatStakeCount StatField = "stake_count" // Lifetime number of stakes placed
	StatWinnings   StatField = "winnings"    // Lifetime units won from payouts
)

// Member represents a chat member participating in the betting pool.
// Members are created lazily on first interaction and never deleted.
type Member struct {
	ID          MemberID
	DisplayName string

	// Balance is the member's spendable units. Never negative.
	// Mutated only by the ledger service.
	Balance int

	// Cumulative stats
	TotalStakes   int
	TotalWinnings int

	CreatedAt time.Time
	UpdatedAt time.Time
}
