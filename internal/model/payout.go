package model

// Payout is one winner's share of a resolved line's pot
type Payout struct {
	MemberID MemberID
	Amount   int
}

// PayoutResult is the computed redistribution for a resolved line. It is
// derived deterministically from the line's stake set and winning option,
// and is not persisted as its own entity. Invariant:
//
//	sum(payout amounts) + Remainder == Pot
type PayoutResult struct {
	LineID        LineID
	WinningOption string

	// Pot is the sum of losing stake amounts
	Pot int

	// PerWinner is floor(Pot / winner count), zero when there are no losers
	PerWinner int

	// Remainder is Pot mod winner count, retained by the house. When there
	// are no winners the whole pot lands here.
	Remainder int

	Payouts []Payout

	// Losers lists the members whose stakes fund the pot
	Losers []MemberID

	// Summary is a human-readable description of the outcome
	Summary string
}
