package response

import (
	"time"

	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/services/render"
)

// Member represents a member in API responses
type Member struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	Balance       int    `json:"balance"`
	TotalStakes   int    `json:"total_stakes"`
	TotalWinnings int    `json:"total_winnings"`
}

// MemberFromModel converts a model.Member to a response Member
func MemberFromModel(m *model.Member) Member {
	return Member{
		ID:            string(m.ID),
		DisplayName:   m.DisplayName,
		Balance:       m.Balance,
		TotalStakes:   m.TotalStakes,
		TotalWinnings: m.TotalWinnings,
	}
}

// LeaderboardResponse is the response for the leaderboard endpoint
type LeaderboardResponse struct {
	Members []Member `json:"members"`
}

// Line represents a line in API responses
type Line struct {
	ID            string     `json:"id"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	Symbols       []string   `json:"symbols"`
	Status        string     `json:"status"`
	WinningOption string     `json:"winning_option,omitempty"`
	CreatorID     string     `json:"creator_id"`
	MessageRef    string     `json:"message_ref,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	LockedAt      *time.Time `json:"locked_at,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

// LineFromModel converts a model.Line to a response Line
func LineFromModel(l *model.Line) Line {
	resp := Line{
		ID:            string(l.ID),
		Question:      l.Question,
		Options:       l.Options,
		Symbols:       l.Symbols,
		Status:        string(l.Status),
		WinningOption: l.WinningOption,
		CreatorID:     string(l.CreatorID),
		MessageRef:    l.MessageRef,
		CreatedAt:     l.CreatedAt,
	}
	if !l.LockedAt.IsZero() {
		t := l.LockedAt
		resp.LockedAt = &t
	}
	if !l.ResolvedAt.IsZero() {
		t := l.ResolvedAt
		resp.ResolvedAt = &t
	}
	return resp
}

// Payout represents one winner's payout
type Payout struct {
	MemberID string `json:"member_id"`
	Amount   int    `json:"amount"`
}

// PayoutResult represents the payout breakdown of a resolved line
type PayoutResult struct {
	WinningOption string   `json:"winning_option"`
	Pot           int      `json:"pot"`
	PerWinner     int      `json:"per_winner"`
	Remainder     int      `json:"remainder"`
	Payouts       []Payout `json:"payouts"`
	Losers        []string `json:"losers"`
	Summary       string   `json:"summary"`
}

// PayoutResultFromModel converts a model.PayoutResult
func PayoutResultFromModel(r *model.PayoutResult) *PayoutResult {
	if r == nil {
		return nil
	}
	resp := &PayoutResult{
		WinningOption: r.WinningOption,
		Pot:           r.Pot,
		PerWinner:     r.PerWinner,
		Remainder:     r.Remainder,
		Payouts:       make([]Payout, 0, len(r.Payouts)),
		Losers:        make([]string, 0, len(r.Losers)),
		Summary:       r.Summary,
	}
	for _, p := range r.Payouts {
		resp.Payouts = append(resp.Payouts, Payout{MemberID: string(p.MemberID), Amount: p.Amount})
	}
	for _, id := range r.Losers {
		resp.Losers = append(resp.Losers, string(id))
	}
	return resp
}

// LineView is the full view of a line: the line itself plus the rendering
// artifact for the displaying collaborator
type LineView struct {
	Line   Line             `json:"line"`
	Render *render.Artifact `json:"render"`
}

// ResolveResponse is the response for the resolve endpoint
type ResolveResponse struct {
	Line   Line             `json:"line"`
	Payout *PayoutResult    `json:"payout"`
	Render *render.Artifact `json:"render"`
}

// Signal outcome values
const (
	SignalOutcomePlaced    = "placed"
	SignalOutcomeWithdrawn = "withdrawn"
	SignalOutcomeIgnored   = "ignored"
)

// SignalResponse is the response for signal add/remove endpoints
type SignalResponse struct {
	// Outcome is "placed", "withdrawn" or "ignored"
	Outcome string `json:"outcome"`
	Option  string `json:"option,omitempty"`
	Balance *int   `json:"balance,omitempty"`
}
