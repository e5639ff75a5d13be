package model

import "time"

// LineID uniquely identifies a betting line
type LineID string

// LineStatus represents the lifecycle phase of a line
type LineStatus string

const (
	LineStatusOpen     LineStatus = "open"     // Accepting stakes
	LineStatusLocked   LineStatus = "locked"   // Stakes frozen, awaiting resolution
	LineStatusResolved LineStatus = "resolved" // Winner declared, payouts applied
)

// Line represents a single betting question with discrete options.
// Status transitions are monotonic: open -> locked -> resolved. There is
// no unlock and no un-resolve.
type Line struct {
	ID       LineID
	Question string

	// Options and Symbols are parallel, index-aligned sequences assigned at
	// creation. The alignment must never change after creation: signal
	// reconciliation depends on symbol identity outliving renders.
	Options []string
	Symbols []string

	Status LineStatus

	// WinningOption is set only when Status is resolved, and is always one
	// of Options.
	WinningOption string

	CreatorID MemberID

	// MessageRef is an opaque reference to the rendered artifact the line is
	// bound to, supplied by the rendering collaborator.
	MessageRef string

	CreatedAt  time.Time
	LockedAt   time.Time
	ResolvedAt time.Time
}

// CanAcceptStake reports whether stakes may be placed or withdrawn
func (l *Line) CanAcceptStake() bool {
	return l.Status == LineStatusOpen
}

// HasOption reports whether option is one of the line's options
func (l *Line) HasOption(option string) bool {
	return l.OptionIndex(option) >= 0
}

// OptionIndex returns the index of option, or -1 if it is not on the line
func (l *Line) OptionIndex(option string) int {
	for i, o := range l.Options {
		if o == option {
			return i
		}
	}
	return -1
}

// SymbolFor returns the symbol bound to option, or "" if option is unknown
func (l *Line) SymbolFor(option string) string {
	if i := l.OptionIndex(option); i >= 0 {
		return l.Symbols[i]
	}
	return ""
}
