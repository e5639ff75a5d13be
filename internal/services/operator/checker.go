package operator

import "github.com/jcallaghan/betpool/internal/model"

// Checker is the injected authorization predicate deciding which members
// may open, lock and resolve lines. Deployments swap implementations
// without touching core logic.
type Checker interface {
	IsOperator(id model.MemberID) bool
}

// StaticChecker authorizes a fixed set of member IDs from configuration
type StaticChecker struct {
	operators map[model.MemberID]struct{}
}

// Ensure StaticChecker implements Checker
var _ Checker = (*StaticChecker)(nil)

// NewStaticChecker creates a checker from a list of operator member IDs
func NewStaticChecker(ids []string) *StaticChecker {
	operators := make(map[model.MemberID]struct{}, len(ids))
	for _, id := range ids {
		operators[model.MemberID(id)] = struct{}{}
	}
	return &StaticChecker{operators: operators}
}

// IsOperator reports whether id is in the configured operator set
func (c *StaticChecker) IsOperator(id model.MemberID) bool {
	_, ok := c.operators[id]
	return ok
}
