package redis

import (
	"fmt"

	"github.com/jcallaghan/betpool/internal/model"
)

// Key prefix for all betting pool data
const keyPrefix = "betpool"

// Key generation functions for each entity type

// memberKey returns the Redis key for a Member
func memberKey(id model.MemberID) string {
	return fmt.Sprintf("%s:member:%s", keyPrefix, id)
}

// membersIndexKey returns the Redis key for the SET of all member keys
func membersIndexKey() string {
	return fmt.Sprintf("%s:idx:members", keyPrefix)
}

// lineKey returns the Redis key for a Line
func lineKey(id model.LineID) string {
	return fmt.Sprintf("%s:line:%s", keyPrefix, id)
}

// linesIndexKey returns the Redis key for the SET of all line keys
func linesIndexKey() string {
	return fmt.Sprintf("%s:idx:lines", keyPrefix)
}

// stakeKey returns the Redis key for a Stake
func stakeKey(lineID model.LineID, memberID model.MemberID) string {
	return fmt.Sprintf("%s:stake:%s:%s", keyPrefix, lineID, memberID)
}

// stakesForLineIndexKey returns the Redis key for the SET of stakes on a line
func stakesForLineIndexKey(lineID model.LineID) string {
	return fmt.Sprintf("%s:idx:stakes_for_line:%s", keyPrefix, lineID)
}
