package duplicates

import (
	"sort"

	"github.com/temirov/srcaudit/internal/inventory"
)

// Group holds two or more records sharing a key, in scan order.
type Group struct {
	Key     string
	Members []inventory.FileRecord
}

// Grouper partitions records by a KeyStrategy.
type Grouper struct {
	strategy KeyStrategy
}

// NewGrouper constructs a Grouper. A nil strategy falls back to FilenameKey.
func NewGrouper(strategy KeyStrategy) Grouper {
	if strategy == nil {
		strategy = FilenameKey{}
	}
	return Grouper{strategy: strategy}
}

// Group returns the groups with at least two members, ordered by key. Member order within a group is
// the order of records.
func (grouper Grouper) Group(records []inventory.FileRecord) []Group {
	membersByKey := make(map[string][]inventory.FileRecord)
	for _, record := range records {
		key := grouper.strategy.Key(record)
		membersByKey[key] = append(membersByKey[key], record)
	}

	groups := make([]Group, 0)
	for key, members := range membersByKey {
		if len(members) < 2 {
			continue
		}
		groups = append(groups, Group{Key: key, Members: members})
	}

	sort.Slice(groups, func(first int, second int) bool {
		return groups[first].Key < groups[second].Key
	})

	return groups
}
