package manifest

import "sort"

// ReferenceSet is the set of path fragments a manifest mentions.
type ReferenceSet struct {
	members map[string]struct{}
}

// NewReferenceSet builds a set from fragments, discarding repeats and empty strings.
func NewReferenceSet(fragments ...string) ReferenceSet {
	members := make(map[string]struct{}, len(fragments))
	for _, fragment := range fragments {
		if len(fragment) == 0 {
			continue
		}
		members[fragment] = struct{}{}
	}
	return ReferenceSet{members: members}
}

// Len reports the number of distinct fragments.
func (referenceSet ReferenceSet) Len() int {
	return len(referenceSet.members)
}

// Contains reports whether fragment is a member.
func (referenceSet ReferenceSet) Contains(fragment string) bool {
	_, present := referenceSet.members[fragment]
	return present
}

// Members returns the fragments in lexical order.
func (referenceSet ReferenceSet) Members() []string {
	sorted := make([]string, 0, len(referenceSet.members))
	for fragment := range referenceSet.members {
		sorted = append(sorted, fragment)
	}
	sort.Strings(sorted)
	return sorted
}
