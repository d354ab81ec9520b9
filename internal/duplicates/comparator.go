package duplicates

import "github.com/temirov/srcaudit/internal/inventory"

// Comparison describes one unordered pair of copies within a group.
type Comparison struct {
	First     inventory.FileRecord
	Second    inventory.FileRecord
	Identical bool
}

// Involves reports whether absolutePath is either side of the pair.
func (comparison Comparison) Involves(absolutePath string) bool {
	return comparison.First.AbsolutePath == absolutePath || comparison.Second.AbsolutePath == absolutePath
}

// SizeDelta is the byte size of the second copy minus the first.
func (comparison Comparison) SizeDelta() int64 {
	return comparison.Second.SizeBytes - comparison.First.SizeBytes
}

// LineDelta is the line count of the second copy minus the first.
func (comparison Comparison) LineDelta() int {
	return comparison.Second.LineCount - comparison.First.LineCount
}

// Identical reports whether both records carry a content hash and the hashes are equal.
func Identical(first inventory.FileRecord, second inventory.FileRecord) bool {
	return first.HasContentHash() && second.HasContentHash() && first.ContentHash == second.ContentHash
}

// ComparePairs produces one Comparison per unordered pair of members, iterating i < j.
// A group of n members yields n*(n-1)/2 comparisons.
func ComparePairs(members []inventory.FileRecord) []Comparison {
	comparisons := make([]Comparison, 0, len(members)*(len(members)-1)/2)
	for firstIndex := 0; firstIndex < len(members); firstIndex++ {
		for secondIndex := firstIndex + 1; secondIndex < len(members); secondIndex++ {
			comparisons = append(comparisons, Comparison{
				First:     members[firstIndex],
				Second:    members[secondIndex],
				Identical: Identical(members[firstIndex], members[secondIndex]),
			})
		}
	}
	return comparisons
}

// CompareGroups runs ComparePairs for every group, keyed by group key.
func CompareGroups(groups []Group) map[string][]Comparison {
	comparisonsByKey := make(map[string][]Comparison, len(groups))
	for _, group := range groups {
		comparisonsByKey[group.Key] = ComparePairs(group.Members)
	}
	return comparisonsByKey
}
