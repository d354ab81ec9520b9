package plan

import (
	"go.uber.org/zap"

	"github.com/temirov/srcaudit/internal/duplicates"
	"github.com/temirov/srcaudit/internal/inventory"
	"github.com/temirov/srcaudit/internal/orphans"
)

const (
	unresolvableKeepMessageConstant   = "skipping duplicate group: kept copy is outside audit root"
	unresolvableRemoveMessageConstant = "skipping duplicate copy outside audit root"
	logFieldPathConstant              = "path"
	logFieldGroupConstant             = "group"
)

// Removal is a duplicate copy proposed for deletion. Identical copies are safe deletes; the rest need
// a manual merge first.
type Removal struct {
	Record       inventory.FileRecord
	RelativePath string
	Identical    bool
}

// Resolution is the recommendation for one duplicate group.
type Resolution struct {
	Key              string
	Keep             inventory.FileRecord
	KeepRelativePath string
	Removals         []Removal
}

// Plan is the complete recommendation of one audit run.
type Plan struct {
	Resolutions []Resolution
	Orphans     []orphans.Record
	Actions     []Action
}

// IsEmpty reports whether the audit found nothing to act on.
func (plan Plan) IsEmpty() bool {
	return len(plan.Actions) == 0
}

// SelectCanonical returns the index of the member to keep: the deepest path, the earliest member
// winning ties. It returns -1 for an empty slice.
func SelectCanonical(members []inventory.FileRecord) int {
	canonicalIndex := -1
	for memberIndex, member := range members {
		if canonicalIndex < 0 || member.Depth > members[canonicalIndex].Depth {
			canonicalIndex = memberIndex
		}
	}
	return canonicalIndex
}

// Planner assembles plans for files under one audit root.
type Planner struct {
	root   string
	logger *zap.Logger
}

// NewPlanner constructs a Planner. A nil logger discards warnings.
func NewPlanner(root string, logger *zap.Logger) Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Planner{root: root, logger: logger}
}

// Build resolves every group in the given order and appends one action per orphan. Duplicate actions
// precede orphan actions. A removal is identical when any comparison involving it reports identical.
func (planner Planner) Build(groups []duplicates.Group, comparisonsByKey map[string][]duplicates.Comparison, orphanRecords []orphans.Record) Plan {
	assembled := Plan{
		Resolutions: make([]Resolution, 0, len(groups)),
		Orphans:     orphanRecords,
		Actions:     make([]Action, 0),
	}

	for _, group := range groups {
		resolution, resolved := planner.resolve(group, comparisonsByKey[group.Key])
		if !resolved {
			continue
		}
		assembled.Resolutions = append(assembled.Resolutions, resolution)
		for _, removal := range resolution.Removals {
			assembled.Actions = append(assembled.Actions, NewDuplicateAction(resolution.Keep.Filename, resolution.KeepRelativePath, removal.RelativePath, removal.Identical))
		}
	}

	for _, orphanRecord := range orphanRecords {
		assembled.Actions = append(assembled.Actions, NewOrphanAction(orphanRecord.RelativePath))
	}

	return assembled
}

func (planner Planner) resolve(group duplicates.Group, comparisons []duplicates.Comparison) (Resolution, bool) {
	keepIndex := SelectCanonical(group.Members)
	if keepIndex < 0 {
		return Resolution{}, false
	}

	keep := group.Members[keepIndex]
	keepRelativePath, keepError := inventory.RelativePath(planner.root, keep.AbsolutePath)
	if keepError != nil {
		planner.logger.Warn(unresolvableKeepMessageConstant, zap.String(logFieldGroupConstant, group.Key), zap.String(logFieldPathConstant, keep.AbsolutePath), zap.Error(keepError))
		return Resolution{}, false
	}

	resolution := Resolution{Key: group.Key, Keep: keep, KeepRelativePath: keepRelativePath}
	for memberIndex, member := range group.Members {
		if memberIndex == keepIndex {
			continue
		}
		removeRelativePath, removeError := inventory.RelativePath(planner.root, member.AbsolutePath)
		if removeError != nil {
			planner.logger.Warn(unresolvableRemoveMessageConstant, zap.String(logFieldGroupConstant, group.Key), zap.String(logFieldPathConstant, member.AbsolutePath), zap.Error(removeError))
			continue
		}
		resolution.Removals = append(resolution.Removals, Removal{
			Record:       member,
			RelativePath: removeRelativePath,
			Identical:    hasIdenticalCounterpart(member.AbsolutePath, comparisons),
		})
	}
	return resolution, true
}

func hasIdenticalCounterpart(absolutePath string, comparisons []duplicates.Comparison) bool {
	for _, comparison := range comparisons {
		if comparison.Identical && comparison.Involves(absolutePath) {
			return true
		}
	}
	return false
}
