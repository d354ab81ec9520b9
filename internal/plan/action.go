package plan

// ActionType tags the variant of an Action.
type ActionType string

// Action variants.
const (
	ActionTypeDuplicate ActionType = "duplicate"
	ActionTypeOrphan    ActionType = "orphan"
)

// Action is one recommended remediation step. Duplicate actions populate Filename, Keep, Remove, and
// Identical; orphan actions populate Path. Paths are relative to the audit root.
type Action struct {
	Type      ActionType `json:"type" yaml:"type"`
	Filename  string     `json:"filename,omitempty" yaml:"filename,omitempty"`
	Keep      string     `json:"keep,omitempty" yaml:"keep,omitempty"`
	Remove    string     `json:"remove,omitempty" yaml:"remove,omitempty"`
	Identical *bool      `json:"identical,omitempty" yaml:"identical,omitempty"`
	Path      string     `json:"path,omitempty" yaml:"path,omitempty"`
}

// NewDuplicateAction recommends removing removePath in favour of keepPath.
func NewDuplicateAction(filename string, keepPath string, removePath string, identical bool) Action {
	return Action{
		Type:      ActionTypeDuplicate,
		Filename:  filename,
		Keep:      keepPath,
		Remove:    removePath,
		Identical: &identical,
	}
}

// NewOrphanAction flags path for registration in the manifest or deletion.
func NewOrphanAction(path string) Action {
	return Action{Type: ActionTypeOrphan, Path: path}
}

// IsIdentical reports whether a duplicate action is a safe delete.
func (action Action) IsIdentical() bool {
	return action.Identical != nil && *action.Identical
}
