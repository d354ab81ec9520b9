package manifest

import (
	"fmt"
	"strings"
)

const (
	membershipSubstringConstant        = "substring"
	membershipSuffixConstant           = "suffix"
	unsupportedMembershipErrorTemplate = "unsupported membership strategy: %s"
	pathSeparatorConstant              = "/"
)

// MembershipStrategy decides whether a file is referenced by the manifest.
// relativePath is relative to the audit root and uses forward slashes.
type MembershipStrategy interface {
	IsReferenced(filename string, relativePath string, references ReferenceSet) bool
}

// SubstringMembership treats a file as referenced when its filename or its relative path occurs
// anywhere inside some reference. It favours recall: a short filename contained in an unrelated
// longer reference hides a genuine orphan.
type SubstringMembership struct{}

// IsReferenced implements MembershipStrategy.
func (SubstringMembership) IsReferenced(filename string, relativePath string, references ReferenceSet) bool {
	for reference := range references.members {
		if strings.Contains(reference, filename) || strings.Contains(reference, relativePath) {
			return true
		}
	}
	return false
}

// SuffixMembership requires a reference to equal the filename or the relative path, or to end with
// "/" followed by the relative path.
type SuffixMembership struct{}

// IsReferenced implements MembershipStrategy.
func (SuffixMembership) IsReferenced(filename string, relativePath string, references ReferenceSet) bool {
	if references.Contains(filename) || references.Contains(relativePath) {
		return true
	}
	for reference := range references.members {
		if strings.HasSuffix(reference, pathSeparatorConstant+relativePath) {
			return true
		}
	}
	return false
}

// MembershipStrategyNames lists the accepted strategy names, default first.
func MembershipStrategyNames() []string {
	return []string{membershipSubstringConstant, membershipSuffixConstant}
}

// NewMembershipStrategy resolves a strategy by name.
func NewMembershipStrategy(name string) (MembershipStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case membershipSubstringConstant, "":
		return SubstringMembership{}, nil
	case membershipSuffixConstant:
		return SuffixMembership{}, nil
	default:
		return nil, fmt.Errorf(unsupportedMembershipErrorTemplate, name)
	}
}
