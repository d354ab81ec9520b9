package audit

import (
	"github.com/temirov/srcaudit/internal/duplicates"
	"github.com/temirov/srcaudit/internal/fingerprint"
	"github.com/temirov/srcaudit/internal/inventory"
	"github.com/temirov/srcaudit/internal/manifest"
	"github.com/temirov/srcaudit/internal/plan"
	"github.com/temirov/srcaudit/internal/report"
)

// Options captures one fully resolved audit run. Paths are absolute; PlanPath is empty when the plan
// is not persisted.
type Options struct {
	Root          string
	ManifestPath  string
	PlanPath      string
	PlanFormat    plan.Format
	HashAlgorithm fingerprint.HashAlgorithm
	Discovery     inventory.DiscoveryConfiguration
	KeyStrategy   duplicates.KeyStrategy
	Membership    manifest.MembershipStrategy
	Report        report.Options
}

// Result summarizes a completed audit run.
type Result struct {
	Records       []inventory.FileRecord
	Groups        []duplicates.Group
	Comparisons   map[string][]duplicates.Comparison
	References    manifest.ReferenceSet
	ManifestFound bool
	Plan          plan.Plan
	PlanPath      string
}
