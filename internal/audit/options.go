package audit

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/srcaudit/internal/duplicates"
	"github.com/temirov/srcaudit/internal/fingerprint"
	"github.com/temirov/srcaudit/internal/inventory"
	"github.com/temirov/srcaudit/internal/manifest"
	"github.com/temirov/srcaudit/internal/plan"
	"github.com/temirov/srcaudit/internal/utils/flags"
	pathutils "github.com/temirov/srcaudit/internal/utils/path"
)

const (
	planFormatOptionNameConstant       = "plan format"
	hashAlgorithmOptionNameConstant    = "hash algorithm"
	duplicateKeyOptionNameConstant     = "duplicate key"
	membershipOptionNameConstant       = "membership strategy"
	resolveRootErrorTemplateConstant   = "failed to resolve audit root %s: %w"
	invalidOptionErrorTemplateConstant = "invalid audit configuration: %w"
)

// PathResolver converts paths to absolute form.
type PathResolver interface {
	Abs(path string) (string, error)
}

// ResolveOptions validates configuration and resolves it into Options. The manifest and plan paths
// are resolved against the root when relative. The default plan file name takes the extension of the
// chosen plan format, and the plan location is always excluded from discovery.
func ResolveOptions(configuration CommandConfiguration, resolver PathResolver, expander *pathutils.HomeExpander) (Options, error) {
	sanitized := configuration.Sanitize()
	defaults := DefaultCommandConfiguration()

	planFormatName, planFormatError := flags.ResolveChoice(planFormatOptionNameConstant, sanitized.PlanFormat, defaults.PlanFormat, planFormatChoices())
	if planFormatError != nil {
		return Options{}, fmt.Errorf(invalidOptionErrorTemplateConstant, planFormatError)
	}
	planFormat, parseFormatError := plan.ParseFormat(planFormatName)
	if parseFormatError != nil {
		return Options{}, fmt.Errorf(invalidOptionErrorTemplateConstant, parseFormatError)
	}

	hashAlgorithmName, hashAlgorithmError := flags.ResolveChoice(hashAlgorithmOptionNameConstant, sanitized.HashAlgorithm, defaults.HashAlgorithm, hashAlgorithmChoices())
	if hashAlgorithmError != nil {
		return Options{}, fmt.Errorf(invalidOptionErrorTemplateConstant, hashAlgorithmError)
	}

	duplicateKeyName, duplicateKeyError := flags.ResolveChoice(duplicateKeyOptionNameConstant, sanitized.DuplicateKey, defaults.DuplicateKey, duplicateKeyChoices())
	if duplicateKeyError != nil {
		return Options{}, fmt.Errorf(invalidOptionErrorTemplateConstant, duplicateKeyError)
	}
	keyStrategy, keyStrategyError := duplicates.NewKeyStrategy(duplicateKeyName)
	if keyStrategyError != nil {
		return Options{}, fmt.Errorf(invalidOptionErrorTemplateConstant, keyStrategyError)
	}

	membershipName, membershipError := flags.ResolveChoice(membershipOptionNameConstant, sanitized.Membership, defaults.Membership, membershipChoices())
	if membershipError != nil {
		return Options{}, fmt.Errorf(invalidOptionErrorTemplateConstant, membershipError)
	}
	membershipStrategy, membershipStrategyError := manifest.NewMembershipStrategy(membershipName)
	if membershipStrategyError != nil {
		return Options{}, fmt.Errorf(invalidOptionErrorTemplateConstant, membershipStrategyError)
	}

	expandedRoot := expander.Expand(sanitized.Root)
	absoluteRoot, absoluteRootError := resolver.Abs(expandedRoot)
	if absoluteRootError != nil {
		return Options{}, fmt.Errorf(resolveRootErrorTemplateConstant, expandedRoot, absoluteRootError)
	}
	absoluteRoot = filepath.Clean(absoluteRoot)

	planLocation := filepath.Clean(expander.ResolveAgainst(absoluteRoot, planFileName(sanitized.PlanFile, planFormat)))

	options := Options{
		Root:          absoluteRoot,
		ManifestPath:  filepath.Clean(expander.ResolveAgainst(absoluteRoot, sanitized.Manifest)),
		PlanFormat:    planFormat,
		HashAlgorithm: fingerprint.HashAlgorithm(hashAlgorithmName),
		Discovery: inventory.DiscoveryConfiguration{
			Suffixes:            sanitized.Suffixes,
			ExcludedDirectories: sanitized.ExcludedDirectories,
			ExcludePatterns:     sanitized.ExcludePatterns,
			ExcludedPaths:       []string{planLocation},
		},
		KeyStrategy: keyStrategy,
		Membership:  membershipStrategy,
	}
	if sanitized.WritePlan {
		options.PlanPath = planLocation
	}

	return options, nil
}

func planFileName(configuredName string, format plan.Format) string {
	if configuredName != defaultPlanFileConstant {
		return configuredName
	}
	return strings.TrimSuffix(configuredName, filepath.Ext(configuredName)) + format.Extension()
}
