package audit

import (
	"strings"

	"github.com/temirov/srcaudit/internal/duplicates"
	"github.com/temirov/srcaudit/internal/fingerprint"
	"github.com/temirov/srcaudit/internal/manifest"
	"github.com/temirov/srcaudit/internal/plan"
)

const (
	defaultRootConstant         = "."
	defaultManifestConstant     = "project.pbxproj"
	defaultSuffixConstant       = ".swift"
	defaultPlanFileConstant     = "audit_actions.json"
	defaultDuplicateKeyConstant = "filename"
	defaultMembershipConstant   = "substring"
	configurationKeySeparator   = "."
	rootKeyConstant             = "root"
	manifestKeyConstant         = "manifest"
	suffixesKeyConstant         = "suffixes"
	excludedDirectoriesKey      = "excluded_directories"
	excludePatternsKeyConstant  = "exclude_patterns"
	planFileKeyConstant         = "plan_file"
	planFormatKeyConstant       = "plan_format"
	hashAlgorithmKeyConstant    = "hash_algorithm"
	duplicateKeyKeyConstant     = "duplicate_key"
	membershipKeyConstant       = "membership"
	writePlanKeyConstant        = "write_plan"
)

var (
	defaultExcludedDirectories = []string{"DerivedData", "build", ".git", "Pods"}
	defaultExcludePatterns     = []string{"**/*.xcodeproj"}
)

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	Root                string   `mapstructure:"root"`
	Manifest            string   `mapstructure:"manifest"`
	Suffixes            []string `mapstructure:"suffixes"`
	ExcludedDirectories []string `mapstructure:"excluded_directories"`
	ExcludePatterns     []string `mapstructure:"exclude_patterns"`
	PlanFile            string   `mapstructure:"plan_file"`
	PlanFormat          string   `mapstructure:"plan_format"`
	HashAlgorithm       string   `mapstructure:"hash_algorithm"`
	DuplicateKey        string   `mapstructure:"duplicate_key"`
	Membership          string   `mapstructure:"membership"`
	WritePlan           bool     `mapstructure:"write_plan"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Root:                defaultRootConstant,
		Manifest:            defaultManifestConstant,
		Suffixes:            []string{defaultSuffixConstant},
		ExcludedDirectories: append([]string{}, defaultExcludedDirectories...),
		ExcludePatterns:     append([]string{}, defaultExcludePatterns...),
		PlanFile:            defaultPlanFileConstant,
		PlanFormat:          string(plan.FormatJSON),
		HashAlgorithm:       string(fingerprint.HashAlgorithmSHA256),
		DuplicateKey:        defaultDuplicateKeyConstant,
		Membership:          defaultMembershipConstant,
		WritePlan:           true,
	}
}

// DefaultConfigurationValues returns the defaults keyed for the configuration loader under sectionKey.
func DefaultConfigurationValues(sectionKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	prefix := sectionKey + configurationKeySeparator
	return map[string]any{
		prefix + rootKeyConstant:            defaults.Root,
		prefix + manifestKeyConstant:        defaults.Manifest,
		prefix + suffixesKeyConstant:        defaults.Suffixes,
		prefix + excludedDirectoriesKey:     defaults.ExcludedDirectories,
		prefix + excludePatternsKeyConstant: defaults.ExcludePatterns,
		prefix + planFileKeyConstant:        defaults.PlanFile,
		prefix + planFormatKeyConstant:      defaults.PlanFormat,
		prefix + hashAlgorithmKeyConstant:   defaults.HashAlgorithm,
		prefix + duplicateKeyKeyConstant:    defaults.DuplicateKey,
		prefix + membershipKeyConstant:      defaults.Membership,
		prefix + writePlanKeyConstant:       defaults.WritePlan,
	}
}

// Sanitize trims configured values, drops empty list entries, and restores defaults for blank scalars.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.Root = valueOrDefault(configuration.Root, defaults.Root)
	sanitized.Manifest = valueOrDefault(configuration.Manifest, defaults.Manifest)
	sanitized.PlanFile = valueOrDefault(configuration.PlanFile, defaults.PlanFile)
	sanitized.PlanFormat = valueOrDefault(configuration.PlanFormat, defaults.PlanFormat)
	sanitized.HashAlgorithm = valueOrDefault(configuration.HashAlgorithm, defaults.HashAlgorithm)
	sanitized.DuplicateKey = valueOrDefault(configuration.DuplicateKey, defaults.DuplicateKey)
	sanitized.Membership = valueOrDefault(configuration.Membership, defaults.Membership)

	sanitized.Suffixes = sanitizeList(configuration.Suffixes)
	if len(sanitized.Suffixes) == 0 {
		sanitized.Suffixes = defaults.Suffixes
	}
	sanitized.ExcludedDirectories = sanitizeList(configuration.ExcludedDirectories)
	sanitized.ExcludePatterns = sanitizeList(configuration.ExcludePatterns)

	return sanitized
}

func planFormatChoices() []string {
	return plan.FormatNames()
}

func hashAlgorithmChoices() []string {
	return fingerprint.SupportedHashAlgorithms()
}

func duplicateKeyChoices() []string {
	return duplicates.KeyStrategyNames()
}

func membershipChoices() []string {
	return manifest.MembershipStrategyNames()
}

func valueOrDefault(value string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}

func sanitizeList(values []string) []string {
	sanitized := make([]string, 0, len(values))
	for _, value := range values {
		trimmedValue := strings.TrimSpace(value)
		if len(trimmedValue) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmedValue)
	}
	return sanitized
}
