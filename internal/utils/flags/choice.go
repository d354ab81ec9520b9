// Package flags formats and validates enumerated command-line options.
package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderTemplate      = "<%s>"
	choiceSeparatorLiteral         = "|"
	choiceUsageEmptyTemplate       = "`%s`"
	choiceUsageFullTemplate        = "`%s` %s"
	unsupportedChoiceErrorTemplate = "unsupported %s %q (expected one of %s)"
)

// FormatChoiceUsage renders a usage string listing the choices, with the default shown in upper case.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := normalizeChoice(defaultChoice)
	displayed := make([]string, 0, len(choices))
	for _, choice := range uniqueChoices(choices) {
		if normalizeChoice(choice) == normalizedDefault && len(normalizedDefault) > 0 {
			choice = strings.ToUpper(choice)
		}
		displayed = append(displayed, choice)
	}

	placeholder := fmt.Sprintf(choicePlaceholderTemplate, strings.Join(displayed, choiceSeparatorLiteral))
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// ResolveChoice matches value case-insensitively against choices and returns the canonical spelling.
// An empty value resolves to defaultChoice.
func ResolveChoice(optionName string, value string, defaultChoice string, choices []string) (string, error) {
	normalizedValue := normalizeChoice(value)
	if len(normalizedValue) == 0 {
		normalizedValue = normalizeChoice(defaultChoice)
	}

	available := uniqueChoices(choices)
	for _, choice := range available {
		if normalizeChoice(choice) == normalizedValue {
			return choice, nil
		}
	}

	return "", fmt.Errorf(unsupportedChoiceErrorTemplate, optionName, value, strings.Join(available, ", "))
}

func uniqueChoices(choices []string) []string {
	unique := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		normalized := normalizeChoice(trimmedChoice)
		if len(normalized) == 0 {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		unique = append(unique, trimmedChoice)
	}
	return unique
}

func normalizeChoice(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
