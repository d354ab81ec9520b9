package audit

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/srcaudit/internal/filesystem"
	"github.com/temirov/srcaudit/internal/utils"
	"github.com/temirov/srcaudit/internal/utils/flags"
	pathutils "github.com/temirov/srcaudit/internal/utils/path"
)

const (
	commandUseConstant                    = "audit"
	commandShortDescriptionConstant       = "Report duplicate and orphan source files"
	commandLongDescriptionConstant        = "audit scans a source tree, reports files that share a filename and files the project manifest never references, and saves a remediation plan. It never modifies the audited files."
	commandExecutionErrorTemplateConstant = "audit failed: %w"
	unexpectedArgumentsMessageConstant    = "audit does not accept positional arguments"
	configurationFileMessageConstant      = "using configuration file"
	flagRootNameConstant                  = "root"
	flagRootDescriptionConstant           = "Source tree to audit"
	flagManifestNameConstant              = "manifest"
	flagManifestDescriptionConstant       = "Project manifest, relative to the root unless absolute"
	flagPlanFileNameConstant              = "plan-file"
	flagPlanFileDescriptionConstant       = "Action plan location, relative to the root unless absolute"
	flagPlanFormatNameConstant            = "plan-format"
	flagPlanFormatDescriptionConstant     = "Action plan serialization"
	flagDuplicateKeyNameConstant          = "duplicate-key"
	flagDuplicateKeyDescriptionConstant   = "How files are grouped as duplicates"
	flagMembershipNameConstant            = "membership"
	flagMembershipDescriptionConstant     = "How files are matched against manifest references"
	flagNoPlanNameConstant                = "no-plan"
	flagNoPlanDescriptionConstant         = "Render the report without saving the action plan"
	logFieldConfigurationPathConstant     = "configuration_path"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current audit configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            FileSystem
	DiscovererFactory     SourceDiscovererFactory
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the audit command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagRootNameConstant, "", flagRootDescriptionConstant)
	command.Flags().String(flagManifestNameConstant, "", flagManifestDescriptionConstant)
	command.Flags().String(flagPlanFileNameConstant, "", flagPlanFileDescriptionConstant)
	command.Flags().String(flagPlanFormatNameConstant, "", flags.FormatChoiceUsage(defaults.PlanFormat, planFormatChoices(), flagPlanFormatDescriptionConstant))
	command.Flags().String(flagDuplicateKeyNameConstant, "", flags.FormatChoiceUsage(defaults.DuplicateKey, duplicateKeyChoices(), flagDuplicateKeyDescriptionConstant))
	command.Flags().String(flagMembershipNameConstant, "", flags.FormatChoiceUsage(defaults.Membership, membershipChoices(), flagMembershipDescriptionConstant))
	command.Flags().Bool(flagNoPlanNameConstant, false, flagNoPlanDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	logger := builder.resolveLogger()
	if configurationPath, found := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context()); found {
		logger.Debug(configurationFileMessageConstant, zap.String(logFieldConfigurationPathConstant, configurationPath))
	}

	configuration, configurationError := builder.parseConfiguration(command)
	if configurationError != nil {
		return configurationError
	}

	fileSystem := builder.resolveFileSystem()
	options, optionsError := ResolveOptions(configuration, fileSystem, builder.resolveHomeExpander())
	if optionsError != nil {
		return optionsError
	}
	options.Report.DisableColor = command.OutOrStdout() != os.Stdout

	service, serviceError := NewService(logger, fileSystem, builder.resolveDiscovererFactory(logger), utils.NewFlushingWriter(command.OutOrStdout()))
	if serviceError != nil {
		return serviceError
	}

	if _, runError := service.Run(command.Context(), options); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}
	return nil
}

func (builder *CommandBuilder) parseConfiguration(command *cobra.Command) (CommandConfiguration, error) {
	configuration := builder.resolveConfiguration()

	stringOverrides := []struct {
		flagName string
		target   *string
	}{
		{flagName: flagRootNameConstant, target: &configuration.Root},
		{flagName: flagManifestNameConstant, target: &configuration.Manifest},
		{flagName: flagPlanFileNameConstant, target: &configuration.PlanFile},
		{flagName: flagPlanFormatNameConstant, target: &configuration.PlanFormat},
		{flagName: flagDuplicateKeyNameConstant, target: &configuration.DuplicateKey},
		{flagName: flagMembershipNameConstant, target: &configuration.Membership},
	}
	for _, override := range stringOverrides {
		flagValue, flagError := command.Flags().GetString(override.flagName)
		if flagError != nil {
			return CommandConfiguration{}, flagError
		}
		if len(strings.TrimSpace(flagValue)) > 0 {
			*override.target = flagValue
		}
	}

	if command.Flags().Changed(flagNoPlanNameConstant) {
		noPlanValue, noPlanError := command.Flags().GetBool(flagNoPlanNameConstant)
		if noPlanError != nil {
			return CommandConfiguration{}, noPlanError
		}
		configuration.WritePlan = !noPlanValue
	}

	return configuration, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return filesystem.OSFileSystem{}
}

func (builder *CommandBuilder) resolveDiscovererFactory(logger *zap.Logger) SourceDiscovererFactory {
	if builder.DiscovererFactory != nil {
		return builder.DiscovererFactory
	}
	return NewFilesystemDiscovererFactory(logger)
}

func (builder *CommandBuilder) resolveHomeExpander() *pathutils.HomeExpander {
	if builder.HomeExpander != nil {
		return builder.HomeExpander
	}
	return pathutils.NewHomeExpander()
}
