package audit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/srcaudit/internal/duplicates"
	"github.com/temirov/srcaudit/internal/fingerprint"
	"github.com/temirov/srcaudit/internal/inventory"
	"github.com/temirov/srcaudit/internal/manifest"
	"github.com/temirov/srcaudit/internal/orphans"
	"github.com/temirov/srcaudit/internal/plan"
	"github.com/temirov/srcaudit/internal/report"
)

const (
	missingFileSystemMessageConstant  = "audit service requires a filesystem"
	missingDiscovererMessageConstant  = "audit service requires a source discoverer factory"
	discoveryErrorTemplateConstant    = "failed to discover source files: %w"
	discovererErrorTemplateConstant   = "failed to configure source discovery: %w"
	hasherErrorTemplateConstant       = "failed to configure content fingerprint: %w"
	extractorErrorTemplateConstant    = "failed to configure manifest extraction: %w"
	writePlanErrorTemplateConstant    = "failed to persist action plan: %w"
	renderReportErrorTemplateConstant = "failed to render audit report: %w"
	auditStartedMessageConstant       = "auditing source tree"
	candidatesFoundMessageConstant    = "found candidate files"
	duplicatesFoundMessageConstant    = "found duplicate filenames"
	pairsAnalyzedMessageConstant      = "analyzed duplicate pairs"
	orphansFoundMessageConstant       = "found potential orphans"
	planSavedMessageConstant          = "action plan saved"
	planSkippedMessageConstant        = "action plan persistence disabled"
	logFieldRootConstant              = "root"
	logFieldManifestConstant          = "manifest"
	logFieldCountConstant             = "count"
	logFieldPathConstant              = "path"
	logFieldActionsConstant           = "actions"
)

// Service runs the audit pipeline.
type Service struct {
	logger            *zap.Logger
	fileSystem        FileSystem
	discovererFactory SourceDiscovererFactory
	output            io.Writer
}

// NewService constructs a Service. A nil logger discards logs and a nil output discards the report.
func NewService(logger *zap.Logger, fileSystem FileSystem, discovererFactory SourceDiscovererFactory, output io.Writer) (*Service, error) {
	if fileSystem == nil {
		return nil, errors.New(missingFileSystemMessageConstant)
	}
	if discovererFactory == nil {
		return nil, errors.New(missingDiscovererMessageConstant)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if output == nil {
		output = io.Discard
	}
	return &Service{
		logger:            logger,
		fileSystem:        fileSystem,
		discovererFactory: discovererFactory,
		output:            output,
	}, nil
}

// NewFilesystemDiscovererFactory returns a factory producing inventory.FilesystemSourceDiscoverer instances.
func NewFilesystemDiscovererFactory(logger *zap.Logger) SourceDiscovererFactory {
	return func(options Options) (SourceDiscoverer, error) {
		return inventory.NewFilesystemSourceDiscoverer(options.Discovery, logger)
	}
}

// Run executes one audit. Per-file failures are logged and never abort the run; configuration errors,
// a failed walk of the root, and a failed plan write are returned.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	if executionContext != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return Result{}, contextError
		}
	}

	service.logger.Info(auditStartedMessageConstant, zap.String(logFieldRootConstant, options.Root), zap.String(logFieldManifestConstant, options.ManifestPath))

	discoverer, discovererError := service.discovererFactory(options)
	if discovererError != nil {
		return Result{}, fmt.Errorf(discovererErrorTemplateConstant, discovererError)
	}
	hasher, hasherError := fingerprint.NewDigestHasher(options.HashAlgorithm, service.fileSystem)
	if hasherError != nil {
		return Result{}, fmt.Errorf(hasherErrorTemplateConstant, hasherError)
	}
	extractor, extractorError := manifest.NewPatternExtractor(options.Discovery.Suffixes)
	if extractorError != nil {
		return Result{}, fmt.Errorf(extractorErrorTemplateConstant, extractorError)
	}

	candidatePaths, discoveryError := discoverer.DiscoverSources(options.Root)
	if discoveryError != nil {
		return Result{}, fmt.Errorf(discoveryErrorTemplateConstant, discoveryError)
	}

	fingerprinter := fingerprint.NewFingerprinter(service.fileSystem, hasher, service.logger)
	records := inventory.BuildRecords(candidatePaths, fingerprinter)
	service.logger.Info(candidatesFoundMessageConstant, zap.Int(logFieldCountConstant, len(records)))

	groups := duplicates.NewGrouper(options.KeyStrategy).Group(records)
	service.logger.Info(duplicatesFoundMessageConstant, zap.Int(logFieldCountConstant, len(groups)))

	comparisons := duplicates.CompareGroups(groups)
	service.logger.Info(pairsAnalyzedMessageConstant, zap.Int(logFieldCountConstant, countComparisons(comparisons)))

	loader := manifest.NewLoader(manifest.NewFileTextProvider(service.fileSystem), extractor, service.logger)
	references, manifestFound := loader.Load(options.ManifestPath)

	orphanRecords := orphans.NewFinder(options.Root, options.Membership, service.logger).Find(records, references)
	service.logger.Info(orphansFoundMessageConstant, zap.Int(logFieldCountConstant, len(orphanRecords)))

	assembledPlan := plan.NewPlanner(options.Root, service.logger).Build(groups, comparisons, orphanRecords)

	result := Result{
		Records:       records,
		Groups:        groups,
		Comparisons:   comparisons,
		References:    references,
		ManifestFound: manifestFound,
		Plan:          assembledPlan,
	}

	if len(options.PlanPath) > 0 {
		writeError := plan.NewWriter(service.fileSystem).Write(options.PlanPath, options.PlanFormat, assembledPlan.Actions)
		if writeError != nil {
			return result, fmt.Errorf(writePlanErrorTemplateConstant, writeError)
		}
		result.PlanPath = options.PlanPath
		service.logger.Info(planSavedMessageConstant, zap.String(logFieldPathConstant, options.PlanPath), zap.Int(logFieldActionsConstant, len(assembledPlan.Actions)))
	} else {
		service.logger.Info(planSkippedMessageConstant)
	}

	renderError := report.NewRenderer(service.output, options.Report).Render(report.Input{
		Root:          options.Root,
		ManifestPath:  options.ManifestPath,
		ManifestFound: manifestFound,
		Groups:        groups,
		Comparisons:   comparisons,
		Plan:          assembledPlan,
		PlanPath:      result.PlanPath,
	})
	if renderError != nil {
		return result, fmt.Errorf(renderReportErrorTemplateConstant, renderError)
	}

	return result, nil
}

func countComparisons(comparisonsByKey map[string][]duplicates.Comparison) int {
	total := 0
	for _, comparisons := range comparisonsByKey {
		total += len(comparisons)
	}
	return total
}
