package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/temirov/srcaudit/internal/duplicates"
	"github.com/temirov/srcaudit/internal/inventory"
	"github.com/temirov/srcaudit/internal/plan"
)

const (
	sectionWidthConstant                = 80
	sectionRuleCharacterConstant        = "="
	partRuleCharacterConstant           = "─"
	reportTitleConstant                 = "SOURCE TREE STRUCTURAL AUDIT"
	rootLineTemplateConstant            = "Scanning root: %s\n"
	manifestLineTemplateConstant        = "Manifest: %s\n"
	manifestMissingLineTemplateConstant = "Manifest: %s (unavailable, every candidate is reported as an orphan)\n"
	duplicatesSectionTitleConstant      = "DUPLICATE FILES ANALYSIS"
	noDuplicatesMessageConstant         = "No duplicate filenames found."
	duplicatesFoundTemplateConstant     = "Found %s filenames with duplicates:\n"
	duplicateGroupTitleTemplateConstant = " FILE: %s"
	comparisonHeadingConstant           = "  CONTENTS COMPARISON:"
	comparisonIdenticalTemplateConstant = "     IDENTICAL  %s <-> %s\n"
	comparisonDifferentTemplateConstant = "     DIFFERENT  %s <-> %s\n"
	comparisonSideTemplateConstant      = "       File %d: %s lines, %s bytes\n"
	comparisonDeltaTemplateConstant     = "       Difference: %s lines, %s bytes\n"
	orphansSectionTitleTemplateConstant = "ORPHAN FILES (not in %s)"
	noOrphansMessageConstant            = "Every candidate file is referenced by the manifest."
	orphansFoundTemplateConstant        = "Found %s files on disk not referenced in %s:\n"
	actionPlanSectionTitleConstant      = "RECOMMENDED ACTION PLAN"
	noIssuesMessageConstant             = "No issues found. No action needed."
	duplicatesPartTitleConstant         = " PART 1: DUPLICATE FILES RESOLUTION"
	orphansPartTitleConstant            = " PART 2: ORPHAN FILES REGISTRATION"
	resolutionTitleTemplateConstant     = "  %s\n"
	keepLineTemplateConstant            = "     KEEP: %s\n"
	deleteLineTemplateConstant          = "     DELETE: %s (identical to kept file)\n"
	mergeLineTemplateConstant           = "     MERGE then DELETE: %s (DIFFERENT CONTENTS)\n"
	mergeHintLineConstant               = "        -> Manually review and merge any unique code"
	orphanHintTemplateConstant          = "These files exist on disk but are not referenced by %s.\nRegister each one with the project target it belongs to, or delete it if it is no longer needed:\n"
	orphanListItemTemplateConstant      = "  • %s\n"
	summaryTitleConstant                = " SUMMARY"
	totalIssuesTemplateConstant         = "Total Issues Found: %s\n"
	duplicateNamesTemplateConstant      = "  • Duplicate filenames: %s\n"
	orphanCountTemplateConstant         = "  • Orphan files: %s\n"
	duplicateAnalysisHeadingConstant    = "Duplicate Analysis:"
	identicalPairsTemplateConstant      = "  • Identical copies (safe to delete): %s\n"
	differentPairsTemplateConstant      = "  • Different copies (need merge): %s\n"
	planSavedTemplateConstant           = "Action plan saved to: %s\n"
	planNotSavedMessageConstant         = "Action plan was not written."
	auditCompleteTitleConstant          = "AUDIT COMPLETE"
	noFilesModifiedMessageConstant      = "NO FILES HAVE BEEN MODIFIED"
	reviewReminderMessageConstant       = "    Review the report above before proceeding with any changes."
	mostSpecificMarkerConstant          = "MOST SPECIFIC (likely correct)"
	leastSpecificMarkerConstant         = "LEAST SPECIFIC (possibly stale)"
	copyIndexHeaderConstant             = "#"
	copyPathHeaderConstant              = "Path"
	copyLinesHeaderConstant             = "Lines"
	copySizeHeaderConstant              = "Size (bytes)"
	copyDepthHeaderConstant             = "Depth"
	copyMarkerHeaderConstant            = "Marker"
	orphanPathHeaderConstant            = "Path"
	orphanLinesHeaderConstant           = "Lines"
	orphanSizeHeaderConstant            = "Size (bytes)"
	copyIndexTemplateConstant           = "[%d]"
	emptyMarkerConstant                 = ""
	renderReportErrorTemplateConstant   = "failed to render audit report: %w"
)

// Input carries everything the report shows. PlanPath is empty when the plan was not persisted.
type Input struct {
	Root          string
	ManifestPath  string
	ManifestFound bool
	Groups        []duplicates.Group
	Comparisons   map[string][]duplicates.Comparison
	Plan          plan.Plan
	PlanPath      string
}

// Options adjusts rendering.
type Options struct {
	DisableColor bool
}

type palette struct {
	section  *color.Color
	part     *color.Color
	success  *color.Color
	warning  *color.Color
	failure  *color.Color
	emphasis *color.Color
}

func newPalette(disableColor bool) palette {
	colors := palette{
		section:  color.New(color.FgBlue, color.Bold),
		part:     color.New(color.FgCyan, color.Bold),
		success:  color.New(color.FgGreen, color.Bold),
		warning:  color.New(color.FgYellow, color.Bold),
		failure:  color.New(color.FgRed, color.Bold),
		emphasis: color.New(color.FgWhite, color.Bold),
	}
	if disableColor {
		for _, entry := range []*color.Color{colors.section, colors.part, colors.success, colors.warning, colors.failure, colors.emphasis} {
			entry.DisableColor()
		}
	}
	return colors
}

// Renderer writes the console report.
type Renderer struct {
	output  io.Writer
	colors  palette
	numbers *message.Printer
}

// NewRenderer constructs a Renderer writing to output.
func NewRenderer(output io.Writer, options Options) Renderer {
	return Renderer{
		output:  output,
		colors:  newPalette(options.DisableColor),
		numbers: message.NewPrinter(language.English),
	}
}

// Render writes the full report.
func (renderer Renderer) Render(input Input) error {
	out := &printer{output: renderer.output}

	renderer.renderHeader(out, input)
	renderer.renderDuplicates(out, input)
	renderer.renderOrphans(out, input)
	renderer.renderActionPlan(out, input)
	renderer.renderSummary(out, input)
	renderer.renderTrailer(out)

	if out.err != nil {
		return fmt.Errorf(renderReportErrorTemplateConstant, out.err)
	}
	return nil
}

func (renderer Renderer) renderHeader(out *printer, input Input) {
	renderer.section(out, reportTitleConstant)
	out.printf(rootLineTemplateConstant, input.Root)
	if input.ManifestFound {
		out.printf(manifestLineTemplateConstant, input.ManifestPath)
		return
	}
	out.printf(manifestMissingLineTemplateConstant, renderer.colors.failure.Sprint(input.ManifestPath))
}

func (renderer Renderer) renderDuplicates(out *printer, input Input) {
	renderer.section(out, duplicatesSectionTitleConstant)
	if len(input.Groups) == 0 {
		out.println(renderer.colors.success.Sprint(noDuplicatesMessageConstant))
		return
	}

	out.printf(duplicatesFoundTemplateConstant, renderer.count(len(input.Groups)))
	for _, group := range input.Groups {
		renderer.part(out, fmt.Sprintf(duplicateGroupTitleTemplateConstant, group.Key))

		table := newTable(out, []string{copyIndexHeaderConstant, copyPathHeaderConstant, copyLinesHeaderConstant, copySizeHeaderConstant, copyDepthHeaderConstant, copyMarkerHeaderConstant})
		shallowest, deepest := depthRange(group.Members)
		for memberIndex, member := range group.Members {
			table.Append([]string{
				fmt.Sprintf(copyIndexTemplateConstant, memberIndex+1),
				displayPath(input.Root, member.AbsolutePath),
				renderer.count(member.LineCount),
				renderer.count64(member.SizeBytes),
				strconv.Itoa(member.Depth),
				specificityMarker(member.Depth, shallowest, deepest),
			})
		}
		table.Render()

		out.println()
		out.println(comparisonHeadingConstant)
		for _, comparison := range input.Comparisons[group.Key] {
			firstPath := displayPath(input.Root, comparison.First.AbsolutePath)
			secondPath := displayPath(input.Root, comparison.Second.AbsolutePath)
			if comparison.Identical {
				out.printf(comparisonIdenticalTemplateConstant, firstPath, secondPath)
				continue
			}
			out.printf(comparisonDifferentTemplateConstant, firstPath, secondPath)
			out.printf(comparisonSideTemplateConstant, 1, renderer.count(comparison.First.LineCount), renderer.count64(comparison.First.SizeBytes))
			out.printf(comparisonSideTemplateConstant, 2, renderer.count(comparison.Second.LineCount), renderer.count64(comparison.Second.SizeBytes))
			out.printf(comparisonDeltaTemplateConstant, renderer.signed(int64(comparison.LineDelta())), renderer.signed(comparison.SizeDelta()))
		}
	}
}

func (renderer Renderer) renderOrphans(out *printer, input Input) {
	manifestName := filepath.Base(input.ManifestPath)
	renderer.section(out, fmt.Sprintf(orphansSectionTitleTemplateConstant, manifestName))
	if len(input.Plan.Orphans) == 0 {
		out.println(renderer.colors.success.Sprint(noOrphansMessageConstant))
		return
	}

	out.printf(orphansFoundTemplateConstant, renderer.count(len(input.Plan.Orphans)), manifestName)
	table := newTable(out, []string{orphanPathHeaderConstant, orphanLinesHeaderConstant, orphanSizeHeaderConstant})
	for _, orphanRecord := range input.Plan.Orphans {
		table.Append([]string{orphanRecord.RelativePath, renderer.count(orphanRecord.LineCount), renderer.count64(orphanRecord.SizeBytes)})
	}
	table.Render()
}

func (renderer Renderer) renderActionPlan(out *printer, input Input) {
	renderer.section(out, actionPlanSectionTitleConstant)
	if input.Plan.IsEmpty() {
		out.println(renderer.colors.success.Sprint(noIssuesMessageConstant))
		return
	}

	if len(input.Plan.Resolutions) > 0 {
		renderer.part(out, duplicatesPartTitleConstant)
		for _, resolution := range input.Plan.Resolutions {
			out.printf(resolutionTitleTemplateConstant, renderer.colors.emphasis.Sprint(resolution.Key))
			out.printf(keepLineTemplateConstant, resolution.KeepRelativePath)
			for _, removal := range resolution.Removals {
				if removal.Identical {
					out.printf(deleteLineTemplateConstant, removal.RelativePath)
					continue
				}
				out.printf(mergeLineTemplateConstant, renderer.colors.warning.Sprint(removal.RelativePath))
				out.println(mergeHintLineConstant)
			}
			out.println()
		}
	}

	if len(input.Plan.Orphans) > 0 {
		renderer.part(out, orphansPartTitleConstant)
		out.printf(orphanHintTemplateConstant, filepath.Base(input.ManifestPath))
		for _, orphanRecord := range input.Plan.Orphans {
			out.printf(orphanListItemTemplateConstant, orphanRecord.RelativePath)
		}
	}
}

func (renderer Renderer) renderSummary(out *printer, input Input) {
	renderer.part(out, summaryTitleConstant)

	identicalPairs, differentPairs := countVerdicts(input.Groups, input.Comparisons)
	out.printf(totalIssuesTemplateConstant, renderer.count(len(input.Groups)+len(input.Plan.Orphans)))
	out.printf(duplicateNamesTemplateConstant, renderer.count(len(input.Groups)))
	out.printf(orphanCountTemplateConstant, renderer.count(len(input.Plan.Orphans)))
	out.println()
	out.println(duplicateAnalysisHeadingConstant)
	out.printf(identicalPairsTemplateConstant, renderer.count(identicalPairs))
	out.printf(differentPairsTemplateConstant, renderer.count(differentPairs))
	out.println()

	if len(strings.TrimSpace(input.PlanPath)) == 0 {
		out.println(planNotSavedMessageConstant)
		return
	}
	out.printf(planSavedTemplateConstant, input.PlanPath)
}

func (renderer Renderer) renderTrailer(out *printer) {
	renderer.section(out, auditCompleteTitleConstant)
	out.println(renderer.colors.warning.Sprint(noFilesModifiedMessageConstant))
	out.println(reviewReminderMessageConstant)
}

func (renderer Renderer) section(out *printer, title string) {
	rule := strings.Repeat(sectionRuleCharacterConstant, sectionWidthConstant)
	out.println()
	out.println(rule)
	out.println(renderer.colors.section.Sprint(" " + title))
	out.println(rule)
	out.println()
}

func (renderer Renderer) part(out *printer, title string) {
	rule := strings.Repeat(partRuleCharacterConstant, sectionWidthConstant)
	out.println()
	out.println(rule)
	out.println(renderer.colors.part.Sprint(title))
	out.println(rule)
	out.println()
}

func (renderer Renderer) count(value int) string {
	return renderer.numbers.Sprintf("%d", value)
}

func (renderer Renderer) count64(value int64) string {
	return renderer.numbers.Sprintf("%d", value)
}

func (renderer Renderer) signed(value int64) string {
	return renderer.numbers.Sprintf("%+d", value)
}

func newTable(output io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(output)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func depthRange(members []inventory.FileRecord) (int, int) {
	if len(members) == 0 {
		return 0, 0
	}
	shallowest, deepest := members[0].Depth, members[0].Depth
	for _, member := range members[1:] {
		if member.Depth < shallowest {
			shallowest = member.Depth
		}
		if member.Depth > deepest {
			deepest = member.Depth
		}
	}
	return shallowest, deepest
}

func specificityMarker(depth int, shallowest int, deepest int) string {
	switch depth {
	case deepest:
		return mostSpecificMarkerConstant
	case shallowest:
		return leastSpecificMarkerConstant
	default:
		return emptyMarkerConstant
	}
}

func countVerdicts(groups []duplicates.Group, comparisonsByKey map[string][]duplicates.Comparison) (int, int) {
	identicalPairs := 0
	differentPairs := 0
	for _, group := range groups {
		for _, comparison := range comparisonsByKey[group.Key] {
			if comparison.Identical {
				identicalPairs++
				continue
			}
			differentPairs++
		}
	}
	return identicalPairs, differentPairs
}

func displayPath(root string, absolutePath string) string {
	relativePath, relativeError := inventory.RelativePath(root, absolutePath)
	if relativeError != nil {
		return absolutePath
	}
	return relativePath
}

// printer remembers the first write failure and drops everything after it.
type printer struct {
	output io.Writer
	err    error
}

func (out *printer) Write(data []byte) (int, error) {
	if out.err != nil {
		return 0, out.err
	}
	written, writeError := out.output.Write(data)
	if writeError != nil {
		out.err = writeError
	}
	return written, writeError
}

func (out *printer) printf(format string, arguments ...any) {
	_, _ = fmt.Fprintf(out, format, arguments...)
}

func (out *printer) println(arguments ...any) {
	_, _ = fmt.Fprintln(out, arguments...)
}
