// Package report renders the human-readable audit report: duplicate analysis, orphan analysis,
// the recommended action plan, and a summary. Rendering never touches the audited files.
package report
