// Package audit drives a source tree audit: it discovers candidate files, fingerprints them, groups
// duplicates, checks manifest membership, plans remediation, persists the plan, and renders the report.
//
// CommandBuilder wires the audit Cobra command and Service runs the pipeline programmatically.
// Audited files are only ever read.
package audit
