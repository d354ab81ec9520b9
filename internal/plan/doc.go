// Package plan turns duplicate groups and orphans into an ordered remediation plan
// and persists it.
//
// The plan is a recommendation for a human: the deepest copy of each duplicate
// group is proposed as the one to keep, and every action must be confirmed
// before it is applied. Nothing in this package touches the audited files.
package plan
