// Package fingerprint computes the content metrics used to compare source files.
//
// A Fingerprinter reports the byte size, the line count, and a content digest of
// a single file. Each metric is gathered independently so that a failure reading
// one of them leaves the others usable; failures degrade to zero values and are
// logged as warnings instead of aborting the audit.
package fingerprint
