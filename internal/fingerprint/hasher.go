package fingerprint

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"
)

const (
	openFileErrorTemplateConstant         = "failed to open file: %w"
	readFileErrorTemplateConstant         = "failed to read file: %w"
	unsupportedAlgorithmErrorTemplate     = "unsupported hash algorithm: %s"
	hashAlgorithmSHA256StringConstant     = "sha256"
	hashAlgorithmMD5StringConstant        = "md5"
	missingFileOpenerErrorMessageConstant = "file opener not configured"
)

// HashAlgorithm names a supported content digest.
type HashAlgorithm string

// Supported content digests.
const (
	HashAlgorithmSHA256 HashAlgorithm = HashAlgorithm(hashAlgorithmSHA256StringConstant)
	HashAlgorithmMD5    HashAlgorithm = HashAlgorithm(hashAlgorithmMD5StringConstant)
)

var digestConstructors = map[HashAlgorithm]func() hash.Hash{
	HashAlgorithmSHA256: sha256.New,
	HashAlgorithmMD5:    md5.New,
}

// SupportedHashAlgorithms lists the digest names accepted by NewDigestHasher.
func SupportedHashAlgorithms() []string {
	return []string{hashAlgorithmSHA256StringConstant, hashAlgorithmMD5StringConstant}
}

// FileOpener opens files for reading.
type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

// Hasher computes a content digest for a file.
type Hasher interface {
	HashFile(path string) (string, error)
}

// DigestHasher hashes file contents with a standard library digest and renders it as lowercase hex.
type DigestHasher struct {
	algorithm HashAlgorithm
	newDigest func() hash.Hash
	opener    FileOpener
}

// NewDigestHasher constructs a DigestHasher for the named algorithm.
func NewDigestHasher(algorithm HashAlgorithm, opener FileOpener) (*DigestHasher, error) {
	if opener == nil {
		return nil, errors.New(missingFileOpenerErrorMessageConstant)
	}

	normalizedAlgorithm := HashAlgorithm(strings.ToLower(strings.TrimSpace(string(algorithm))))
	constructor, supported := digestConstructors[normalizedAlgorithm]
	if !supported {
		return nil, fmt.Errorf(unsupportedAlgorithmErrorTemplate, algorithm)
	}

	return &DigestHasher{algorithm: normalizedAlgorithm, newDigest: constructor, opener: opener}, nil
}

// Algorithm reports the digest in use.
func (hasher *DigestHasher) Algorithm() HashAlgorithm {
	return hasher.algorithm
}

// HashFile streams the file through the digest.
func (hasher *DigestHasher) HashFile(path string) (string, error) {
	file, openError := hasher.opener.Open(path)
	if openError != nil {
		return "", fmt.Errorf(openFileErrorTemplateConstant, openError)
	}
	defer func() {
		_ = file.Close()
	}()

	digest := hasher.newDigest()
	if _, copyError := io.Copy(digest, file); copyError != nil {
		return "", fmt.Errorf(readFileErrorTemplateConstant, copyError)
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
