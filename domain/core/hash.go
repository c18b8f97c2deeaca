package core

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, enough to tell sources apart in a summary.
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Fingerprinter accumulates source bytes as they are read.
type Fingerprinter struct {
	h hash.Hash
}

// NewFingerprinter returns a SHA-256 backed fingerprinter
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{h: sha256.New()}
}

// Write implements io.Writer so the fingerprinter can sit behind an io.TeeReader.
func (f *Fingerprinter) Write(p []byte) (int, error) {
	return f.h.Write(p)
}

// Sum returns the hash of everything written so far
func (f *Fingerprinter) Sum() Hash {
	return Hash(hex.EncodeToString(f.h.Sum(nil)))
}
