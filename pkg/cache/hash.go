package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"io"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashReader hashes everything read through it, so a graph file can be
// fingerprinted in the same pass that loads it.
type HashReader struct {
	r io.Reader
	h hash.Hash
}

// NewHashReader wraps r.
func NewHashReader(r io.Reader) *HashReader {
	h := sha256.New()
	return &HashReader{r: io.TeeReader(r, h), h: h}
}

// Read implements io.Reader.
func (hr *HashReader) Read(p []byte) (int, error) { return hr.r.Read(p) }

// Sum returns the hex SHA-256 of the bytes read so far.
func (hr *HashReader) Sum() string { return hex.EncodeToString(hr.h.Sum(nil)) }
