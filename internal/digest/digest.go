package digest

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// Algorithm identifies a supported fingerprint algorithm.
type Algorithm string

const (
	// MD5 is the default algorithm. It matches the digests the original
	// md5sum filter logged, so histories remain comparable across tools.
	MD5 Algorithm = "md5"
	// SHA256 is offered for deployments that want a modern hash and do not
	// need md5sum-compatible output.
	SHA256 Algorithm = "sha256"
)

// Size returns the digest length in bytes, or 0 for an unknown algorithm.
func (a Algorithm) Size() int {
	switch a {
	case MD5:
		return md5.Size
	case SHA256:
		return sha256.Size
	default:
		return 0
	}
}

func (a Algorithm) String() string { return string(a) }

// ParseAlgorithm normalizes a user-supplied algorithm name.
func ParseAlgorithm(value string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(value))) {
	case MD5, "":
		return MD5, nil
	case SHA256:
		return SHA256, nil
	default:
		return "", fmt.Errorf("unsupported digest algorithm %q", value)
	}
}

// New returns a fresh hash state for the algorithm. Callers must use a new
// state per message; states are never shared or resumed.
func New(alg Algorithm) (hash.Hash, error) {
	switch alg {
	case MD5:
		return md5.New(), nil
	case SHA256:
		return sha256.New(), nil
	default:
		return nil, fmt.Errorf("unsupported digest algorithm %q", alg)
	}
}

// Digest is a finalized fingerprint: the algorithm plus its raw output bytes.
type Digest struct {
	alg   Algorithm
	value []byte
}

// Sum computes the digest of data in a single pass with a fresh hash state.
func Sum(alg Algorithm, data []byte) (Digest, error) {
	h, err := New(alg)
	if err != nil {
		return Digest{}, err
	}
	h.Write(data)
	return Digest{alg: alg, value: h.Sum(nil)}, nil
}

// FromHash finalizes an incremental hash state into a Digest.
func FromHash(alg Algorithm, h hash.Hash) Digest {
	return Digest{alg: alg, value: h.Sum(nil)}
}

// Algorithm reports which algorithm produced the digest.
func (d Digest) Algorithm() Algorithm { return d.alg }

// Bytes returns a copy of the raw digest value.
func (d Digest) Bytes() []byte {
	cp := make([]byte, len(d.value))
	copy(cp, d.value)
	return cp
}

// Hex renders the digest as lowercase hexadecimal, 32 characters for MD5.
func (d Digest) Hex() string { return hex.EncodeToString(d.value) }

func (d Digest) String() string { return d.Hex() }

// IsZero reports whether the digest is the zero value (never computed).
func (d Digest) IsZero() bool { return len(d.value) == 0 }

// Equal reports whether two digests share the same algorithm and value.
func (d Digest) Equal(other Digest) bool {
	if d.alg != other.alg || len(d.value) != len(other.value) {
		return false
	}
	for i := range d.value {
		if d.value[i] != other.value[i] {
			return false
		}
	}
	return true
}

// Parse reconstructs a Digest from an algorithm name and hex string, as
// stored in the observation history.
func Parse(alg, hexValue string) (Digest, error) {
	parsed, err := ParseAlgorithm(alg)
	if err != nil {
		return Digest{}, err
	}
	raw, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(hexValue)))
	if err != nil {
		return Digest{}, fmt.Errorf("decode digest hex: %w", err)
	}
	if len(raw) != parsed.Size() {
		return Digest{}, fmt.Errorf("digest length %d does not match %s (want %d)", len(raw), parsed, parsed.Size())
	}
	return Digest{alg: parsed, value: raw}, nil
}
