package shingles

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/pkg/errors"
	"github.com/spaolacci/murmur3"
)

// Algorithm names the hash function applied to each shingle.
type Algorithm int

const (
	// SipHash is SipHash-2-4, keyed with the full 128 bit Key
	SipHash Algorithm = iota
	// XXHash is XXH64, seeded with the first half of the Key
	XXHash
	// Murmur3 is the 64 bit half of MurmurHash3 x64_128, seeded with
	// the low 32 bits of the first half of the Key
	Murmur3
)

var algorithmNames = map[Algorithm]string{
	SipHash: "siphash",
	XXHash:  "xxhash",
	Murmur3: "murmur3",
}

func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseAlgorithm returns the Algorithm with the given name. Names are
// case insensitive.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range algorithmNames {
		if name == s {
			return a, nil
		}
	}
	return SipHash, errors.Errorf("unknown hash algorithm '%s'", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(b []byte) error {
	v, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Key is a 128 bit hash key.
type Key [16]byte

// ParseKey parses a key given as 32 hexadecimal digits.
func ParseKey(s string) (Key, error) {
	var k Key
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return k, errors.Wrap(err, "invalid hash key")
	}
	if len(b) != len(k) {
		return k, errors.Errorf("hash key must be %d bytes, got %d", len(k), len(b))
	}
	copy(k[:], b)
	return k, nil
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// words splits the key into two little endian words, the same way
// SipHash reads its key
func (k Key) words() (uint64, uint64) {
	return binary.LittleEndian.Uint64(k[:8]), binary.LittleEndian.Uint64(k[8:])
}

type hash64 interface {
	Sum64([]byte) uint64
}

func (a Algorithm) hasher(k Key) hash64 {
	k0, k1 := k.words()
	switch a {
	case XXHash:
		return &xxHasher{d: xxhash.NewWithSeed(k0), seed: k0}
	case Murmur3:
		return murmurHasher{seed: uint32(k0)}
	default:
		return sipHasher{k0: k0, k1: k1}
	}
}

type sipHasher struct {
	k0, k1 uint64
}

func (h sipHasher) Sum64(p []byte) uint64 {
	return siphash.Hash(h.k0, h.k1, p)
}

type xxHasher struct {
	d    *xxhash.Digest
	seed uint64
}

func (h *xxHasher) Sum64(p []byte) uint64 {
	h.d.ResetWithSeed(h.seed)
	_, _ = h.d.Write(p)
	return h.d.Sum64()
}

type murmurHasher struct {
	seed uint32
}

func (h murmurHasher) Sum64(p []byte) uint64 {
	return murmur3.Sum64WithSeed(p, h.seed)
}
