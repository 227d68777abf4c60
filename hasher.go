package shingles

import (
	"encoding/binary"
	"iter"

	"github.com/lestrrat-go/option"
	"github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"
)

// HashOption configures a ShingleHasher.
type HashOption = option.Interface

type identAlgorithm struct{}
type identKey struct{}

// WithAlgorithm selects the hash function. The default is SipHash.
func WithAlgorithm(a Algorithm) HashOption {
	return option.New(identAlgorithm{}, a)
}

// WithKey sets the key the hash function is keyed (or seeded) with.
// The default is the all-zero key.
func WithKey(k Key) HashOption {
	return option.New(identKey{}, k)
}

// Encoder appends a canonical byte encoding of a window to dst.
// Distinct windows must have distinct encodings.
type Encoder[W any] func(dst []byte, w W) ([]byte, error)

// ShingleHasher consumes windows from an Iterator and produces a 64 bit
// hash for each of them.
type ShingleHasher[W any] struct {
	src Iterator[W]
	enc Encoder[W]
	h   hash64
	buf []byte
	err error
}

// NewShingleHasher creates a ShingleHasher reading windows from src,
// encoding them with enc.
func NewShingleHasher[W any](src Iterator[W], enc Encoder[W], options ...HashOption) *ShingleHasher[W] {
	alg := SipHash
	var key Key
	for _, o := range options {
		switch o.Ident() {
		case identAlgorithm{}:
			alg = o.Value().(Algorithm)
		case identKey{}:
			key = o.Value().(Key)
		}
	}

	return &ShingleHasher[W]{
		src: src,
		enc: enc,
		h:   alg.hasher(key),
	}
}

// Next returns the hash of the next window. It returns false once the
// source is exhausted or a window could not be encoded, in which case
// Err reports the cause.
func (sh *ShingleHasher[W]) Next() (uint64, bool) {
	if sh.err != nil {
		return 0, false
	}

	w, ok := sh.src.Next()
	if !ok {
		return 0, false
	}

	buf, err := sh.enc(sh.buf[:0], w)
	if err != nil {
		if pdebug.Enabled {
			pdebug.Printf("ShingleHasher: failed to encode window: %s", err)
		}
		sh.err = errors.Wrap(err, "failed to encode shingle")
		return 0, false
	}
	sh.buf = buf
	return sh.h.Sum64(buf), true
}

// Err returns the error that stopped iteration, if any.
func (sh *ShingleHasher[W]) Err() error {
	return sh.err
}

// All returns the remaining hashes as a sequence. Check Err after
// ranging over it.
func (sh *ShingleHasher[W]) All() iter.Seq[uint64] {
	return Seq[uint64](sh)
}

// textTerminator follows every encoded string, so that no two
// different sequences of strings share an encoding
const textTerminator = 0xff

// EncodeText encodes a text window as its bytes followed by 0xff, a
// byte that never occurs in valid UTF-8.
func EncodeText(dst []byte, s string) ([]byte, error) {
	dst = append(dst, s...)
	return append(dst, textTerminator), nil
}

// EncodeTextRows encodes a 2D text window as the row count followed by
// each row encoded with EncodeText.
func EncodeTextRows(dst []byte, rows []string) ([]byte, error) {
	dst = binary.LittleEndian.AppendUint64(dst, uint64(len(rows)))
	for _, row := range rows {
		dst, _ = EncodeText(dst, row)
	}
	return dst, nil
}

// EncodeElements encodes a window of elements as its length followed by
// the elements. Byte, string, int and uint elements are handled
// directly; any other element type must have a fixed size as defined
// by encoding/binary.
func EncodeElements[T any](dst []byte, w []T) ([]byte, error) {
	dst = binary.LittleEndian.AppendUint64(dst, uint64(len(w)))
	switch v := any(w).(type) {
	case []byte:
		return append(dst, v...), nil
	case []string:
		for _, s := range v {
			dst, _ = EncodeText(dst, s)
		}
		return dst, nil
	case []int:
		for _, n := range v {
			dst = binary.LittleEndian.AppendUint64(dst, uint64(n))
		}
		return dst, nil
	case []uint:
		for _, n := range v {
			dst = binary.LittleEndian.AppendUint64(dst, uint64(n))
		}
		return dst, nil
	}

	out, err := binary.Append(dst, binary.LittleEndian, w)
	if err != nil {
		return dst, errors.Wrapf(err, "cannot encode elements of type %T", w)
	}
	return out, nil
}

// EncodeRows encodes a 2D window as the row count followed by each row
// encoded with EncodeElements.
func EncodeRows[T any](dst []byte, rows [][]T) ([]byte, error) {
	dst = binary.LittleEndian.AppendUint64(dst, uint64(len(rows)))
	for _, row := range rows {
		var err error
		if dst, err = EncodeElements(dst, row); err != nil {
			return dst, err
		}
	}
	return dst, nil
}
