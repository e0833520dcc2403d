// Package types defines the essential types of the Veil note protocol.
package types

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// FieldModulus is the order of the base field: 2^64 - 2^32 + 1.
const FieldModulus = 0xFFFFFFFF00000001

// A Felt is an element of the prime field of order FieldModulus. All
// protocol-level values (commitments, note inputs, advice sequences) are
// ultimately sequences of Felts.
type Felt goldilocks.Element

// Zero and One are the additive and multiplicative identities.
var (
	Zero = NewFelt(0)
	One  = NewFelt(1)
)

// NewFelt returns the field element representing v mod FieldModulus.
func NewFelt(v uint64) Felt {
	var e goldilocks.Element
	e.SetUint64(v)
	return Felt(e)
}

// FeltFromBytes interprets b as an 8-byte little-endian unsigned integer and
// returns the field element representing it mod FieldModulus.
func FeltFromBytes(b [8]byte) Felt {
	return NewFelt(binary.LittleEndian.Uint64(b[:]))
}

// Uint64 returns the canonical (fully-reduced) integer representation of f.
func (f Felt) Uint64() uint64 {
	e := goldilocks.Element(f)
	b := e.Bytes()
	return binary.BigEndian.Uint64(b[:])
}

// Bytes returns the canonical 8-byte little-endian encoding of f.
func (f Felt) Bytes() (b [8]byte) {
	binary.LittleEndian.PutUint64(b[:], f.Uint64())
	return
}

// Add returns f + g.
func (f Felt) Add(g Felt) Felt {
	x, y := goldilocks.Element(f), goldilocks.Element(g)
	var r goldilocks.Element
	r.Add(&x, &y)
	return Felt(r)
}

// Sub returns f - g.
func (f Felt) Sub(g Felt) Felt {
	x, y := goldilocks.Element(f), goldilocks.Element(g)
	var r goldilocks.Element
	r.Sub(&x, &y)
	return Felt(r)
}

// Mul returns f * g.
func (f Felt) Mul(g Felt) Felt {
	x, y := goldilocks.Element(f), goldilocks.Element(g)
	var r goldilocks.Element
	r.Mul(&x, &y)
	return Felt(r)
}

// Neg returns -f.
func (f Felt) Neg() Felt {
	x := goldilocks.Element(f)
	var r goldilocks.Element
	r.Neg(&x)
	return Felt(r)
}

// IsZero returns whether f is the zero element.
func (f Felt) IsZero() bool { return f == Zero }

// String implements fmt.Stringer.
func (f Felt) String() string { return fmt.Sprint(f.Uint64()) }

// A Word is four field elements. Words are the unit of hashing: digests,
// serial numbers, and asset encodings are all single words.
type Word [4]Felt

// EmptyWord is the all-zero word.
var EmptyWord Word

// NewWord returns the word whose elements represent the given integers.
func NewWord(a, b, c, d uint64) Word {
	return Word{NewFelt(a), NewFelt(b), NewFelt(c), NewFelt(d)}
}

// Bytes returns the canonical 32-byte encoding of w.
func (w Word) Bytes() (b [32]byte) {
	for i, f := range w {
		binary.LittleEndian.PutUint64(b[8*i:], f.Uint64())
	}
	return
}

// String implements fmt.Stringer.
func (w Word) String() string {
	b := w.Bytes()
	return "0x" + hex.EncodeToString(b[:])
}

// MarshalText implements encoding.TextMarshaler.
func (w Word) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Word) UnmarshalText(b []byte) error {
	n, err := hex.Decode(make([]byte, 32), trim0x(b))
	if err != nil {
		return fmt.Errorf("decoding %q failed: %w", b, err)
	} else if n != 32 {
		return fmt.Errorf("decoding %q failed: wrong length", b)
	}
	var buf [32]byte
	hex.Decode(buf[:], trim0x(b))
	for i := range w {
		v := binary.LittleEndian.Uint64(buf[8*i:])
		if v >= FieldModulus {
			return fmt.Errorf("decoding %q failed: element %d is not canonical", b, i)
		}
		w[i] = NewFelt(v)
	}
	return nil
}

func trim0x(b []byte) []byte {
	if len(b) >= 2 && b[0] == '0' && b[1] == 'x' {
		return b[2:]
	}
	return b
}
