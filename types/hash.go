package types

import (
	"encoding/binary"
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// HashBytes computes the hash of b using the protocol's hash function.
func HashBytes(b []byte) [32]byte {
	return blake2b.Sum256(b)
}

// A Hasher streams objects into an instance of the protocol's hash function.
type Hasher struct {
	h   hash.Hash
	sum [32]byte // prevent Sum from allocating
	E   *Encoder
}

// Reset resets the underlying hash and encoder state.
func (h *Hasher) Reset() {
	h.E.n = 0
	h.h.Reset()
}

// WriteDistinguisher writes a distinguisher prefix to the encoder.
func (h *Hasher) WriteDistinguisher(p string) {
	h.E.Write([]byte("veil/" + p + "|"))
}

// Sum returns the digest of the objects written to the Hasher.
func (h *Hasher) Sum() [32]byte {
	_ = h.E.Flush() // no error possible
	h.h.Sum(h.sum[:0])
	return h.sum
}

// SumWord returns the digest of the objects written to the Hasher as a Word,
// interpreting the raw digest as four little-endian integers reduced into the
// field.
func (h *Hasher) SumWord() (w Word) {
	sum := h.Sum()
	for i := range w {
		w[i] = NewFelt(binary.LittleEndian.Uint64(sum[8*i:]))
	}
	return
}

// NewHasher returns a new Hasher instance.
func NewHasher() *Hasher {
	h, _ := blake2b.New256(nil)
	e := NewEncoder(h)
	return &Hasher{h: h, E: e}
}

// Pool for reducing heap allocations when hashing. This is only necessary
// because blake2b.New256 returns a hash.Hash interface, which prevents the
// compiler from doing escape analysis. Can be removed if we switch to an
// implementation whose constructor returns a concrete type.
var hasherPool = &sync.Pool{New: func() interface{} { return NewHasher() }}

// HashWords computes a word-valued digest over the given words, prefixed with
// the given distinguisher. Distinct distinguishers yield independent hash
// functions; the note commitment scheme relies on this for the domain
// separation between note IDs and nullifiers.
func HashWords(distinguisher string, words ...Word) Word {
	h := hasherPool.Get().(*Hasher)
	defer hasherPool.Put(h)
	h.Reset()
	h.WriteDistinguisher(distinguisher)
	for _, w := range words {
		w.EncodeTo(h.E)
	}
	return h.SumWord()
}
