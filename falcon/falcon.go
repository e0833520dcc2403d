// Package falcon implements the Falcon-512 lattice signature scheme over the
// ring Z[x]/(x^512+1).
//
// Keys and signatures use a raw coefficient encoding rather than the
// compressed on-wire format: consumers of this package feed coefficients
// directly into field-element advice streams, so compression would be undone
// immediately.
package falcon

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/blake2b"
)

const (
	// N is the polynomial degree.
	N    = 512
	logN = 9

	// Q is the coefficient modulus.
	Q = 12289

	// SaltSize is the size of a signature salt in bytes.
	SaltSize = 40

	// SecretKeySize is the size of an encoded secret key in bytes.
	SecretKeySize = 4 * N

	// PublicKeySize is the size of an encoded public key in bytes.
	PublicKeySize = 2 * N

	// sigBound is the maximum squared norm of a valid signature vector.
	sigBound = 34034726
)

// ErrSigningFailed is returned when repeated sampling attempts all exceed the
// signature norm bound.
var ErrSigningFailed = errors.New("falcon: signing failed")

// A PublicKey is the polynomial h = g/f mod q, one coefficient per entry.
type PublicKey [N]uint16

// A SecretKey is a short basis (f, g, F, G) of the NTRU lattice determined by
// the public key.
type SecretKey struct {
	f, g, F, G [N]int8
}

// A Signature is a salt together with the short polynomial s2; the companion
// s1 is recomputed from the public key during verification.
type Signature struct {
	Salt [SaltSize]byte
	S2   [N]int16
}

// hashToPoint maps a salted message to a polynomial mod q, by rejection from
// an extendable-output hash.
func hashToPoint(salt, message []byte) [N]uint32 {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, nil)
	if err != nil {
		panic(err)
	}
	xof.Write(salt)
	xof.Write(message)
	var c [N]uint32
	var buf [2]byte
	for i := 0; i < N; {
		if _, err := io.ReadFull(xof, buf[:]); err != nil {
			panic(err)
		}
		v := uint32(binary.BigEndian.Uint16(buf[:]))
		if v < 5*Q {
			c[i] = v % Q
			i++
		}
	}
	return c
}

func int8ToFloat(p [N]int8) []float64 {
	out := make([]float64, N)
	for i, c := range p {
		out[i] = float64(c)
	}
	return out
}

// gsNormOK checks that (f, g) spans a basis whose Gram-Schmidt norm is small
// enough for the target signature deviation.
func gsNormOK(f, g [N]int16) bool {
	bound := 1.17 * 1.17 * Q
	var sq float64
	ff := make([]float64, N)
	gf := make([]float64, N)
	for i := 0; i < N; i++ {
		sq += float64(f[i])*float64(f[i]) + float64(g[i])*float64(g[i])
		ff[i] = float64(f[i])
		gf[i] = float64(g[i])
	}
	if sq > bound {
		return false
	}
	fa, ga := fft(ff), fft(gf)
	den := addFFT(mulFFT(fa, adjFFT(fa)), mulFFT(ga, adjFFT(ga)))
	ft := scaleFFT(divFFT(adjFFT(fa), den), Q)
	gt := scaleFFT(divFFT(adjFFT(ga), den), Q)
	var sq2 float64
	for k := 0; k < N; k++ {
		sq2 += real(ft[k])*real(ft[k]) + imag(ft[k])*imag(ft[k])
		sq2 += real(gt[k])*real(gt[k]) + imag(gt[k])*imag(gt[k])
	}
	return sq2/N <= bound
}

// GenerateKey generates a key pair using randomness from rand.
func GenerateKey(rand io.Reader) (SecretKey, error) {
	s := &sampler{r: rand}
	sigma := 1.17 * math.Sqrt(float64(Q)/(2*N))
	for attempt := 0; attempt < 64; attempt++ {
		var f, g [N]int16
		for i := 0; i < N; i++ {
			f[i] = int16(s.gaussian(0, sigma))
			g[i] = int16(s.gaussian(0, sigma))
		}
		if s.err != nil {
			return SecretKey{}, s.err
		}
		if !gsNormOK(f, g) {
			continue
		}
		if _, ok := invertQ(toPolyQ(f)); !ok {
			continue
		}
		F, G, err := ntruSolve(bigPoly(f[:]), bigPoly(g[:]))
		if err != nil {
			continue
		}
		var sk SecretKey
		fits := true
		for i := 0; i < N; i++ {
			sk.f[i] = int8(f[i])
			sk.g[i] = int8(g[i])
			fv, gv := F[i].Int64(), G[i].Int64()
			if !F[i].IsInt64() || !G[i].IsInt64() || fv < -128 || fv > 127 || gv < -128 || gv > 127 {
				fits = false
				break
			}
			sk.F[i] = int8(fv)
			sk.G[i] = int8(gv)
		}
		if fits {
			return sk, nil
		}
	}
	return SecretKey{}, errors.New("falcon: key generation failed")
}

func (sk SecretKey) polyQ(p [N]int8) [N]uint32 {
	var out [N]uint32
	for i, c := range p {
		v := int32(c)
		if v < 0 {
			v += Q
		}
		out[i] = uint32(v)
	}
	return out
}

// PublicKey returns the public key h = g/f mod q.
func (sk SecretKey) PublicKey() PublicKey {
	fInv, ok := invertQ(sk.polyQ(sk.f))
	if !ok {
		panic("falcon: secret key is not invertible")
	}
	h := mulQ(sk.polyQ(sk.g), fInv)
	var pk PublicKey
	for i, c := range h {
		pk[i] = uint16(c)
	}
	return pk
}

// Sign signs message, drawing the salt and all sampling randomness from
// rand. Signing with the same key, message, and randomness stream is fully
// deterministic.
func (sk SecretKey) Sign(message []byte, rand io.Reader) (Signature, error) {
	var sig Signature
	if _, err := io.ReadFull(rand, sig.Salt[:]); err != nil {
		return Signature{}, err
	}
	c := hashToPoint(sig.Salt[:], message)

	fF := fft(int8ToFloat(sk.f))
	gF := fft(int8ToFloat(sk.g))
	FF := fft(int8ToFloat(sk.F))
	GF := fft(int8ToFloat(sk.G))

	g00 := addFFT(mulFFT(gF, adjFFT(gF)), mulFFT(fF, adjFFT(fF)))
	g01 := addFFT(mulFFT(gF, adjFFT(GF)), mulFFT(fF, adjFFT(FF)))
	g11 := addFFT(mulFFT(GF, adjFFT(GF)), mulFFT(FF, adjFFT(FF)))
	tree := newLDLTree(g00, g01, g11)

	cf := make([]float64, N)
	for i, v := range c {
		cf[i] = float64(v)
	}
	cF := fft(cf)
	t0 := scaleFFT(mulFFT(cF, FF), -1.0/Q)
	t1 := scaleFFT(mulFFT(cF, fF), 1.0/Q)

	fInv, ok := invertQ(sk.polyQ(sk.f))
	if !ok {
		return Signature{}, errors.New("falcon: secret key is not invertible")
	}
	h := mulQ(sk.polyQ(sk.g), fInv)

	s := &sampler{r: rand}
	for attempt := 0; attempt < 64; attempt++ {
		z0, z1 := tree.sample(s, t0, t1)
		if s.err != nil {
			return Signature{}, s.err
		}
		s2f := invFFT(addFFT(mulFFT(z0, fF), mulFFT(z1, FF)))
		ok := true
		for i, v := range s2f {
			r := math.Round(v)
			if r < math.MinInt16 || r > math.MaxInt16 {
				ok = false
				break
			}
			sig.S2[i] = int16(r)
		}
		if !ok {
			continue
		}
		if sigNorm(c, h, sig.S2) <= sigBound {
			return sig, nil
		}
	}
	return Signature{}, ErrSigningFailed
}

// sigNorm returns the squared norm of (c - s2*h mod q, s2), with the first
// component centered around zero.
func sigNorm(c, h [N]uint32, s2 [N]int16) uint64 {
	prod := mulQ(toPolyQ(s2), h)
	var norm uint64
	for i := 0; i < N; i++ {
		d := int64(center((c[i] + Q - prod[i]) % Q))
		norm += uint64(d * d)
		norm += uint64(int64(s2[i]) * int64(s2[i]))
	}
	return norm
}

// Verify reports whether sig is a valid signature of message under pk.
func (pk PublicKey) Verify(message []byte, sig Signature) bool {
	var h [N]uint32
	for i, v := range pk {
		if uint32(v) >= Q {
			return false
		}
		h[i] = uint32(v)
	}
	c := hashToPoint(sig.Salt[:], message)
	return sigNorm(c, h, sig.S2) <= sigBound
}

// Bytes returns the raw encoding of pk: little-endian coefficients of h.
func (pk PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	for i, v := range pk {
		binary.LittleEndian.PutUint16(out[2*i:], v)
	}
	return out
}

// ParsePublicKey decodes a public key produced by Bytes.
func ParsePublicKey(b []byte) (PublicKey, error) {
	if len(b) != PublicKeySize {
		return PublicKey{}, fmt.Errorf("falcon: public key must be %d bytes, got %d", PublicKeySize, len(b))
	}
	var pk PublicKey
	for i := range pk {
		v := binary.LittleEndian.Uint16(b[2*i:])
		if uint32(v) >= Q {
			return PublicKey{}, fmt.Errorf("falcon: coefficient %d out of range", v)
		}
		pk[i] = v
	}
	return pk, nil
}

// Bytes returns the raw encoding of sk: the concatenated coefficients of f,
// g, F, and G.
func (sk SecretKey) Bytes() []byte {
	out := make([]byte, 0, SecretKeySize)
	for _, p := range [][N]int8{sk.f, sk.g, sk.F, sk.G} {
		for _, c := range p {
			out = append(out, byte(c))
		}
	}
	return out
}

// ParseSecretKey decodes a secret key produced by Bytes.
func ParseSecretKey(b []byte) (SecretKey, error) {
	if len(b) != SecretKeySize {
		return SecretKey{}, fmt.Errorf("falcon: secret key must be %d bytes, got %d", SecretKeySize, len(b))
	}
	var sk SecretKey
	for _, p := range []*[N]int8{&sk.f, &sk.g, &sk.F, &sk.G} {
		for i := range p {
			p[i] = int8(b[0])
			b = b[1:]
		}
	}
	if _, ok := invertQ(sk.polyQ(sk.f)); !ok {
		return SecretKey{}, errors.New("falcon: secret key is not invertible")
	}
	return sk, nil
}
