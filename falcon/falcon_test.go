package falcon

import (
	"bytes"
	"math/big"
	"sync"
	"testing"

	"lukechampine.com/frand"
)

func testRNG(seed byte) *frand.RNG {
	b := make([]byte, 32)
	b[0] = seed
	return frand.NewCustom(b, 1024, 12)
}

var testKeyOnce sync.Once
var testKeyVal SecretKey

// testKey generates a single key pair shared by the tests; key generation
// dominates test runtime otherwise.
func testKey(t *testing.T) SecretKey {
	t.Helper()
	testKeyOnce.Do(func() {
		sk, err := GenerateKey(testRNG(1))
		if err != nil {
			t.Fatal(err)
		}
		testKeyVal = sk
	})
	return testKeyVal
}

func TestSignVerify(t *testing.T) {
	sk := testKey(t)
	pk := sk.PublicKey()
	msg := []byte("the quick brown fox")

	sig, err := sk.Sign(msg, testRNG(2))
	if err != nil {
		t.Fatal(err)
	}
	if !pk.Verify(msg, sig) {
		t.Fatal("signature should verify")
	}
	if pk.Verify([]byte("a different message"), sig) {
		t.Error("signature should not verify a different message")
	}

	bad := sig
	bad.S2[0]++
	if pk.Verify(msg, bad) {
		t.Error("tampered signature should not verify")
	}
	bad = sig
	bad.Salt[0] ^= 1
	if pk.Verify(msg, bad) {
		t.Error("tampered salt should not verify")
	}
}

func TestSignDeterminism(t *testing.T) {
	sk := testKey(t)
	msg := []byte("determinism")

	sig1, err := sk.Sign(msg, testRNG(3))
	if err != nil {
		t.Fatal(err)
	}
	sig2, err := sk.Sign(msg, testRNG(3))
	if err != nil {
		t.Fatal(err)
	}
	if sig1 != sig2 {
		t.Error("same randomness stream should produce identical signatures")
	}

	sig3, err := sk.Sign(msg, testRNG(4))
	if err != nil {
		t.Fatal(err)
	}
	if sig3.Salt == sig1.Salt {
		t.Error("different randomness streams should produce different salts")
	}
}

func TestNTRUEquation(t *testing.T) {
	sk := testKey(t)
	f := make([]*big.Int, N)
	g := make([]*big.Int, N)
	F := make([]*big.Int, N)
	G := make([]*big.Int, N)
	for i := 0; i < N; i++ {
		f[i] = big.NewInt(int64(sk.f[i]))
		g[i] = big.NewInt(int64(sk.g[i]))
		F[i] = big.NewInt(int64(sk.F[i]))
		G[i] = big.NewInt(int64(sk.G[i]))
	}
	fG := polyMulMod(f, G)
	gF := polyMulMod(g, F)
	for i := 0; i < N; i++ {
		want := int64(0)
		if i == 0 {
			want = Q
		}
		got := new(big.Int).Sub(fG[i], gF[i])
		if got.Cmp(big.NewInt(want)) != 0 {
			t.Fatalf("coefficient %d of f*G - g*F: expected %d, got %v", i, want, got)
		}
	}
}

func TestPublicKeyRelation(t *testing.T) {
	sk := testKey(t)
	pk := sk.PublicKey()
	// f*h = g mod q
	var h [N]uint32
	for i, v := range pk {
		h[i] = uint32(v)
	}
	fh := mulQ(sk.polyQ(sk.f), h)
	g := sk.polyQ(sk.g)
	if fh != g {
		t.Fatal("f*h != g mod q")
	}
}

func TestKeyEncoding(t *testing.T) {
	sk := testKey(t)
	b := sk.Bytes()
	if len(b) != SecretKeySize {
		t.Fatalf("expected %d bytes, got %d", SecretKeySize, len(b))
	}
	sk2, err := ParseSecretKey(b)
	if err != nil {
		t.Fatal(err)
	}
	if sk2 != sk {
		t.Error("secret key round trip changed the key")
	}
	if _, err := ParseSecretKey(b[:100]); err == nil {
		t.Error("truncated secret key should be rejected")
	}

	pk := sk.PublicKey()
	pb := pk.Bytes()
	if len(pb) != PublicKeySize {
		t.Fatalf("expected %d bytes, got %d", PublicKeySize, len(pb))
	}
	pk2, err := ParsePublicKey(pb)
	if err != nil {
		t.Fatal(err)
	}
	if pk2 != pk {
		t.Error("public key round trip changed the key")
	}
	pb[0], pb[1] = 0xff, 0xff
	if _, err := ParsePublicKey(pb); err == nil {
		t.Error("out-of-range coefficient should be rejected")
	}
}

func TestHashToPoint(t *testing.T) {
	salt := bytes.Repeat([]byte{7}, SaltSize)
	c1 := hashToPoint(salt, []byte("msg"))
	c2 := hashToPoint(salt, []byte("msg"))
	if c1 != c2 {
		t.Error("hashToPoint should be deterministic")
	}
	for i, v := range c1 {
		if v >= Q {
			t.Fatalf("coefficient %d out of range: %d", i, v)
		}
	}
	if c1 == hashToPoint(salt, []byte("msg2")) {
		t.Error("different messages should hash to different points")
	}
}

func TestFFTRoundTrip(t *testing.T) {
	f := []float64{1, -2, 3, 0, 5, -1, 0, 2}
	got := invFFT(fft(f))
	for i := range f {
		if d := got[i] - f[i]; d > 1e-9 || d < -1e-9 {
			t.Fatalf("coefficient %d: expected %v, got %v", i, f[i], got[i])
		}
	}
}

func TestFFTMul(t *testing.T) {
	a := []float64{1, 2, 0, -1}
	b := []float64{3, 0, 1, 1}
	got := invFFT(mulFFT(fft(a), fft(b)))

	// schoolbook negacyclic product
	n := len(a)
	want := make([]float64, n)
	for i := range a {
		for j := range b {
			if i+j < n {
				want[i+j] += a[i] * b[j]
			} else {
				want[i+j-n] -= a[i] * b[j]
			}
		}
	}
	for i := range want {
		if d := got[i] - want[i]; d > 1e-9 || d < -1e-9 {
			t.Fatalf("coefficient %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestNTTMul(t *testing.T) {
	var a, b [N]uint32
	rng := testRNG(5)
	for i := 0; i < N; i++ {
		a[i] = uint32(rng.Uint64n(Q))
		b[i] = uint32(rng.Uint64n(Q))
	}
	got := mulQ(a, b)

	var want [N]uint64
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			p := uint64(a[i]) * uint64(b[j]) % Q
			if i+j < N {
				want[i+j] = (want[i+j] + p) % Q
			} else {
				want[i+j-N] = (want[i+j-N] + Q - p) % Q
			}
		}
	}
	for i := 0; i < N; i++ {
		if uint64(got[i]) != want[i] {
			t.Fatalf("coefficient %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	sk, err := GenerateKey(testRNG(1))
	if err != nil {
		b.Fatal(err)
	}
	pk := sk.PublicKey()
	msg := []byte("bench")
	sig, err := sk.Sign(msg, testRNG(2))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !pk.Verify(msg, sig) {
			b.Fatal("verify failed")
		}
	}
}
