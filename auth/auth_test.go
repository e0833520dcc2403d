package auth

import (
	"bytes"
	"math/big"
	"sync"
	"testing"

	"go.veil.sh/core/falcon"
	"go.veil.sh/core/types"
	"lukechampine.com/frand"
)

func testRNG(seed byte) *frand.RNG {
	b := make([]byte, 32)
	b[0] = seed
	return frand.NewCustom(b, 1024, 12)
}

var testKeyOnce sync.Once
var testKeyVal SecretKey

func testKey(t *testing.T) SecretKey {
	t.Helper()
	testKeyOnce.Do(func() {
		sk, err := GenerateFalcon512Key(testRNG(1))
		if err != nil {
			t.Fatal(err)
		}
		testKeyVal = sk
	})
	return testKeyVal
}

func TestUnknownKey(t *testing.T) {
	sk := testKey(t)
	a := NewBasicAuthenticator(testRNG(2), sk)

	other := types.NewWord(1, 2, 3, 4)
	if other == sk.PublicKeyWord() {
		t.Fatal("test key collision")
	}
	if _, err := a.GetSignature(other, types.NewWord(9, 9, 9, 9), nil); err != ErrUnknownKey {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
}

func TestSignatureDeterminism(t *testing.T) {
	sk := testKey(t)
	pubKey := sk.PublicKeyWord()
	message := types.NewWord(5, 6, 7, 8)

	sign := func(seed byte) []types.Felt {
		a := NewBasicAuthenticator(testRNG(seed), sk)
		advice, err := a.GetSignature(pubKey, message, nil)
		if err != nil {
			t.Fatal(err)
		}
		return advice
	}

	s1, s2 := sign(3), sign(3)
	if len(s1) != len(s2) {
		t.Fatalf("lengths differ: %d != %d", len(s1), len(s2))
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Fatalf("element %d diverged with identical randomness", i)
		}
	}

	s3 := sign(4)
	// the salt occupies the final 8 elements of the reversed stream
	same := true
	for i := len(s1) - 8; i < len(s1); i++ {
		if s1[i] != s3[i] {
			same = false
		}
	}
	if same {
		t.Error("different randomness should produce different salts")
	}
}

func TestAdviceLayout(t *testing.T) {
	sk := testKey(t)
	key := sk.Type.(SecretKeyFalcon512).Key
	pk := key.PublicKey()
	message := types.NewWord(1, 1, 2, 3)

	a := NewBasicAuthenticator(testRNG(5), sk)
	advice, err := a.GetSignature(sk.PublicKeyWord(), message, &AccountDelta{})
	if err != nil {
		t.Fatal(err)
	}
	if len(advice) != AdviceLen {
		t.Fatalf("expected %d advice elements, got %d", AdviceLen, len(advice))
	}

	// undo the pop ordering
	fwd := make([]types.Felt, len(advice))
	for i := range advice {
		fwd[i] = advice[len(advice)-1-i]
	}
	salt, h, s2, pi := fwd[:8], fwd[8:8+falcon.N], fwd[8+falcon.N:8+2*falcon.N], fwd[8+2*falcon.N:]

	for i, c := range pk {
		if h[i] != types.NewFelt(uint64(c)) {
			t.Fatalf("h element %d does not match the public key", i)
		}
	}
	for i, v := range s2 {
		if v.Uint64() >= falcon.Q {
			t.Fatalf("s2 element %d out of range: %v", i, v)
		}
	}
	for i, v := range salt {
		if v.Uint64() >= 1<<40 {
			t.Fatalf("salt element %d exceeds 5 bytes: %v", i, v)
		}
	}

	// recompute h*s2 independently over the integers
	p := new(big.Int).SetUint64(types.FieldModulus)
	want := make([]*big.Int, falcon.N)
	for i := range want {
		want[i] = new(big.Int)
	}
	tmp := new(big.Int)
	for i := 0; i < falcon.N; i++ {
		hi := new(big.Int).SetUint64(h[i].Uint64())
		for j := 0; j < falcon.N; j++ {
			tmp.Mul(hi, tmp.SetUint64(s2[j].Uint64()))
			if i+j < falcon.N {
				want[i+j].Add(want[i+j], tmp)
			} else {
				want[i+j-falcon.N].Sub(want[i+j-falcon.N], tmp)
			}
		}
	}
	for i := range want {
		want[i].Mod(want[i], p)
		if pi[i].Uint64() != want[i].Uint64() {
			t.Fatalf("pi element %d: expected %v, got %v", i, want[i], pi[i].Uint64())
		}
	}
}

func TestNopAuthenticator(t *testing.T) {
	var a NopAuthenticator
	if _, err := a.GetSignature(types.NewWord(1, 2, 3, 4), types.NewWord(5, 6, 7, 8), nil); err != ErrRejectedSignature {
		t.Errorf("expected ErrRejectedSignature, got %v", err)
	}
}

func TestSecretKeyRoundTrip(t *testing.T) {
	sk := testKey(t)

	var buf bytes.Buffer
	e := types.NewEncoder(&buf)
	sk.EncodeTo(e)
	e.Flush()
	if buf.Len() != 1+falcon.SecretKeySize {
		t.Fatalf("expected %d bytes, got %d", 1+falcon.SecretKeySize, buf.Len())
	}

	d := types.NewBufDecoder(buf.Bytes())
	var sk2 SecretKey
	sk2.DecodeFrom(d)
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
	if sk2.Type.(SecretKeyFalcon512).Key != sk.Type.(SecretKeyFalcon512).Key {
		t.Error("secret key round trip changed the key")
	}
	if sk2.PublicKeyWord() != sk.PublicKeyWord() {
		t.Error("public key commitment changed")
	}

	bad := append([]byte{}, buf.Bytes()...)
	bad[0] = 0xEE
	d = types.NewBufDecoder(bad)
	var sk3 SecretKey
	sk3.DecodeFrom(d)
	if d.Err() == nil {
		t.Error("unknown scheme discriminant should fail to decode")
	}
}
