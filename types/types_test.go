package types

import (
	"bytes"
	"testing"

	"lukechampine.com/frand"
)

func TestFeltArithmetic(t *testing.T) {
	tests := []struct {
		a, b uint64
		sum  uint64
		prod uint64
	}{
		{0, 0, 0, 0},
		{1, 2, 3, 2},
		{FieldModulus - 1, 1, 0, FieldModulus - 1},
		{FieldModulus - 1, 2, 1, FieldModulus - 2},
	}
	for _, test := range tests {
		a, b := NewFelt(test.a), NewFelt(test.b)
		if got := a.Add(b).Uint64(); got != test.sum {
			t.Errorf("%v + %v: expected %v, got %v", test.a, test.b, test.sum, got)
		}
		if got := a.Mul(b).Uint64(); got != test.prod {
			t.Errorf("%v * %v: expected %v, got %v", test.a, test.b, test.prod, got)
		}
	}
	if f := NewFelt(FieldModulus); f != Zero {
		t.Error("modulus should reduce to zero")
	}
	if f := NewFelt(7); f.Sub(NewFelt(7)) != Zero {
		t.Error("f - f should be zero")
	}
	if f := NewFelt(7); f.Add(f.Neg()) != Zero {
		t.Error("f + (-f) should be zero")
	}
}

func TestFeltDecodeRejectsNonCanonical(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	e.WriteUint64(FieldModulus)
	e.Flush()
	d := NewBufDecoder(buf.Bytes())
	var f Felt
	f.DecodeFrom(d)
	if d.Err() == nil {
		t.Fatal("expected decode of non-canonical element to fail")
	}
}

func TestWordRoundTrip(t *testing.T) {
	w := NewWord(1, 2, 3, FieldModulus-1)

	var buf bytes.Buffer
	e := NewEncoder(&buf)
	w.EncodeTo(e)
	e.Flush()
	d := NewBufDecoder(buf.Bytes())
	var w2 Word
	w2.DecodeFrom(d)
	if err := d.Err(); err != nil {
		t.Fatal(err)
	} else if w2 != w {
		t.Fatalf("expected %v, got %v", w, w2)
	}

	text, _ := w.MarshalText()
	var w3 Word
	if err := w3.UnmarshalText(text); err != nil {
		t.Fatal(err)
	} else if w3 != w {
		t.Fatalf("expected %v, got %v", w, w3)
	}
}

func TestHashWordsDomainSeparation(t *testing.T) {
	a, b := NewWord(1, 2, 3, 4), NewWord(5, 6, 7, 8)
	if HashWords("note/id", a, b) == HashWords("note/nullifier", a, b) {
		t.Error("distinct distinguishers should yield distinct digests")
	}
	if HashWords("note/id", a, b) != HashWords("note/id", a, b) {
		t.Error("hashing is not deterministic")
	}
	if HashWords("note/id", a, b) == HashWords("note/id", b, a) {
		t.Error("hashing should be order-sensitive")
	}
}

func TestNewAccountID(t *testing.T) {
	tests := []struct {
		v  uint64
		ok bool
	}{
		{0, false},
		{1, false},                  // zero prefix
		{0xFFFFFFFF00000001, false}, // not a field element
		{0x8000000100000000, true},
		{0xD000000100000000, true},
		{0xF000000100000000, true},
		{1 << 32, true},
	}
	for _, test := range tests {
		_, err := NewAccountID(test.v)
		if (err == nil) != test.ok {
			t.Errorf("NewAccountID(%#x): expected ok=%v, got %v", test.v, test.ok, err)
		}
	}

	id, _ := NewAccountID(0xF000000100000000)
	if id.Kind() != AccountKindNonFungibleFaucet {
		t.Errorf("expected non-fungible faucet, got %v", id.Kind())
	} else if !id.IsFaucet() {
		t.Error("expected faucet account")
	} else if !id.IsOnChain() {
		t.Error("expected on-chain account")
	}

	// bit 61 clear: same kind, but off-chain
	id, _ = NewAccountID(0xD000000100000000)
	if id.Kind() != AccountKindNonFungibleFaucet {
		t.Errorf("expected non-fungible faucet, got %v", id.Kind())
	} else if id.IsOnChain() {
		t.Error("expected off-chain account")
	}

	id, _ = NewAccountID(0x8000000100000000)
	if id.Kind() != AccountKindFungibleFaucet {
		t.Errorf("expected fungible faucet, got %v", id.Kind())
	} else if id.IsOnChain() {
		t.Error("expected off-chain account")
	}
}

func TestFeltSourceDeterminism(t *testing.T) {
	seed := make([]byte, 32)
	s1 := NewFeltSource(frand.NewCustom(seed, 1024, 12))
	s2 := NewFeltSource(frand.NewCustom(seed, 1024, 12))
	for i := 0; i < 10; i++ {
		if w1, w2 := s1.DrawWord(), s2.DrawWord(); w1 != w2 {
			t.Fatalf("draw %d diverged: %v != %v", i, w1, w2)
		}
	}
}

func BenchmarkHashWords(b *testing.B) {
	w := NewWord(1, 2, 3, 4)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = HashWords("note/id", w, w)
	}
}
