package auth

import (
	"encoding/binary"
	"io"

	"go.veil.sh/core/falcon"
	"go.veil.sh/core/types"
)

// AdviceLen is the number of field elements in a Falcon-512 signature advice
// stream: 8 for the salt, 512 each for the public key, s2, and their product.
const AdviceLen = 8 + 3*falcon.N

// falconPubKeyWord commits to a Falcon-512 public key.
func falconPubKeyWord(pk falcon.PublicKey) types.Word {
	h := types.NewHasher()
	h.WriteDistinguisher("auth/falcon512")
	h.E.Write(pk.Bytes())
	return h.SumWord()
}

// falconAdvice lays out a signature for consumption by the VM's signature
// verification routine. The stream is built back to front because the VM pops
// advice in reverse: reading order is salt, then h, then s2, then the product
// h*s2 whose recomputation the verifier checks.
func falconAdvice(pk falcon.PublicKey, sig falcon.Signature) []types.Felt {
	advice := make([]types.Felt, 0, AdviceLen)

	// salt packs into 8 elements of 5 bytes each
	for i := 0; i < falcon.SaltSize; i += 5 {
		var b [8]byte
		copy(b[:], sig.Salt[i:i+5])
		advice = append(advice, types.NewFelt(binary.LittleEndian.Uint64(b[:])))
	}

	h := make([]types.Felt, falcon.N)
	for i, c := range pk {
		h[i] = types.NewFelt(uint64(c))
	}
	advice = append(advice, h...)

	s2 := make([]types.Felt, falcon.N)
	for i, c := range sig.S2 {
		v := int32(c)
		if v < 0 {
			v += falcon.Q
		}
		s2[i] = types.NewFelt(uint64(v))
	}
	advice = append(advice, s2...)

	advice = append(advice, mulNegacyclic(h, s2)...)

	for i, j := 0, len(advice)-1; i < j; i, j = i+1, j-1 {
		advice[i], advice[j] = advice[j], advice[i]
	}
	return advice
}

// mulNegacyclic multiplies two coefficient vectors in F[x]/(x^512+1), over
// the base field rather than mod the Falcon modulus.
func mulNegacyclic(a, b []types.Felt) []types.Felt {
	n := len(a)
	out := make([]types.Felt, n)
	for i := range a {
		if a[i].IsZero() {
			continue
		}
		for j := range b {
			p := a[i].Mul(b[j])
			if i+j < n {
				out[i+j] = out[i+j].Add(p)
			} else {
				out[i+j-n] = out[i+j-n].Sub(p)
			}
		}
	}
	return out
}

// signFalcon produces the advice stream for a Falcon-512 signature of
// message under key.
func signFalcon(key falcon.SecretKey, message types.Word, rand io.Reader) ([]types.Felt, error) {
	msg := message.Bytes()
	sig, err := key.Sign(msg[:], rand)
	if err != nil {
		return nil, err
	}
	return falconAdvice(key.PublicKey(), sig), nil
}
