// Package auth implements transaction authorization: secret key material for
// the supported signature schemes, and authenticators that produce VM-ready
// signature advice on request.
package auth

import (
	"fmt"
	"io"

	"go.veil.sh/core/falcon"
	"go.veil.sh/core/types"
)

// A SecretKeyType identifies a signature scheme and holds its key material.
// The set of schemes is closed; adding one means adding a variant here along
// with a new wire discriminant.
type SecretKeyType interface {
	isSecretKeyType()
}

// SecretKeyFalcon512 is a Falcon-512 secret key.
type SecretKeyFalcon512 struct {
	Key falcon.SecretKey
}

func (SecretKeyFalcon512) isSecretKeyType() {}

// A SecretKey authorizes transactions under one of the supported signature
// schemes.
type SecretKey struct {
	Type SecretKeyType
}

// Wire discriminants for the secret key schemes.
const (
	schemeFalcon512 = 0
)

// GenerateFalcon512Key generates a fresh Falcon-512 secret key using
// randomness from rand.
func GenerateFalcon512Key(rand io.Reader) (SecretKey, error) {
	sk, err := falcon.GenerateKey(rand)
	if err != nil {
		return SecretKey{}, err
	}
	return SecretKey{Type: SecretKeyFalcon512{Key: sk}}, nil
}

// PublicKeyWord returns the commitment to the key's public counterpart, as
// referenced by account code when requesting signatures.
func (sk SecretKey) PublicKeyWord() types.Word {
	switch key := sk.Type.(type) {
	case SecretKeyFalcon512:
		return falconPubKeyWord(key.Key.PublicKey())
	default:
		panic(fmt.Sprintf("unhandled secret key type %T", sk.Type))
	}
}

// EncodeTo implements types.EncoderTo.
func (sk SecretKey) EncodeTo(e *types.Encoder) {
	switch key := sk.Type.(type) {
	case SecretKeyFalcon512:
		e.WriteUint8(schemeFalcon512)
		e.Write(key.Key.Bytes())
	default:
		panic(fmt.Sprintf("unhandled secret key type %T", sk.Type))
	}
}

// DecodeFrom implements types.DecoderFrom.
func (sk *SecretKey) DecodeFrom(d *types.Decoder) {
	scheme := d.ReadUint8()
	switch scheme {
	case schemeFalcon512:
		buf := make([]byte, falcon.SecretKeySize)
		d.Read(buf)
		if d.Err() != nil {
			return
		}
		key, err := falcon.ParseSecretKey(buf)
		if err != nil {
			d.SetErr(err)
			return
		}
		sk.Type = SecretKeyFalcon512{Key: key}
	default:
		d.SetErr(fmt.Errorf("unknown signature scheme (%d)", scheme))
	}
}
