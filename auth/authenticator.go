package auth

import (
	"errors"
	"sync"

	"go.veil.sh/core/types"
	"lukechampine.com/frand"
)

var (
	// ErrUnknownKey is returned when a signature is requested for a public
	// key the authenticator holds no secret key for.
	ErrUnknownKey = errors.New("unknown public key")

	// ErrRejectedSignature is returned by authenticators that decline to
	// sign.
	ErrRejectedSignature = errors.New("signature request rejected")
)

// An AccountDelta summarizes the account state transition a transaction
// applies. It is passed to authenticators for context; an authenticator may
// inspect it to decide whether to sign, or ignore it.
type AccountDelta struct {
	NonceIncrement    types.Felt
	StorageCommitment types.Word
	VaultCommitment   types.Word
}

// A TransactionAuthenticator produces signature advice when the VM requests
// authorization of a transaction. The returned elements are pushed onto the
// VM's advice stack, so they are ordered for popping, not reading.
type TransactionAuthenticator interface {
	GetSignature(pubKey, message types.Word, delta *AccountDelta) ([]types.Felt, error)
}

// A BasicAuthenticator signs with any of a fixed set of keys. The key set is
// immutable after construction; the randomness source is shared across
// requests and guarded by a mutex, so a BasicAuthenticator is safe for
// concurrent use.
type BasicAuthenticator struct {
	keys map[types.Word]SecretKey

	mu  sync.Mutex
	rng *frand.RNG
}

// NewBasicAuthenticator returns an authenticator holding the given keys,
// indexed by their public key commitments.
func NewBasicAuthenticator(rng *frand.RNG, keys ...SecretKey) *BasicAuthenticator {
	m := make(map[types.Word]SecretKey, len(keys))
	for _, sk := range keys {
		m[sk.PublicKeyWord()] = sk
	}
	return &BasicAuthenticator{keys: m, rng: rng}
}

// GetSignature implements TransactionAuthenticator.
func (a *BasicAuthenticator) GetSignature(pubKey, message types.Word, delta *AccountDelta) ([]types.Felt, error) {
	sk, ok := a.keys[pubKey]
	if !ok {
		return nil, ErrUnknownKey
	}
	switch key := sk.Type.(type) {
	case SecretKeyFalcon512:
		a.mu.Lock()
		defer a.mu.Unlock()
		return signFalcon(key.Key, message, a.rng)
	default:
		return nil, ErrRejectedSignature
	}
}

// A NopAuthenticator rejects every signature request. It is the authenticator
// of choice when a transaction is expected to need no authorization at all.
type NopAuthenticator struct{}

// GetSignature implements TransactionAuthenticator.
func (NopAuthenticator) GetSignature(pubKey, message types.Word, delta *AccountDelta) ([]types.Felt, error) {
	return nil, ErrRejectedSignature
}
