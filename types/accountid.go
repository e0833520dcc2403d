package types

import (
	"fmt"
)

// An AccountKind classifies the on-ledger behavior of an account.
type AccountKind uint8

// The four account kinds, encoded in the two most significant bits of an
// AccountID.
const (
	AccountKindRegularImmutable  AccountKind = 0b00
	AccountKindRegularUpdatable  AccountKind = 0b01
	AccountKindFungibleFaucet    AccountKind = 0b10
	AccountKindNonFungibleFaucet AccountKind = 0b11
)

// String implements fmt.Stringer.
func (k AccountKind) String() string {
	switch k {
	case AccountKindRegularImmutable:
		return "regular (immutable code)"
	case AccountKindRegularUpdatable:
		return "regular (updatable code)"
	case AccountKindFungibleFaucet:
		return "fungible faucet"
	case AccountKindNonFungibleFaucet:
		return "non-fungible faucet"
	default:
		return "invalid"
	}
}

// An AccountID uniquely identifies an account. The ID doubles as a commitment
// to the account's construction parameters, so several of its bits carry
// metadata: the two most significant bits encode the AccountKind, and the
// third most significant bit is set for accounts whose state is stored
// on-chain.
//
// A valid AccountID is representable as a single field element and has at
// least one bit set in its upper 32 bits; the all-zero prefix is reserved.
type AccountID uint64

// NewAccountID validates v as an account ID.
func NewAccountID(v uint64) (AccountID, error) {
	if v >= FieldModulus {
		return 0, fmt.Errorf("account ID %#x is not a field element", v)
	} else if v>>32 == 0 {
		return 0, fmt.Errorf("account ID %#x has a reserved zero prefix", v)
	}
	return AccountID(v), nil
}

// Kind returns the account kind encoded in the ID.
func (id AccountID) Kind() AccountKind { return AccountKind(id >> 62) }

// IsFaucet returns whether the account is an asset faucet.
func (id AccountID) IsFaucet() bool { return id.Kind() >= AccountKindFungibleFaucet }

// IsOnChain returns whether the account's state is stored on-chain.
func (id AccountID) IsOnChain() bool { return id&(1<<61) != 0 }

// Felt returns the ID as a field element.
func (id AccountID) Felt() Felt { return NewFelt(uint64(id)) }

// String implements fmt.Stringer.
func (id AccountID) String() string { return fmt.Sprintf("%#016x", uint64(id)) }

// MarshalText implements encoding.TextMarshaler.
func (id AccountID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
