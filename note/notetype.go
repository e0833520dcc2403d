// Package note implements the commitment-based note objects that move assets
// between accounts, along with the standardized note templates built on them.
//
// A note's details reduce to two distinct identifiers: its ID, which is
// published whenever the note's existence is, and its Nullifier, which can
// only be computed by a party holding the full recipient preimage and which
// marks the note as spent once revealed. Keeping the two digests in separate
// hash domains is what prevents an observer from linking a published ID to a
// later nullifier.
package note

import (
	"fmt"

	"go.veil.sh/core/types"
)

// A Type controls the visibility of a note's details.
type Type uint8

// The supported note types. Metadata is always public; details are fully
// visible for Public notes, shared out-of-band for Private notes, and
// published in encrypted form for Encrypted notes.
const (
	TypePublic    Type = 1
	TypePrivate   Type = 2
	TypeEncrypted Type = 3
)

// Valid returns whether t is a known note type.
func (t Type) Valid() bool { return t >= TypePublic && t <= TypeEncrypted }

// Felt returns the type's field element encoding, as stored in the metadata
// word.
func (t Type) Felt() types.Felt { return types.NewFelt(uint64(t)) }

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypePublic:
		return "public"
	case TypePrivate:
		return "private"
	case TypeEncrypted:
		return "encrypted"
	default:
		return "invalid"
	}
}

// EncodeTo implements types.EncoderTo.
func (t Type) EncodeTo(e *types.Encoder) { e.WriteUint8(uint8(t)) }

// DecodeFrom implements types.DecoderFrom.
func (t *Type) DecodeFrom(d *types.Decoder) {
	v := Type(d.ReadUint8())
	if !v.Valid() {
		d.SetErr(fmt.Errorf("unknown note type (%d)", uint8(v)))
		return
	}
	*t = v
}
