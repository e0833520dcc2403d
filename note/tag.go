package note

import (
	"fmt"

	"go.veil.sh/core/types"
)

// An ExecutionHint indicates who is expected to execute a note's script: the
// target account itself ("local"), or the network on the target's behalf.
type ExecutionHint uint8

// The supported execution hints.
const (
	ExecutionHintLocal ExecutionHint = iota
	ExecutionHintNetwork
)

// A Tag is a routing and discovery value attached to a note's metadata. It
// carries no secrets: its purpose is to let a prospective consumer scan a
// block's note set for notes addressed to them without downloading full note
// details.
//
// The two most significant bits classify the tag. Single-target tags (0b11)
// are derived from a specific account ID for local execution and are valid
// with every note type. Network-execution tags (0b00) require the note to be
// public, since a network executor must be able to read the note's details.
type Tag uint32

const (
	tagSingleTargetPrefix = 0b11 << 30
	tagClassMask          = 0b11 << 30
)

// TagFromAccountID derives the discovery tag for notes addressed to the given
// account. The tag embeds the top 30 bits of the account ID, enough for the
// target to recognize its own notes with negligible false-positive rate.
func TagFromAccountID(id types.AccountID, hint ExecutionHint) (Tag, error) {
	prefix := uint32(uint64(id)>>34) &^ uint32(tagClassMask)
	switch hint {
	case ExecutionHintLocal:
		return Tag(tagSingleTargetPrefix | prefix), nil
	case ExecutionHintNetwork:
		if !id.IsOnChain() {
			return 0, fmt.Errorf("network execution requires an on-chain account, got %v", id)
		}
		return Tag(prefix), nil
	default:
		return 0, fmt.Errorf("unknown execution hint (%d)", hint)
	}
}

// IsSingleTarget returns whether the tag addresses a single account for local
// execution.
func (t Tag) IsSingleTarget() bool { return uint32(t)&tagClassMask == tagSingleTargetPrefix }

// Validate checks that the tag may be combined with the given note type.
func (t Tag) Validate(nt Type) error {
	if uint32(t)&tagClassMask == 0 && nt != TypePublic {
		return fmt.Errorf("%w: network-execution tag %v requires a public note, got %v", ErrIncompatibleTag, t, nt)
	}
	return nil
}

// Felt returns the tag as a field element.
func (t Tag) Felt() types.Felt { return types.NewFelt(uint64(t)) }

// String implements fmt.Stringer.
func (t Tag) String() string { return fmt.Sprintf("%#08x", uint32(t)) }

// EncodeTo implements types.EncoderTo.
func (t Tag) EncodeTo(e *types.Encoder) { e.WriteUint32(uint32(t)) }

// DecodeFrom implements types.DecoderFrom.
func (t *Tag) DecodeFrom(d *types.Decoder) { *t = Tag(d.ReadUint32()) }
