package note

import "go.veil.sh/core/types"

// An ID uniquely identifies a note on chain. It commits to the note's
// recipient digest and its assets, so any observer can check that published
// details match a known ID, but it reveals nothing about either preimage.
type ID types.Word

// String implements fmt.Stringer.
func (id ID) String() string { return types.Word(id).String() }

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) { return types.Word(id).MarshalText() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error { return (*types.Word)(id).UnmarshalText(b) }

// EncodeTo implements types.EncoderTo.
func (id ID) EncodeTo(e *types.Encoder) { types.Word(id).EncodeTo(e) }

// DecodeFrom implements types.DecoderFrom.
func (id *ID) DecodeFrom(d *types.Decoder) { (*types.Word)(id).DecodeFrom(d) }

// A Nullifier marks a note as consumed. It is computed over the same preimage
// as the note's ID but in a distinct hash domain, so revealing a nullifier
// does not reveal which ID was spent.
type Nullifier types.Word

// String implements fmt.Stringer.
func (n Nullifier) String() string { return types.Word(n).String() }

// MarshalText implements encoding.TextMarshaler.
func (n Nullifier) MarshalText() ([]byte, error) { return types.Word(n).MarshalText() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Nullifier) UnmarshalText(b []byte) error { return (*types.Word)(n).UnmarshalText(b) }

// EncodeTo implements types.EncoderTo.
func (n Nullifier) EncodeTo(e *types.Encoder) { types.Word(n).EncodeTo(e) }

// DecodeFrom implements types.DecoderFrom.
func (n *Nullifier) DecodeFrom(d *types.Decoder) { (*types.Word)(n).DecodeFrom(d) }
