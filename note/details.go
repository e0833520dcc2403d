package note

import "go.veil.sh/core/types"

// Details is the private portion of a note: the assets it carries and the
// recipient that can spend them. For private notes, details travel out of
// band and are validated against the published ID on receipt.
type Details struct {
	assets    Assets
	recipient Recipient
}

// NewDetails returns the details for the given assets and recipient.
func NewDetails(assets Assets, recipient Recipient) Details {
	return Details{assets: assets, recipient: recipient}
}

// Assets returns the note's assets.
func (d Details) Assets() Assets { return d.assets }

// Recipient returns the note's recipient.
func (d Details) Recipient() Recipient { return d.recipient }

// ID computes the note ID committed to by the details.
func (d Details) ID() ID {
	return ID(types.HashWords("note/id", d.recipient.Digest(), d.assets.Commitment()))
}

// Nullifier computes the note's nullifier. It binds the same preimage as the
// ID, but in a separate hash domain, so the two digests cannot be linked
// without the preimage itself.
func (d Details) Nullifier() Nullifier {
	return Nullifier(types.HashWords("note/nullifier", d.recipient.Digest(), d.assets.Commitment()))
}

// EncodeTo implements types.EncoderTo.
func (d Details) EncodeTo(e *types.Encoder) {
	d.assets.EncodeTo(e)
	d.recipient.EncodeTo(e)
}

// DecodeFrom implements types.DecoderFrom.
func (d *Details) DecodeFrom(dec *types.Decoder) {
	d.assets.DecodeFrom(dec)
	d.recipient.DecodeFrom(dec)
}
