package note

import "go.veil.sh/core/types"

// A Recipient is the spending condition of a note: a serial number, the script
// a consumer must execute, and the inputs the script runs with. Its digest is
// all that a note's creator needs in order to address assets to it, so a
// prospective consumer can hand out digests without revealing how the note
// will be spent.
type Recipient struct {
	serialNum types.Word
	script    Script
	inputs    Inputs
}

// NewRecipient returns the recipient for the given spending condition.
func NewRecipient(serialNum types.Word, script Script, inputs Inputs) Recipient {
	return Recipient{serialNum: serialNum, script: script, inputs: inputs}
}

// SerialNum returns the recipient's serial number.
func (r Recipient) SerialNum() types.Word { return r.serialNum }

// Script returns the recipient's script.
func (r Recipient) Script() Script { return r.script }

// Inputs returns the recipient's script inputs.
func (r Recipient) Inputs() Inputs { return r.inputs }

// Digest returns the recipient's commitment. The serial number is absorbed
// first, hashed against the empty word so that the digest chain always starts
// from a fixed-width pair, then the script root and the inputs commitment are
// merged in.
func (r Recipient) Digest() types.Word {
	d := types.HashWords("note/merge", r.serialNum, types.EmptyWord)
	d = types.HashWords("note/merge", d, r.script.Root())
	return types.HashWords("note/merge", d, r.inputs.Commitment())
}

// EncodeTo implements types.EncoderTo.
func (r Recipient) EncodeTo(e *types.Encoder) {
	r.serialNum.EncodeTo(e)
	r.script.EncodeTo(e)
	r.inputs.EncodeTo(e)
}

// DecodeFrom implements types.DecoderFrom.
func (r *Recipient) DecodeFrom(d *types.Decoder) {
	r.serialNum.DecodeFrom(d)
	r.script.DecodeFrom(d)
	r.inputs.DecodeFrom(d)
}
