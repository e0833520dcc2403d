package note

import (
	"fmt"

	"go.veil.sh/core/types"
)

// MaxInputs is the maximum number of input elements attachable to a note.
const MaxInputs = 128

// Inputs is a bounded sequence of field elements customizing a note script's
// behavior. The script defines the meaning of each position.
type Inputs struct {
	values []types.Felt
}

// NewInputs validates the given elements as note inputs.
func NewInputs(values ...types.Felt) (Inputs, error) {
	if len(values) > MaxInputs {
		return Inputs{}, fmt.Errorf("%w: %d > %d", ErrTooManyInputs, len(values), MaxInputs)
	}
	return Inputs{values: append([]types.Felt(nil), values...)}, nil
}

// Values returns the input elements.
func (in Inputs) Values() []types.Felt { return append([]types.Felt(nil), in.values...) }

// Len returns the number of input elements.
func (in Inputs) Len() int { return len(in.values) }

// Commitment returns the hash committing to the inputs, binding both the
// element count and the elements themselves.
func (in Inputs) Commitment() types.Word {
	h := types.NewHasher()
	h.WriteDistinguisher("note/inputs")
	h.E.WriteUint64(uint64(len(in.values)))
	for _, v := range in.values {
		v.EncodeTo(h.E)
	}
	return h.SumWord()
}

// EncodeTo implements types.EncoderTo.
func (in Inputs) EncodeTo(e *types.Encoder) {
	e.WriteUint8(uint8(len(in.values)))
	for _, v := range in.values {
		v.EncodeTo(e)
	}
}

// DecodeFrom implements types.DecoderFrom.
func (in *Inputs) DecodeFrom(d *types.Decoder) {
	n := int(d.ReadUint8())
	values := make([]types.Felt, n)
	for i := range values {
		values[i].DecodeFrom(d)
	}
	if d.Err() != nil {
		return
	}
	v, err := NewInputs(values...)
	if err != nil {
		d.SetErr(err)
		return
	}
	*in = v
}
