package note

import "go.veil.sh/core/types"

// A Header is the public summary of a note: its ID and metadata. Headers are
// what block producers publish for every note regardless of type.
type Header struct {
	id       ID
	metadata Metadata
}

// NewHeader returns the header for the given ID and metadata.
func NewHeader(id ID, metadata Metadata) Header {
	return Header{id: id, metadata: metadata}
}

// ID returns the note's ID.
func (h Header) ID() ID { return h.id }

// Metadata returns the note's metadata.
func (h Header) Metadata() Metadata { return h.metadata }

// Commitment returns the hash authenticating the header, as absorbed into a
// block's note tree.
func (h Header) Commitment() types.Word {
	return types.HashWords("note/header", types.Word(h.id), h.metadata.Word())
}

// EncodeTo implements types.EncoderTo.
func (h Header) EncodeTo(e *types.Encoder) {
	h.id.EncodeTo(e)
	h.metadata.EncodeTo(e)
}

// DecodeFrom implements types.DecoderFrom.
func (h *Header) DecodeFrom(d *types.Decoder) {
	h.id.DecodeFrom(d)
	h.metadata.DecodeFrom(d)
}
