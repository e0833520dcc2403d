package note

import "go.veil.sh/core/types"

// A Note moves assets between accounts. A note is created with full details;
// its ID and nullifier are derived, never stored, so a decoded note is
// guaranteed to carry digests consistent with its contents.
type Note struct {
	header    Header
	details   Details
	nullifier Nullifier
}

// NewNote assembles a note from its details and metadata, deriving the ID and
// nullifier.
func NewNote(details Details, metadata Metadata) Note {
	return Note{
		header:    NewHeader(details.ID(), metadata),
		details:   details,
		nullifier: details.Nullifier(),
	}
}

// Header returns the note's public header.
func (n Note) Header() Header { return n.header }

// ID returns the note's ID.
func (n Note) ID() ID { return n.header.ID() }

// Metadata returns the note's metadata.
func (n Note) Metadata() Metadata { return n.header.Metadata() }

// Assets returns the note's assets.
func (n Note) Assets() Assets { return n.details.Assets() }

// Recipient returns the note's recipient.
func (n Note) Recipient() Recipient { return n.details.Recipient() }

// Nullifier returns the note's nullifier.
func (n Note) Nullifier() Nullifier { return n.nullifier }

// AuthenticationHash returns the hash binding the note's ID to its metadata,
// used when proving a note's inclusion in a block's note tree.
func (n Note) AuthenticationHash() types.Word {
	return n.header.Commitment()
}

// EncodeTo implements types.EncoderTo. Only the metadata and details are
// written; the derived digests are recomputed on decode.
func (n Note) EncodeTo(e *types.Encoder) {
	n.header.Metadata().EncodeTo(e)
	n.details.EncodeTo(e)
}

// DecodeFrom implements types.DecoderFrom.
func (n *Note) DecodeFrom(d *types.Decoder) {
	var metadata Metadata
	var details Details
	metadata.DecodeFrom(d)
	details.DecodeFrom(d)
	if d.Err() != nil {
		return
	}
	*n = NewNote(details, metadata)
}
