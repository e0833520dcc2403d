package note

import (
	"fmt"

	"go.veil.sh/core/types"
)

// Metadata is the always-public portion of a note: who created it, how
// visible its details are, how it should be discovered, and an arbitrary
// aux value for creator-defined use.
type Metadata struct {
	sender   types.AccountID
	noteType Type
	tag      Tag
	aux      types.Felt
}

// NewMetadata validates and returns note metadata.
func NewMetadata(sender types.AccountID, noteType Type, tag Tag, aux types.Felt) (Metadata, error) {
	if !noteType.Valid() {
		return Metadata{}, fmt.Errorf("unknown note type (%d)", uint8(noteType))
	} else if err := tag.Validate(noteType); err != nil {
		return Metadata{}, err
	}
	return Metadata{sender: sender, noteType: noteType, tag: tag, aux: aux}, nil
}

// Sender returns the account that created the note.
func (m Metadata) Sender() types.AccountID { return m.sender }

// NoteType returns the note's visibility type.
func (m Metadata) NoteType() Type { return m.noteType }

// Tag returns the note's discovery tag.
func (m Metadata) Tag() Tag { return m.tag }

// Aux returns the creator-defined auxiliary value.
func (m Metadata) Aux() types.Felt { return m.aux }

// Word returns the metadata's one-word encoding, as absorbed into block-level
// note commitments.
func (m Metadata) Word() types.Word {
	return types.Word{m.tag.Felt(), m.sender.Felt(), m.noteType.Felt(), m.aux}
}

// EncodeTo implements types.EncoderTo.
func (m Metadata) EncodeTo(e *types.Encoder) {
	m.sender.EncodeTo(e)
	m.noteType.EncodeTo(e)
	m.tag.EncodeTo(e)
	m.aux.EncodeTo(e)
}

// DecodeFrom implements types.DecoderFrom.
func (m *Metadata) DecodeFrom(d *types.Decoder) {
	var sender types.AccountID
	var noteType Type
	var tag Tag
	var aux types.Felt
	sender.DecodeFrom(d)
	noteType.DecodeFrom(d)
	tag.DecodeFrom(d)
	aux.DecodeFrom(d)
	if d.Err() != nil {
		return
	}
	v, err := NewMetadata(sender, noteType, tag, aux)
	if err != nil {
		d.SetErr(err)
		return
	}
	*m = v
}
