package note

import (
	"fmt"

	"go.veil.sh/core/types"
)

// NoteTreeDepth is the depth of a block's note tree.
const NoteTreeDepth = 20

// An Origin locates a note within the chain: the block whose note tree
// contains it, and the leaf index within that tree.
type Origin struct {
	BlockNum  uint32
	NodeIndex uint64
}

// String implements fmt.Stringer.
func (o Origin) String() string { return fmt.Sprintf("%d/%d", o.BlockNum, o.NodeIndex) }

// EncodeTo implements types.EncoderTo.
func (o Origin) EncodeTo(e *types.Encoder) {
	e.WriteUint32(o.BlockNum)
	e.WriteUint64(o.NodeIndex)
}

// DecodeFrom implements types.DecoderFrom.
func (o *Origin) DecodeFrom(d *types.Decoder) {
	o.BlockNum = d.ReadUint32()
	o.NodeIndex = d.ReadUint64()
}

// An InclusionProof authenticates a note's membership in a block's note tree.
type InclusionProof struct {
	Origin  Origin
	SubRoot types.Word
	Path    []types.Word
}

// Verify checks the proof against the authentication hash of the note it
// claims to include.
func (p InclusionProof) Verify(authHash types.Word) error {
	if len(p.Path) != NoteTreeDepth {
		return fmt.Errorf("merkle path has %d nodes, expected %d", len(p.Path), NoteTreeDepth)
	} else if p.Origin.NodeIndex >= 1<<NoteTreeDepth {
		return fmt.Errorf("node index %d out of range", p.Origin.NodeIndex)
	}
	cur := authHash
	for i, sibling := range p.Path {
		if p.Origin.NodeIndex&(1<<i) == 0 {
			cur = types.HashWords("note/node", cur, sibling)
		} else {
			cur = types.HashWords("note/node", sibling, cur)
		}
	}
	if cur != p.SubRoot {
		return fmt.Errorf("merkle path does not reach sub-root %v", p.SubRoot)
	}
	return nil
}

// EncodeTo implements types.EncoderTo.
func (p InclusionProof) EncodeTo(e *types.Encoder) {
	p.Origin.EncodeTo(e)
	p.SubRoot.EncodeTo(e)
	e.WriteUint8(uint8(len(p.Path)))
	for _, w := range p.Path {
		w.EncodeTo(e)
	}
}

// DecodeFrom implements types.DecoderFrom.
func (p *InclusionProof) DecodeFrom(d *types.Decoder) {
	p.Origin.DecodeFrom(d)
	p.SubRoot.DecodeFrom(d)
	p.Path = make([]types.Word, d.ReadUint8())
	for i := range p.Path {
		p.Path[i].DecodeFrom(d)
	}
}
