package note

import (
	"bytes"
	"fmt"

	"go.veil.sh/core/types"
)

// MaxScriptSize is the maximum size of a compiled note script, in bytes.
const MaxScriptSize = 1 << 16

// scriptMagic prefixes every compiled note script.
var scriptMagic = []byte("VNS1")

// A Script is a compiled note script: the program a consumer must execute to
// spend the note. Only the root participates in commitments; the code is
// carried so that consumers can actually run it.
type Script struct {
	root types.Word
	code []byte
}

// CompileScript validates the given compiled script bytes and computes the
// script's root.
func CompileScript(code []byte) (Script, error) {
	if !bytes.HasPrefix(code, scriptMagic) {
		return Script{}, fmt.Errorf("%w: missing %q magic", ErrInvalidScript, scriptMagic)
	} else if len(code) == len(scriptMagic) {
		return Script{}, fmt.Errorf("%w: empty body", ErrInvalidScript)
	} else if len(code) > MaxScriptSize {
		return Script{}, fmt.Errorf("%w: %d bytes exceeds maximum", ErrInvalidScript, len(code))
	}
	h := types.NewHasher()
	h.WriteDistinguisher("note/script")
	h.E.WriteBytes(code)
	return Script{root: h.SumWord(), code: append([]byte(nil), code...)}, nil
}

// Root returns the script's commitment root.
func (s Script) Root() types.Word { return s.root }

// Code returns the compiled script bytes.
func (s Script) Code() []byte { return append([]byte(nil), s.code...) }

// EncodeTo implements types.EncoderTo.
func (s Script) EncodeTo(e *types.Encoder) { e.WriteBytes(s.code) }

// DecodeFrom implements types.DecoderFrom.
func (s *Script) DecodeFrom(d *types.Decoder) {
	code := d.ReadBytes()
	if d.Err() != nil {
		return
	}
	v, err := CompileScript(code)
	if err != nil {
		d.SetErr(err)
		return
	}
	*s = v
}
