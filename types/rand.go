package types

import "lukechampine.com/frand"

// A FeltSource draws uniformly-distributed field elements. Note builders
// consume one word per note for the serial number; callers supply the source
// so that note construction itself stays deterministic and testable.
//
// A FeltSource is not safe for concurrent use unless its implementation says
// otherwise.
type FeltSource interface {
	DrawFelt() Felt
	DrawWord() Word
}

type frandSource struct {
	rng *frand.RNG
}

// DrawFelt implements FeltSource.
func (s frandSource) DrawFelt() Felt {
	return NewFelt(s.rng.Uint64n(FieldModulus))
}

// DrawWord implements FeltSource.
func (s frandSource) DrawWord() (w Word) {
	for i := range w {
		w[i] = s.DrawFelt()
	}
	return
}

// NewFeltSource returns a FeltSource backed by rng.
func NewFeltSource(rng *frand.RNG) FeltSource {
	return frandSource{rng: rng}
}
