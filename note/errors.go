package note

import "errors"

// Structural validation errors. All are detected synchronously at
// construction or deserialization time and are never retried.
var (
	// ErrIncompatibleTag is returned when a metadata tag is combined with a
	// note type its class forbids.
	ErrIncompatibleTag = errors.New("tag is incompatible with note type")

	// ErrTooManyAssets is returned when an asset list exceeds MaxAssets.
	ErrTooManyAssets = errors.New("too many assets")

	// ErrDuplicateAsset is returned when an asset list contains a duplicate
	// non-fungible asset or two fungible assets from the same faucet.
	ErrDuplicateAsset = errors.New("duplicate asset")

	// ErrTooManyInputs is returned when a note input list exceeds MaxInputs.
	ErrTooManyInputs = errors.New("too many note inputs")

	// ErrInvalidScript is returned when script bytes fail compilation.
	ErrInvalidScript = errors.New("invalid note script")
)
