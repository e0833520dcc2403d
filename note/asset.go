package note

import (
	"bytes"
	"fmt"
	"sort"

	"go.veil.sh/core/types"
)

const (
	// MaxAssets is the maximum number of assets attachable to a single note.
	MaxAssets = 255

	// MaxFungibleAmount is the maximum amount of a single fungible asset.
	MaxFungibleAmount = 1<<63 - 1
)

// An Asset is a fungible amount tied to a faucet account, or a non-fungible
// unit. Every asset serializes to a single word whose last element is the
// issuing faucet's account ID; the faucet's kind bits distinguish the two
// variants.
type Asset interface {
	// Word returns the asset's one-word encoding.
	Word() types.Word
	// Faucet returns the account that issued the asset.
	Faucet() types.AccountID

	isAsset()
}

// A FungibleAsset is an amount of a fungible token issued by a faucet.
type FungibleAsset struct {
	FaucetID types.AccountID
	Amount   uint64
}

// NewFungibleAsset validates and returns a fungible asset.
func NewFungibleAsset(faucet types.AccountID, amount uint64) (FungibleAsset, error) {
	if faucet.Kind() != types.AccountKindFungibleFaucet {
		return FungibleAsset{}, fmt.Errorf("account %v is not a fungible faucet", faucet)
	} else if amount == 0 {
		return FungibleAsset{}, fmt.Errorf("fungible asset amount must be positive")
	} else if amount > MaxFungibleAmount {
		return FungibleAsset{}, fmt.Errorf("fungible asset amount %d exceeds maximum", amount)
	}
	return FungibleAsset{FaucetID: faucet, Amount: amount}, nil
}

// Word implements Asset.
func (a FungibleAsset) Word() types.Word {
	return types.Word{types.NewFelt(a.Amount), types.Zero, types.Zero, a.FaucetID.Felt()}
}

// Faucet implements Asset.
func (a FungibleAsset) Faucet() types.AccountID { return a.FaucetID }

func (FungibleAsset) isAsset() {}

// A NonFungibleAsset is a unique asset, identified by a digest of its data
// with the issuing faucet's ID embedded in the final element.
type NonFungibleAsset types.Word

// NewNonFungibleAsset validates and returns a non-fungible asset committing
// to the given data.
func NewNonFungibleAsset(faucet types.AccountID, data []byte) (NonFungibleAsset, error) {
	if faucet.Kind() != types.AccountKindNonFungibleFaucet {
		return NonFungibleAsset{}, fmt.Errorf("account %v is not a non-fungible faucet", faucet)
	}
	h := types.NewHasher()
	h.WriteDistinguisher("note/nonfungible")
	h.E.WriteBytes(data)
	w := h.SumWord()
	w[3] = faucet.Felt()
	return NonFungibleAsset(w), nil
}

// Word implements Asset.
func (a NonFungibleAsset) Word() types.Word { return types.Word(a) }

// Faucet implements Asset.
func (a NonFungibleAsset) Faucet() types.AccountID { return types.AccountID(a[3].Uint64()) }

func (NonFungibleAsset) isAsset() {}

// AssetFromWord decodes an asset from its one-word encoding.
func AssetFromWord(w types.Word) (Asset, error) {
	faucet, err := types.NewAccountID(w[3].Uint64())
	if err != nil {
		return nil, fmt.Errorf("invalid asset faucet: %w", err)
	}
	switch faucet.Kind() {
	case types.AccountKindFungibleFaucet:
		if w[1] != types.Zero || w[2] != types.Zero {
			return nil, fmt.Errorf("malformed fungible asset word %v", w)
		}
		return NewFungibleAsset(faucet, w[0].Uint64())
	case types.AccountKindNonFungibleFaucet:
		return NonFungibleAsset(w), nil
	default:
		return nil, fmt.Errorf("account %v is not a faucet", faucet)
	}
}

// Assets is a validated set of assets attached to a note. The order in which
// assets were supplied does not affect the commitment.
type Assets struct {
	assets []Asset
}

// NewAssets validates the given assets as a note asset list. At most one
// fungible asset per faucet is allowed (amounts must be merged by the
// caller), and non-fungible assets must be distinct.
func NewAssets(assets ...Asset) (Assets, error) {
	if len(assets) > MaxAssets {
		return Assets{}, fmt.Errorf("%w: %d > %d", ErrTooManyAssets, len(assets), MaxAssets)
	}
	seen := make(map[types.Word]struct{}, len(assets))
	fungible := make(map[types.AccountID]struct{})
	for _, a := range assets {
		if _, ok := seen[a.Word()]; ok {
			return Assets{}, fmt.Errorf("%w: %v", ErrDuplicateAsset, a.Word())
		}
		seen[a.Word()] = struct{}{}
		if fa, ok := a.(FungibleAsset); ok {
			if _, ok := fungible[fa.FaucetID]; ok {
				return Assets{}, fmt.Errorf("%w: multiple fungible assets from faucet %v", ErrDuplicateAsset, fa.FaucetID)
			}
			fungible[fa.FaucetID] = struct{}{}
		}
	}
	return Assets{assets: append([]Asset(nil), assets...)}, nil
}

// List returns the assets in the set.
func (a Assets) List() []Asset { return append([]Asset(nil), a.assets...) }

// Len returns the number of assets in the set.
func (a Assets) Len() int { return len(a.assets) }

// sortedWords returns the canonical ordering of the asset words.
func (a Assets) sortedWords() []types.Word {
	words := make([]types.Word, len(a.assets))
	for i, asset := range a.assets {
		words[i] = asset.Word()
	}
	sort.Slice(words, func(i, j int) bool {
		bi, bj := words[i].Bytes(), words[j].Bytes()
		return bytes.Compare(bi[:], bj[:]) < 0
	})
	return words
}

// Commitment returns the hash committing to the asset set.
func (a Assets) Commitment() types.Word {
	h := types.NewHasher()
	h.WriteDistinguisher("note/assets")
	h.E.WriteUint64(uint64(len(a.assets)))
	for _, w := range a.sortedWords() {
		w.EncodeTo(h.E)
	}
	return h.SumWord()
}

// EncodeTo implements types.EncoderTo.
func (a Assets) EncodeTo(e *types.Encoder) {
	e.WriteUint8(uint8(len(a.assets)))
	for _, asset := range a.assets {
		asset.Word().EncodeTo(e)
	}
}

// DecodeFrom implements types.DecoderFrom.
func (a *Assets) DecodeFrom(d *types.Decoder) {
	n := int(d.ReadUint8())
	assets := make([]Asset, 0, n)
	for i := 0; i < n; i++ {
		var w types.Word
		w.DecodeFrom(d)
		if d.Err() != nil {
			return
		}
		asset, err := AssetFromWord(w)
		if err != nil {
			d.SetErr(err)
			return
		}
		assets = append(assets, asset)
	}
	set, err := NewAssets(assets...)
	if err != nil {
		d.SetErr(err)
		return
	}
	*a = set
}
