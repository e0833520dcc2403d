package note

import (
	_ "embed"
	"fmt"
	"sync"

	"go.veil.sh/core/types"
)

var (
	//go:embed scripts/p2id.vns
	p2idCode []byte
	//go:embed scripts/p2idr.vns
	p2idrCode []byte
	//go:embed scripts/swap.vns
	swapCode []byte
)

func mustCompile(code []byte) func() Script {
	return sync.OnceValue(func() Script {
		s, err := CompileScript(code)
		if err != nil {
			panic(err)
		}
		return s
	})
}

var (
	// P2IDScript returns the standard pay-to-ID script, spendable only by the
	// account named in the note inputs.
	P2IDScript = mustCompile(p2idCode)

	// P2IDRScript returns the recallable pay-to-ID script, additionally
	// spendable by the sender once the recall height is reached.
	P2IDRScript = mustCompile(p2idrCode)

	// SwapScript returns the standard swap script, which releases the offered
	// assets to whoever creates the requested payback note.
	SwapScript = mustCompile(swapCode)
)

// P2IDRecipient returns the recipient a creator should address assets to in
// order to pay the given account via the standard P2ID script.
func P2IDRecipient(target types.AccountID, serialNum types.Word) Recipient {
	inputs, _ := NewInputs(target.Felt())
	return NewRecipient(serialNum, P2IDScript(), inputs)
}

// NewP2IDNote creates a note paying the given assets to the target account.
// Only the target can consume the note.
func NewP2IDNote(sender, target types.AccountID, assets Assets, noteType Type, aux types.Felt, source types.FeltSource) (Note, error) {
	tag, err := TagFromAccountID(target, ExecutionHintLocal)
	if err != nil {
		return Note{}, fmt.Errorf("deriving tag: %w", err)
	}
	metadata, err := NewMetadata(sender, noteType, tag, aux)
	if err != nil {
		return Note{}, err
	}
	recipient := P2IDRecipient(target, source.DrawWord())
	return NewNote(NewDetails(assets, recipient), metadata), nil
}

// NewP2IDRNote creates a recallable note paying the given assets to the
// target account. The target can consume it at any time; once the chain
// reaches recallHeight, the sender can reclaim it instead.
func NewP2IDRNote(sender, target types.AccountID, assets Assets, noteType Type, aux types.Felt, recallHeight uint32, source types.FeltSource) (Note, error) {
	tag, err := TagFromAccountID(target, ExecutionHintLocal)
	if err != nil {
		return Note{}, fmt.Errorf("deriving tag: %w", err)
	}
	metadata, err := NewMetadata(sender, noteType, tag, aux)
	if err != nil {
		return Note{}, err
	}
	inputs, err := NewInputs(target.Felt(), types.NewFelt(uint64(recallHeight)))
	if err != nil {
		return Note{}, err
	}
	recipient := NewRecipient(source.DrawWord(), P2IDRScript(), inputs)
	return NewNote(NewDetails(assets, recipient), metadata), nil
}

// NewSwapNote creates a note offering one asset in exchange for another.
// Whoever consumes it must create a payback note carrying the requested asset
// to the sender, addressed with the returned serial number. The caller keeps
// the serial number so it can recognize the payback note when it appears.
//
// TODO: derive a real discovery tag for swap notes once the tag schema
// assigns them a class; until then they are created with the zero tag and
// must be discovered out of band.
func NewSwapNote(sender types.AccountID, offered, requested Asset, noteType Type, aux types.Felt, source types.FeltSource) (Note, types.Word, error) {
	offeredAssets, err := NewAssets(offered)
	if err != nil {
		return Note{}, types.Word{}, err
	}
	metadata, err := NewMetadata(sender, noteType, Tag(0), aux)
	if err != nil {
		return Note{}, types.Word{}, err
	}
	paybackTag, err := TagFromAccountID(sender, ExecutionHintLocal)
	if err != nil {
		return Note{}, types.Word{}, fmt.Errorf("deriving payback tag: %w", err)
	}
	paybackSerial := source.DrawWord()
	paybackDigest := P2IDRecipient(sender, paybackSerial).Digest()
	requestedWord := requested.Word()
	inputs, err := NewInputs(
		paybackDigest[0], paybackDigest[1], paybackDigest[2], paybackDigest[3],
		requestedWord[0], requestedWord[1], requestedWord[2], requestedWord[3],
		paybackTag.Felt(),
	)
	if err != nil {
		return Note{}, types.Word{}, err
	}
	recipient := NewRecipient(source.DrawWord(), SwapScript(), inputs)
	return NewNote(NewDetails(offeredAssets, recipient), metadata), paybackSerial, nil
}
