package program

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// SPLTokenAccountSize is the standard fungible-token program account-state
// size: mint(32) owner(32) amount(8) delegate(36) state(1) is_native(12)
// delegated_amount(8) close_authority(36).
const SPLTokenAccountSize = 165

// SPLTokenAccount is the minimal slice of the standard token-account layout
// this program reads or writes: the mint, the authority, and the balance.
// It deliberately does not model the delegate/close-authority fields; this
// program never sets or inspects them.
type SPLTokenAccount struct {
	Mint   solana.PublicKey
	Owner  solana.PublicKey
	Amount uint64
}

// Marshal encodes an SPL token account body. The state byte is set to
// Initialized; the other fields this program does not use (delegate,
// is_native, delegated_amount, close_authority) are zeroed, matching a
// freshly initialized token account. The simulated runtime never inspects
// the state byte.
func (a *SPLTokenAccount) Marshal() []byte {
	buf := make([]byte, SPLTokenAccountSize)
	copy(buf[0:32], a.Mint.Bytes())
	copy(buf[32:64], a.Owner.Bytes())
	binary.LittleEndian.PutUint64(buf[64:72], a.Amount)
	buf[108] = 1 // state = Initialized
	return buf
}

// UnmarshalSPLTokenAccount decodes mint, owner, and amount from a token
// account's raw bytes.
func UnmarshalSPLTokenAccount(data []byte) (*SPLTokenAccount, error) {
	if len(data) < 72 {
		return nil, ErrInvalidTokenAccount
	}
	return &SPLTokenAccount{
		Mint:   solana.PublicKeyFromBytes(data[0:32]),
		Owner:  solana.PublicKeyFromBytes(data[32:64]),
		Amount: binary.LittleEndian.Uint64(data[64:72]),
	}, nil
}
