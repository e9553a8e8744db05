package program

import (
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/gagliardetto/solana-go"
)

// toCommon adapts a gagliardetto/solana-go address (used throughout this
// program for PDA derivation and account bookkeeping) to the
// blocto/solana-go-sdk address type that the system and token program
// instruction builders expect, so both ecosystem libraries can describe the
// same cross-program invocation.
func toCommon(pk solana.PublicKey) common.PublicKey {
	return common.PublicKeyFromBytes(pk.Bytes())
}

// MoveSOLProgramOwned performs the direct-lamport-arithmetic path of the SOL
// value mover: the source account is program-owned, so the
// program mutates the lamport fields directly rather than invoking the
// system program. Unless closing is true, the source may never be reduced
// below its rent-exempt reserve.
func MoveSOLProgramOwned(ledger *Ledger, from, to solana.PublicKey, amount uint64, closing bool) error {
	src := ledger.Get(from)
	dst := ledger.Get(to)
	if src == nil || dst == nil {
		return ErrInvalidAccountOwner
	}
	reserve := uint64(0)
	if !closing {
		reserve = RentExemptReserve(len(src.Data))
	}
	if src.Lamports < amount || src.Lamports-amount < reserve {
		return ErrOverflow
	}
	src.Lamports -= amount
	dst.Lamports += amount
	return nil
}

// MoveSOLFromExternal performs the system-program-transfer path of the SOL
// value mover: the source account is owned by the system program (e.g. the
// creator's wallet), so only the system program may debit it. The CPI the
// handler would issue is constructed here with
// blocto/solana-go-sdk/program/system for bit-exact wire parity with a real
// signed invocation, then its effect is applied to the simulated ledger.
func MoveSOLFromExternal(ledger *Ledger, from, to solana.PublicKey, amount uint64) error {
	src := ledger.Get(from)
	if src == nil {
		return ErrInvalidAccountOwner
	}
	if !src.Owner.Equals(SystemProgramID) {
		return ErrInvalidSystemProgram
	}
	dst := ledger.Get(to)
	if dst == nil {
		return ErrInvalidAccountOwner
	}
	if src.Lamports < amount {
		return ErrOverflow
	}

	// The instruction a real CPI would submit; built for wire fidelity even
	// though the simulated ledger applies the transfer directly below.
	_ = system.Transfer(system.TransferParam{
		From:   toCommon(from),
		To:     toCommon(to),
		Amount: amount,
	})

	src.Lamports -= amount
	dst.Lamports += amount
	return nil
}

// CreateSystemAccount builds (for wire fidelity) and applies the
// system-program create_account CPI that Create issues for the red_packet
// and vault accounts and InitTreasury issues for the treasury and, on the
// SPL path, the treasury vault.
func CreateSystemAccount(ledger *Ledger, payer, newAccount solana.PublicKey, owner solana.PublicKey, space int, extraLamports uint64) error {
	_ = system.CreateAccount(system.CreateAccountParam{
		From:     toCommon(payer),
		New:      toCommon(newAccount),
		Owner:    toCommon(owner),
		Lamports: RentExemptReserve(space) + extraLamports,
		Space:    uint64(space),
	})
	return ledger.CreateAccount(payer, newAccount, owner, space, extraLamports)
}
