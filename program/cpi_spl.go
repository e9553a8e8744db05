package program

import (
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/gagliardetto/solana-go"
)

// InitializeSPLVault builds (for wire fidelity) and applies the
// fungible-token program's initialize-account CPI used when Create opens a
// red packet's vault token account (authority: the vault PDA itself) or
// InitTreasury opens a treasury vault (authority: the treasury PDA).
func InitializeSPLVault(ledger *Ledger, account, mint, authority solana.PublicKey) error {
	_ = token.InitializeAccount(token.InitializeAccountParam{
		Account: toCommon(account),
		Mint:    toCommon(mint),
		Owner:   toCommon(authority),
	})

	acct := &SPLTokenAccount{Mint: mint, Owner: authority, Amount: 0}
	info := ledger.Get(account)
	if info == nil {
		return ErrInvalidAccountOwner
	}
	info.Data = acct.Marshal()
	info.Owner = TokenProgramID
	return nil
}

// MoveSPL performs the fungible-token-program transfer path of the value
// mover. authority is whichever key signs for the CPI: the
// creator's top-level signature when moving out of the creator's token
// account, or the vault/treasury PDA (whose derived seeds would sign the
// real CPI) when moving out of a program-controlled token account.
// authority is only recorded in the built instruction; the simulated ledger
// does not check it and trusts the caller to have already checked the PDA
// derivation.
func MoveSPL(ledger *Ledger, from, to, authority solana.PublicKey, amount uint64) error {
	fromInfo := ledger.Get(from)
	toInfo := ledger.Get(to)
	if fromInfo == nil || toInfo == nil {
		return ErrInvalidTokenAccount
	}
	fromAcct, err := UnmarshalSPLTokenAccount(fromInfo.Data)
	if err != nil {
		return err
	}
	toAcct, err := UnmarshalSPLTokenAccount(toInfo.Data)
	if err != nil {
		return err
	}
	if fromAcct.Amount < amount {
		return ErrOverflow
	}

	_ = token.Transfer(token.TransferParam{
		From:    toCommon(from),
		To:      toCommon(to),
		Auth:    toCommon(authority),
		Signers: []common.PublicKey{},
		Amount:  amount,
	})

	fromAcct.Amount -= amount
	toAcct.Amount += amount
	fromInfo.Data = fromAcct.Marshal()
	toInfo.Data = toAcct.Marshal()
	return nil
}

// CloseSPLTokenAccount builds (for wire fidelity) and applies the
// fungible-token program's close-account CPI Close issues to reclaim the
// SPL vault's rent, signed by the vault PDA's derived seeds.
func CloseSPLTokenAccount(ledger *Ledger, account, destination, authority solana.PublicKey) error {
	_ = token.CloseAccount(token.CloseAccountParam{
		Account:     toCommon(account),
		Destination: toCommon(destination),
		Owner:       toCommon(authority),
		Signers:     []common.PublicKey{},
	})
	return ledger.CloseAccount(account, destination)
}
