package program

import (
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/gagliardetto/solana-go"
)

// fromCommon is the inverse of toCommon (cpi_sol.go): it adapts a
// blocto/solana-go-sdk address back to the gagliardetto/solana-go type this
// program uses everywhere else.
func fromCommon(pk common.PublicKey) solana.PublicKey {
	return solana.PublicKeyFromBytes(pk.Bytes())
}

// DeriveAssociatedTokenAccount derives the canonical associated token
// account address for (owner, mint), using
// blocto/solana-go-sdk/program/associated_token_account for the same
// derivation a wallet or indexer would use off-chain.
func DeriveAssociatedTokenAccount(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, err := associated_token_account.GetAssociatedTokenAddress(toCommon(owner), toCommon(mint))
	if err != nil {
		return solana.PublicKey{}, err
	}
	return fromCommon(ata), nil
}

// checkAssociatedTokenAccount rejects a caller-supplied token account unless
// its address is the canonical ATA for (owner, mint). A handler that skips
// this check would let an attacker substitute any fungible-token account
// they control in place of the owner's own, redirecting a claim or a fee
// withdrawal to themselves.
func checkAssociatedTokenAccount(tokenAccount, owner, mint solana.PublicKey) error {
	ata, err := DeriveAssociatedTokenAccount(owner, mint)
	if err != nil {
		return ErrInvalidTokenAccount
	}
	if !ata.Equals(tokenAccount) {
		return ErrInvalidTokenAccount
	}
	return nil
}
