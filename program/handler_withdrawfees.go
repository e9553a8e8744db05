package program

// handleWithdrawFees lets the fixed admin address sweep accumulated
// protocol fees out of a treasury. amount == 0 means "withdraw everything
// available"; clients rely on this overload and it must not change.
//
// Account layout differs by token type: SOL takes admin(signer,writable)
// and treasury(writable) only; SPL takes admin, admin token account,
// treasury, treasury vault and fungible-token program, and treats treasury
// as read-only, since an SPL
// withdrawal never mutates the treasury record itself, only the vault's
// token balance moves.
func handleWithdrawFees(ledger *Ledger, accounts []*AccountInfo, data []byte) error {
	args, err := DecodeWithdrawFeesArgs(data)
	if err != nil {
		return err
	}

	minAccounts := 2
	if args.TokenType == TokenTypeSPL {
		minAccounts = 5
	}
	if len(accounts) < minAccounts {
		return ErrNotEnoughAccounts
	}

	admin := accounts[0]
	var treasuryInfo *AccountInfo
	if args.TokenType == TokenTypeSPL {
		treasuryInfo = accounts[2]
	} else {
		treasuryInfo = accounts[1]
	}

	if !admin.IsSigner {
		return ErrMissingRequiredSignature
	}
	if !admin.Key.Equals(AdminAddress) {
		return ErrUnauthorized
	}
	if len(treasuryInfo.Data) == 0 || treasuryInfo.Data[0] != DiscTreasury {
		return ErrInvalidDiscriminator
	}

	treasury, err := UnmarshalTreasury(treasuryInfo.Data)
	if err != nil {
		return err
	}
	isSOL := treasury.IsSOL()
	if isSOL != (args.TokenType == TokenTypeSOL) {
		return ErrInvalidTokenType
	}

	switch args.TokenType {
	case TokenTypeSOL:
		if !treasuryInfo.IsWritable {
			return ErrAccountNotWritable
		}
		available := treasury.SolFeesCollected
		if available == 0 {
			return ErrNoFeesToWithdraw
		}
		amount := args.Amount
		if amount == 0 {
			amount = available
		}
		if amount > available {
			return ErrInsufficientTreasuryBalance
		}
		if err := MoveSOLProgramOwned(ledger, treasuryInfo.Key, admin.Key, amount, false); err != nil {
			return err
		}
		treasury.SolFeesCollected -= amount
		treasuryInfo.Data = treasury.Marshal()

	case TokenTypeSPL:
		adminTokenAccount := accounts[1]
		treasuryVaultInfo := accounts[3]
		tokenProgram := accounts[4]
		if err := checkProgramID(tokenProgram.Key, TokenProgramID, ErrInvalidTokenProgram); err != nil {
			return err
		}
		if len(treasuryVaultInfo.Data) < 72 {
			return ErrInvalidTokenAccount
		}
		vaultAcct, err := UnmarshalSPLTokenAccount(treasuryVaultInfo.Data)
		if err != nil {
			return err
		}
		if err := checkAssociatedTokenAccount(adminTokenAccount.Key, AdminAddress, treasury.Mint); err != nil {
			return err
		}
		if vaultAcct.Amount == 0 {
			return ErrNoFeesToWithdraw
		}
		amount := args.Amount
		if amount == 0 {
			amount = vaultAcct.Amount
		}
		if amount > vaultAcct.Amount {
			return ErrInsufficientTreasuryBalance
		}
		if err := MoveSPL(ledger, treasuryVaultInfo.Key, adminTokenAccount.Key, treasuryInfo.Key, amount); err != nil {
			return err
		}

	default:
		return ErrInvalidTokenType
	}

	return nil
}
