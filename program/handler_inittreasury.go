package program

import "github.com/gagliardetto/solana-go"

// handleInitTreasury creates and populates a new Treasury account for a
// given token type/mint. The payer is not privileged; anyone may
// initialize a treasury for a new mint. Re-initialization is rejected,
// which is the only thing that makes this idempotent-safe.
func handleInitTreasury(ledger *Ledger, accounts []*AccountInfo, data []byte) error {
	args, err := DecodeInitTreasuryArgs(data)
	if err != nil {
		return err
	}

	minAccounts := 3
	if args.TokenType == TokenTypeSPL {
		minAccounts = 6
	}
	if len(accounts) < minAccounts {
		return ErrNotEnoughAccounts
	}

	payer := accounts[0]
	treasuryInfo := accounts[1]
	systemProgram := accounts[2]

	if !payer.IsSigner {
		return ErrMissingRequiredSignature
	}
	if !payer.IsWritable || !treasuryInfo.IsWritable {
		return ErrAccountNotWritable
	}
	if err := checkProgramID(systemProgram.Key, SystemProgramID, ErrInvalidSystemProgram); err != nil {
		return err
	}
	if ledger.Exists(treasuryInfo.Key) {
		return ErrAlreadyInitialized
	}

	var mint solana.PublicKey
	var treasuryVaultInfo, mintInfo, tokenProgram *AccountInfo
	if args.TokenType == TokenTypeSPL {
		treasuryVaultInfo = accounts[3]
		mintInfo = accounts[4]
		tokenProgram = accounts[5]
		mint = mintInfo.Key
		if err := checkProgramID(tokenProgram.Key, TokenProgramID, ErrInvalidTokenProgram); err != nil {
			return err
		}
	} else if args.VaultBump != 0 {
		return ErrInvalidInstructionData
	} else {
		mint = SolMintSentinel
	}

	if err := checkCanonicalPDA(treasuryInfo.Key, TreasurySignerSeeds(args.TokenType, mint), args.TreasuryBump); err != nil {
		return err
	}
	if args.TokenType == TokenTypeSPL {
		tvPDA, _, err := DeriveTreasuryVaultPDA(mint)
		if err != nil || !tvPDA.Equals(treasuryVaultInfo.Key) {
			return ErrInvalidPDA
		}
	}

	if err := CreateSystemAccount(ledger, payer.Key, treasuryInfo.Key, ProgramID, int(TreasurySize), 0); err != nil {
		return err
	}
	// rebind to the ledger's own entry; see the identical note in
	// finishCreate (handler_create.go).
	treasuryInfo = ledger.Get(treasuryInfo.Key)

	treasury := &Treasury{
		Bump:             args.TreasuryBump,
		VaultBump:        args.VaultBump,
		Mint:             mint,
		SolFeesCollected: 0,
	}
	treasuryInfo.Data = treasury.Marshal()

	if args.TokenType == TokenTypeSPL {
		if err := CreateSystemAccount(ledger, payer.Key, treasuryVaultInfo.Key, TokenProgramID, SPLTokenAccountSize, 0); err != nil {
			return err
		}
		if err := InitializeSPLVault(ledger, treasuryVaultInfo.Key, mint, treasuryInfo.Key); err != nil {
			return err
		}
	}

	return nil
}
