package program

import "github.com/gagliardetto/solana-go"

// handleCreate locks a pool of value behind a new RedPacket/Vault pair,
// skims the protocol fee into the treasury, and populates the per-slot
// payout schedule. Every validation runs before any account is created or
// mutated, so a rejected Create can never leave partial state.
func handleCreate(ledger *Ledger, accounts []*AccountInfo, data []byte) error {
	args, err := DecodeCreateArgs(data)
	if err != nil {
		return err
	}

	if args.TotalAmount == 0 {
		return ErrInvalidAmount
	}
	if args.NumRecipients == 0 || args.NumRecipients > MaxRecipients {
		return ErrInvalidRecipients
	}
	if args.SplitMode != SplitModeEven && args.SplitMode != SplitModeRandom {
		return ErrInvalidSplitMode
	}
	if args.TokenType != TokenTypeSOL && args.TokenType != TokenTypeSPL {
		return ErrInvalidTokenType
	}
	if args.ExpiresAt <= ledger.UnixTimestamp {
		return ErrInvalidExpiry
	}

	var amounts []uint64
	if args.SplitMode == SplitModeRandom {
		if len(args.Amounts) != int(args.NumRecipients) {
			return ErrAmountMismatch
		}
		var sum uint64
		for _, a := range args.Amounts {
			if a == 0 {
				return ErrZeroSlotAmount
			}
			sum += a
		}
		if sum != args.TotalAmount {
			return ErrAmountMismatch
		}
		amounts = args.Amounts
	} else {
		amounts = EvenSplit(args.TotalAmount, args.NumRecipients)
	}

	minAccounts := 5
	if args.TokenType == TokenTypeSPL {
		minAccounts = 9
	}
	if len(accounts) < minAccounts {
		return ErrNotEnoughAccounts
	}

	creator := accounts[0]
	redPacketInfo := accounts[1]
	vaultInfo := accounts[2]
	treasuryInfo := accounts[3]
	systemProgram := accounts[4]

	if !creator.IsSigner {
		return ErrMissingRequiredSignature
	}
	if !creator.IsWritable || !redPacketInfo.IsWritable || !vaultInfo.IsWritable || !treasuryInfo.IsWritable {
		return ErrAccountNotWritable
	}
	if err := checkProgramID(systemProgram.Key, SystemProgramID, ErrInvalidSystemProgram); err != nil {
		return err
	}

	if err := checkCanonicalPDA(redPacketInfo.Key, [][]byte{SeedRedPacket, creator.Key.Bytes(), idLEBytes(args.ID)}, args.RPBump); err != nil {
		return err
	}
	if err := checkCanonicalPDA(vaultInfo.Key, VaultSignerSeeds(creator.Key, args.ID), args.VaultBump); err != nil {
		return err
	}

	var creatorTokenAccount, treasuryVaultInfo, mintInfo *AccountInfo
	if args.TokenType == TokenTypeSPL {
		creatorTokenAccount = accounts[5]
		treasuryVaultInfo = accounts[6]
		mintInfo = accounts[7]
		tokenProgram := accounts[8]
		if err := checkProgramID(tokenProgram.Key, TokenProgramID, ErrInvalidTokenProgram); err != nil {
			return err
		}
		if err := checkAssociatedTokenAccount(creatorTokenAccount.Key, creator.Key, mintInfo.Key); err != nil {
			return err
		}
	}

	return finishCreate(ledger, args, amounts, creator, redPacketInfo, vaultInfo, treasuryInfo,
		creatorTokenAccount, treasuryVaultInfo, mintInfo, args.VaultBump)
}

// finishCreate runs the Create effects once every
// validation above has passed. The SOL and SPL paths only genuinely differ
// in how the vault is funded/initialized and how the fee is transported.
func finishCreate(
	ledger *Ledger,
	args *CreateArgs,
	amounts []uint64,
	creator, redPacketInfo, vaultInfo, treasuryInfo *AccountInfo,
	creatorTokenAccount, treasuryVaultInfo, mintInfo *AccountInfo,
	vaultBump uint8,
) error {
	if treasuryInfo.Data == nil || len(treasuryInfo.Data) == 0 || treasuryInfo.Data[0] != DiscTreasury {
		return ErrTreasuryNotInitialized
	}
	treasury, err := UnmarshalTreasury(treasuryInfo.Data)
	if err != nil {
		return ErrTreasuryNotInitialized
	}

	// Every account/state check for both paths runs here, before the first
	// write below, so a rejected Create can never have allocated the
	// red_packet account or moved any value.
	switch args.TokenType {
	case TokenTypeSOL:
		if !treasury.IsSOL() {
			return ErrInvalidTokenType
		}
	case TokenTypeSPL:
		if treasury.IsSOL() {
			return ErrInvalidTokenType
		}
		if !treasury.Mint.Equals(mintInfo.Key) {
			return ErrInvalidPDA
		}
		tvPDA, _, err := DeriveTreasuryVaultPDA(mintInfo.Key)
		if err != nil || !tvPDA.Equals(treasuryVaultInfo.Key) {
			return ErrInvalidPDA
		}
	}

	fee := ComputeFee(args.TotalAmount)
	rpSize := int(RedPacketSize(args.NumRecipients))

	if err := CreateSystemAccount(ledger, creator.Key, redPacketInfo.Key, ProgramID, rpSize, 0); err != nil {
		return err
	}
	// CreateSystemAccount allocates a fresh ledger entry distinct from the
	// placeholder the caller passed in; rebind so the Marshal below lands
	// in the account the ledger actually tracks.
	redPacketInfo = ledger.Get(redPacketInfo.Key)

	switch args.TokenType {
	case TokenTypeSOL:
		if err := CreateSystemAccount(ledger, creator.Key, vaultInfo.Key, ProgramID, 0, args.TotalAmount); err != nil {
			return err
		}
		if err := MoveSOLFromExternal(ledger, creator.Key, treasuryInfo.Key, fee); err != nil {
			return err
		}
		treasury.SolFeesCollected += fee
		treasuryInfo.Data = treasury.Marshal()

	case TokenTypeSPL:
		if err := CreateSystemAccount(ledger, creator.Key, vaultInfo.Key, TokenProgramID, SPLTokenAccountSize, 0); err != nil {
			return err
		}
		if err := InitializeSPLVault(ledger, vaultInfo.Key, mintInfo.Key, vaultInfo.Key); err != nil {
			return err
		}
		if err := MoveSPL(ledger, creatorTokenAccount.Key, vaultInfo.Key, creator.Key, args.TotalAmount); err != nil {
			return err
		}
		if err := MoveSPL(ledger, creatorTokenAccount.Key, treasuryVaultInfo.Key, creator.Key, fee); err != nil {
			return err
		}
	}

	rp := &RedPacket{
		Creator:         creator.Key,
		ID:              args.ID,
		TotalAmount:     args.TotalAmount,
		RemainingAmount: args.TotalAmount,
		NumRecipients:   args.NumRecipients,
		NumClaimed:      0,
		SplitMode:       args.SplitMode,
		Bump:            args.RPBump,
		VaultBump:       vaultBump,
		TokenType:       args.TokenType,
		ExpiresAt:       args.ExpiresAt,
		Amounts:         amounts,
		Claimers:        make([]solana.PublicKey, args.NumRecipients),
	}
	redPacketInfo.Data = rp.Marshal()
	return nil
}
