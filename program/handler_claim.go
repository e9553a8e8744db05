package program

// handleClaim pays out the next unclaimed slot to the signer and records
// them as that slot's claimer. The slot is never chosen by the caller; it
// is always the next sequential slot num_claimed, which eliminates an
// entire class of races: two concurrent claimers can never target the
// same index.
func handleClaim(ledger *Ledger, accounts []*AccountInfo, data []byte) error {
	args, err := DecodeClaimArgs(data)
	if err != nil {
		return err
	}

	minAccounts := 3
	if args.TokenType == TokenTypeSPL {
		minAccounts = 5
	}
	if len(accounts) < minAccounts {
		return ErrNotEnoughAccounts
	}

	claimer := accounts[0]
	redPacketInfo := accounts[1]
	vaultInfo := accounts[2]

	if !claimer.IsSigner {
		return ErrMissingRequiredSignature
	}
	if !redPacketInfo.IsWritable || !vaultInfo.IsWritable {
		return ErrAccountNotWritable
	}
	if err := checkProgramID(redPacketInfo.Owner, ProgramID, ErrInvalidAccountOwner); err != nil {
		return err
	}
	if len(redPacketInfo.Data) == 0 || redPacketInfo.Data[0] != DiscRedPacket {
		return ErrInvalidDiscriminator
	}

	rp, err := UnmarshalRedPacket(redPacketInfo.Data)
	if err != nil {
		return err
	}
	if rp.TokenType != args.TokenType {
		return ErrInvalidTokenType
	}
	if rp.NumClaimed >= rp.NumRecipients {
		return ErrRedPacketFull
	}
	if ledger.UnixTimestamp >= rp.ExpiresAt {
		return ErrExpired
	}
	if rp.HasClaimed(claimer.Key) {
		return ErrAlreadyClaimed
	}
	if err := checkPDA(vaultInfo.Key, VaultSignerSeeds(rp.Creator, rp.ID), rp.VaultBump); err != nil {
		return err
	}

	i := rp.NumClaimed
	amt := rp.Amounts[i]

	switch args.TokenType {
	case TokenTypeSOL:
		if err := MoveSOLProgramOwned(ledger, vaultInfo.Key, claimer.Key, amt, false); err != nil {
			return err
		}
	case TokenTypeSPL:
		if len(accounts) < 5 {
			return ErrNotEnoughAccounts
		}
		claimerTokenAccount := accounts[3]
		tokenProgram := accounts[4]
		if err := checkProgramID(tokenProgram.Key, TokenProgramID, ErrInvalidTokenProgram); err != nil {
			return err
		}
		vaultAcct, err := UnmarshalSPLTokenAccount(vaultInfo.Data)
		if err != nil {
			return err
		}
		if err := checkAssociatedTokenAccount(claimerTokenAccount.Key, claimer.Key, vaultAcct.Mint); err != nil {
			return err
		}
		if err := MoveSPL(ledger, vaultInfo.Key, claimerTokenAccount.Key, vaultInfo.Key, amt); err != nil {
			return err
		}
	default:
		return ErrInvalidTokenType
	}

	rp.Claimers[i] = claimer.Key
	rp.NumClaimed++
	rp.RemainingAmount -= amt
	redPacketInfo.Data = rp.Marshal()
	return nil
}
