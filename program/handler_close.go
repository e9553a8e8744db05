package program

// handleClose returns any unclaimed remainder to the creator and tears
// down the RedPacket and Vault accounts, reclaiming their rent.
func handleClose(ledger *Ledger, accounts []*AccountInfo, data []byte) error {
	args, err := DecodeCloseArgs(data)
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

	creator := accounts[0]
	redPacketInfo := accounts[1]
	vaultInfo := accounts[2]

	if !creator.IsSigner {
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
	if !rp.Creator.Equals(creator.Key) {
		return ErrNotCreator
	}
	fullyClaimed := rp.NumClaimed == rp.NumRecipients
	expired := ledger.UnixTimestamp >= rp.ExpiresAt
	if !fullyClaimed && !expired {
		return ErrNotClosable
	}
	if err := checkPDA(vaultInfo.Key, VaultSignerSeeds(rp.Creator, rp.ID), rp.VaultBump); err != nil {
		return err
	}

	switch args.TokenType {
	case TokenTypeSOL:
		if rp.RemainingAmount > 0 {
			if err := MoveSOLProgramOwned(ledger, vaultInfo.Key, creator.Key, rp.RemainingAmount, true); err != nil {
				return err
			}
		}
		if err := ledger.CloseAccount(vaultInfo.Key, creator.Key); err != nil {
			return err
		}

	case TokenTypeSPL:
		if len(accounts) < 5 {
			return ErrNotEnoughAccounts
		}
		creatorTokenAccount := accounts[3]
		tokenProgram := accounts[4]
		if err := checkProgramID(tokenProgram.Key, TokenProgramID, ErrInvalidTokenProgram); err != nil {
			return err
		}
		if rp.RemainingAmount > 0 {
			if err := MoveSPL(ledger, vaultInfo.Key, creatorTokenAccount.Key, vaultInfo.Key, rp.RemainingAmount); err != nil {
				return err
			}
		}
		if err := CloseSPLTokenAccount(ledger, vaultInfo.Key, creator.Key, vaultInfo.Key); err != nil {
			return err
		}

	default:
		return ErrInvalidTokenType
	}

	return ledger.CloseAccount(redPacketInfo.Key, creator.Key)
}
