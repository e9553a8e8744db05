package program

// Dispatch is the single entry point a host chain (or the in-process
// simulator) calls for every instruction. It reads the one-byte
// discriminator at data[0] and routes to the matching handler; no
// discriminator falls through to another, and an empty or out-of-range
// byte rejects the instruction before any account is touched.
func Dispatch(ledger *Ledger, accounts []*AccountInfo, data []byte) error {
	if len(data) == 0 {
		return ErrInvalidDiscriminator
	}

	switch data[0] {
	case InsCreate:
		return handleCreate(ledger, accounts, data[1:])
	case InsClaim:
		return handleClaim(ledger, accounts, data[1:])
	case InsClose:
		return handleClose(ledger, accounts, data[1:])
	case InsInitTreasury:
		return handleInitTreasury(ledger, accounts, data[1:])
	case InsWithdrawFees:
		return handleWithdrawFees(ledger, accounts, data[1:])
	default:
		return ErrInvalidDiscriminator
	}
}
