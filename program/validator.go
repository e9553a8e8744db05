package program

import "github.com/gagliardetto/solana-go"

// checkPDA verifies a supplied address matches the PDA derived from seeds
// with the supplied bump, failing InvalidPDA otherwise. Claim and Close call
// this for the vault account, with the bump stored in the red packet: the
// defense against a forged vault address being substituted for the real one.
func checkPDA(supplied solana.PublicKey, seeds [][]byte, bump uint8) error {
	seedsWithBump := append(append([][]byte{}, seeds...), []byte{bump})
	derived, err := solana.CreateProgramAddress(seedsWithBump, ProgramID)
	if err != nil || !derived.Equals(supplied) {
		return ErrInvalidPDA
	}
	return nil
}

// checkCanonicalPDA derives the canonical PDA (via FindProgramAddress) and
// requires both the supplied address and the supplied bump to match it
// exactly: the stricter check Create and InitTreasury use when minting a
// brand-new PDA, versus checkPDA's "does this bump produce this address"
// check used once a bump is already stored on-chain.
func checkCanonicalPDA(supplied solana.PublicKey, seeds [][]byte, suppliedBump uint8) error {
	derived, canonicalBump, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil || !derived.Equals(supplied) || canonicalBump != suppliedBump {
		return ErrInvalidPDA
	}
	return nil
}

// checkProgramID validates an attacker-supplied program-id account against
// the one known id it is allowed to be.
func checkProgramID(supplied, want solana.PublicKey, onMismatch Err) error {
	if !supplied.Equals(want) {
		return onMismatch
	}
	return nil
}
