package program

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// idLEBytes renders a creator-chosen nonce as 8 little-endian bytes for use
// as a PDA seed component.
func idLEBytes(id uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, id)
	return b
}

// DeriveRedPacketPDA derives the ["redpacket", creator, id_le] address.
func DeriveRedPacketPDA(creator solana.PublicKey, id uint64) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{SeedRedPacket, creator.Bytes(), idLEBytes(id)},
		ProgramID,
	)
}

// DeriveVaultPDA derives the ["vault", creator, id_le] address.
func DeriveVaultPDA(creator solana.PublicKey, id uint64) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{SeedVault, creator.Bytes(), idLEBytes(id)},
		ProgramID,
	)
}

// mintSeed returns the mint address to use in treasury PDA seeds: the
// sentinel for native SOL, the actual mint otherwise.
func mintSeed(tokenType TokenType, mint solana.PublicKey) []byte {
	if tokenType == TokenTypeSOL {
		return SolMintSentinel.Bytes()
	}
	return mint.Bytes()
}

// DeriveTreasuryPDA derives the ["treasury", mint-or-sentinel] address.
func DeriveTreasuryPDA(tokenType TokenType, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{SeedTreasury, mintSeed(tokenType, mint)},
		ProgramID,
	)
}

// DeriveTreasuryVaultPDA derives the ["treasury_vault", mint] address. It is
// only meaningful for SPL treasuries; callers never derive it for native SOL.
func DeriveTreasuryVaultPDA(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{SeedTreasuryVault, mint.Bytes()},
		ProgramID,
	)
}

// VaultSignerSeeds returns the seeds (without the bump) a signed
// cross-program invocation uses to assert the vault PDA's authority. The
// caller appends the canonical bump as a final single-byte seed.
func VaultSignerSeeds(creator solana.PublicKey, id uint64) [][]byte {
	return [][]byte{SeedVault, creator.Bytes(), idLEBytes(id)}
}

// TreasurySignerSeeds returns the seeds a signed CPI uses to assert the
// treasury PDA's authority over its treasury vault.
func TreasurySignerSeeds(tokenType TokenType, mint solana.PublicKey) [][]byte {
	return [][]byte{SeedTreasury, mintSeed(tokenType, mint)}
}
