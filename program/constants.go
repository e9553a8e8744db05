// Package program implements the red packet on-chain program: the
// instruction dispatcher, the five handlers, account validation, PDA
// derivation, and the dual SOL/SPL value-movement paths. It operates over
// the simulated account model in runtime.go so the exact handler logic a
// BPF loader would run can be exercised and tested without a live
// validator.
package program

import "github.com/gagliardetto/solana-go"

// ProgramID is the fixed on-chain address of this program.
var ProgramID = solana.MustPublicKeyFromBase58("RPktAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")

// AdminAddress is the sole administrator permitted to withdraw accumulated
// protocol fees. Fixed at compile time; there is no governance layer or
// multisig handoff.
var AdminAddress = solana.MustPublicKeyFromBase58("4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU")

// SystemProgramID and TokenProgramID are the only external program ids this
// program ever invokes or validates against.
var (
	SystemProgramID = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
	TokenProgramID  = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
)

// SolMintSentinel is 32 bytes of 0xFF, used wherever a mint address is
// structurally required but the value kind is native SOL.
var SolMintSentinel = func() solana.PublicKey {
	var pk solana.PublicKey
	for i := range pk {
		pk[i] = 0xFF
	}
	return pk
}()

// PDA seed prefixes (program-scoped).
var (
	SeedRedPacket     = []byte("redpacket")
	SeedVault         = []byte("vault")
	SeedTreasury      = []byte("treasury")
	SeedTreasuryVault = []byte("treasury_vault")
)

// Discriminators tag persistent account kinds at byte offset 0.
const (
	DiscRedPacket uint8 = 1
	DiscTreasury  uint8 = 2
)

// Instruction discriminators select the handler from data[0].
const (
	InsCreate       uint8 = 0
	InsClaim        uint8 = 1
	InsClose        uint8 = 2
	InsInitTreasury uint8 = 3
	InsWithdrawFees uint8 = 4
)

// TokenType selects which value-movement path a handler takes.
type TokenType uint8

const (
	TokenTypeSPL TokenType = 0
	TokenTypeSOL TokenType = 1
)

// SplitMode selects how a red packet's per-slot amounts were computed.
type SplitMode uint8

const (
	SplitModeEven   SplitMode = 0
	SplitModeRandom SplitMode = 1
)

// Fee parameters, fixed at compile time.
const (
	FeeRateBasisPoints = 10
	FeeDenominator     = 10_000
	MinFeeUnits        = 1
	MaxRecipients      = 20
)

// RedPacketBaseSize is the size of a RedPacket account body excluding the
// per-slot amounts and claimers arrays (71 bytes fixed header).
const RedPacketBaseSize = 71

// BytesPerSlot is the per-recipient storage cost: one u64 amount plus one
// 32-byte claimer address.
const BytesPerSlot = 8 + 32

// TreasurySize is the fixed size of a Treasury account body.
const TreasurySize = 43

// RedPacketSize returns the exact account size for N recipients.
func RedPacketSize(numRecipients uint8) uint64 {
	return RedPacketBaseSize + uint64(numRecipients)*BytesPerSlot
}
