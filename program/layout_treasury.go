package program

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Treasury mirrors the on-chain byte layout exactly:
//
//	disc(1) bump(1) vault_bump(1) mint(32) sol_fees_collected(8)
type Treasury struct {
	Bump             uint8
	VaultBump        uint8
	Mint             solana.PublicKey
	SolFeesCollected uint64
}

// Marshal encodes the treasury to its exact on-chain byte layout.
func (t *Treasury) Marshal() []byte {
	buf := make([]byte, TreasurySize)
	buf[0] = DiscTreasury
	buf[1] = t.Bump
	buf[2] = t.VaultBump
	copy(buf[3:35], t.Mint.Bytes())
	binary.LittleEndian.PutUint64(buf[35:43], t.SolFeesCollected)
	return buf
}

// UnmarshalTreasury decodes a treasury account's raw bytes.
func UnmarshalTreasury(data []byte) (*Treasury, error) {
	if len(data) < TreasurySize {
		return nil, fmt.Errorf("%w: treasury data too short (%d bytes)", ErrInvalidInstructionData, len(data))
	}
	return &Treasury{
		Bump:             data[1],
		VaultBump:        data[2],
		Mint:             solana.PublicKeyFromBytes(data[3:35]),
		SolFeesCollected: binary.LittleEndian.Uint64(data[35:43]),
	}, nil
}

// IsSOL reports whether this treasury's mint field is the native-SOL
// sentinel (32 bytes of 0xFF).
func (t *Treasury) IsSOL() bool {
	return t.Mint.Equals(SolMintSentinel)
}

// ComputeFee implements the fee engine: max(1, total * rate / denominator).
func ComputeFee(total uint64) uint64 {
	fee := total * FeeRateBasisPoints / FeeDenominator
	if fee < MinFeeUnits {
		return MinFeeUnits
	}
	return fee
}
