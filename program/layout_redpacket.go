package program

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// RedPacket mirrors the on-chain byte layout exactly:
//
//	disc(1) creator(32) id(8) total_amount(8) remaining_amount(8)
//	num_recipients(1) num_claimed(1) split_mode(1) bump(1) vault_bump(1)
//	token_type(1) expires_at(8) amounts(8*N) claimers(32*N)
//
// Field order here matches the wire order; RedPacket.Marshal/Unmarshal are
// the only code paths allowed to depend on that order.
type RedPacket struct {
	Creator          solana.PublicKey
	ID               uint64
	TotalAmount      uint64
	RemainingAmount  uint64
	NumRecipients    uint8
	NumClaimed       uint8
	SplitMode        SplitMode
	Bump             uint8
	VaultBump        uint8
	TokenType        TokenType
	ExpiresAt        int64
	Amounts          []uint64
	Claimers         []solana.PublicKey
}

// Size returns the exact on-chain account size for this red packet.
func (r *RedPacket) Size() uint64 {
	return RedPacketSize(r.NumRecipients)
}

// Marshal encodes the red packet to its exact on-chain byte layout, the
// mirror image of the manual little-endian decoding below.
func (r *RedPacket) Marshal() []byte {
	n := int(r.NumRecipients)
	buf := make([]byte, RedPacketSize(r.NumRecipients))
	buf[0] = DiscRedPacket
	copy(buf[1:33], r.Creator.Bytes())
	binary.LittleEndian.PutUint64(buf[33:41], r.ID)
	binary.LittleEndian.PutUint64(buf[41:49], r.TotalAmount)
	binary.LittleEndian.PutUint64(buf[49:57], r.RemainingAmount)
	buf[57] = r.NumRecipients
	buf[58] = r.NumClaimed
	buf[59] = uint8(r.SplitMode)
	buf[60] = r.Bump
	buf[61] = r.VaultBump
	buf[62] = uint8(r.TokenType)
	binary.LittleEndian.PutUint64(buf[63:71], uint64(r.ExpiresAt))

	off := 71
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(buf[off:off+8], r.Amounts[i])
		off += 8
	}
	for i := 0; i < n; i++ {
		copy(buf[off:off+32], r.Claimers[i].Bytes())
		off += 32
	}
	return buf
}

// UnmarshalRedPacket decodes a red packet account's raw bytes. It does not
// check the discriminator; callers validate that separately as part of the
// account-validator discipline before trusting the contents.
func UnmarshalRedPacket(data []byte) (*RedPacket, error) {
	if len(data) < RedPacketBaseSize {
		return nil, fmt.Errorf("%w: red packet data too short (%d bytes)", ErrInvalidInstructionData, len(data))
	}

	r := &RedPacket{}
	r.Creator = solana.PublicKeyFromBytes(data[1:33])
	r.ID = binary.LittleEndian.Uint64(data[33:41])
	r.TotalAmount = binary.LittleEndian.Uint64(data[41:49])
	r.RemainingAmount = binary.LittleEndian.Uint64(data[49:57])
	r.NumRecipients = data[57]
	r.NumClaimed = data[58]
	r.SplitMode = SplitMode(data[59])
	r.Bump = data[60]
	r.VaultBump = data[61]
	r.TokenType = TokenType(data[62])
	r.ExpiresAt = int64(binary.LittleEndian.Uint64(data[63:71]))

	n := int(r.NumRecipients)
	want := RedPacketSize(r.NumRecipients)
	if uint64(len(data)) < want {
		return nil, fmt.Errorf("%w: red packet data too short for %d recipients", ErrInvalidInstructionData, n)
	}

	off := 71
	r.Amounts = make([]uint64, n)
	for i := 0; i < n; i++ {
		r.Amounts[i] = binary.LittleEndian.Uint64(data[off : off+8])
		off += 8
	}
	r.Claimers = make([]solana.PublicKey, n)
	for i := 0; i < n; i++ {
		r.Claimers[i] = solana.PublicKeyFromBytes(data[off : off+32])
		off += 32
	}
	return r, nil
}

// HasClaimed reports whether addr already occupies one of the filled
// slots [0, NumClaimed).
func (r *RedPacket) HasClaimed(addr solana.PublicKey) bool {
	for i := uint8(0); i < r.NumClaimed; i++ {
		if r.Claimers[i].Equals(addr) {
			return true
		}
	}
	return false
}

// EvenSplit computes the deterministic per-slot amounts for split_mode 0:
// each of the first N-1 slots gets total/N, and the
// remainder is absorbed by the last slot so sum(amounts) == total exactly.
func EvenSplit(total uint64, n uint8) []uint64 {
	amounts := make([]uint64, n)
	share := total / uint64(n)
	var allocated uint64
	for i := uint8(0); i < n-1; i++ {
		amounts[i] = share
		allocated += share
	}
	amounts[n-1] = total - allocated
	return amounts
}
