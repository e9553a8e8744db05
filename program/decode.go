package program

import "encoding/binary"

// cursor is a small truncation-safe reader over instruction data, reporting
// ErrInvalidInstructionData instead of panicking the way a bounds-unchecked
// slice index would. Every handler decodes its payload through this type
// before it touches any account.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) need(n int) error {
	if c.pos+n > len(c.data) {
		return ErrInvalidInstructionData
	}
	return nil
}

func (c *cursor) u8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) u64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.data[c.pos : c.pos+8])
	c.pos += 8
	return v, nil
}

func (c *cursor) i64() (int64, error) {
	v, err := c.u64()
	return int64(v), err
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

// CreateArgs is the decoded payload of a Create instruction.
type CreateArgs struct {
	TokenType     TokenType
	ID            uint64
	TotalAmount   uint64
	NumRecipients uint8
	SplitMode     SplitMode
	ExpiresAt     int64
	RPBump        uint8
	VaultBump     uint8
	Amounts       []uint64 // only present when SplitMode == SplitModeRandom
}

// DecodeCreateArgs decodes the bytes following the discriminator for a
// Create instruction.
func DecodeCreateArgs(data []byte) (*CreateArgs, error) {
	c := newCursor(data)
	a := &CreateArgs{}

	tt, err := c.u8()
	if err != nil {
		return nil, err
	}
	a.TokenType = TokenType(tt)

	if a.ID, err = c.u64(); err != nil {
		return nil, err
	}
	if a.TotalAmount, err = c.u64(); err != nil {
		return nil, err
	}
	if a.NumRecipients, err = c.u8(); err != nil {
		return nil, err
	}
	sm, err := c.u8()
	if err != nil {
		return nil, err
	}
	a.SplitMode = SplitMode(sm)
	if a.ExpiresAt, err = c.i64(); err != nil {
		return nil, err
	}
	if a.RPBump, err = c.u8(); err != nil {
		return nil, err
	}
	if a.VaultBump, err = c.u8(); err != nil {
		return nil, err
	}

	if a.SplitMode == SplitModeRandom {
		n := int(a.NumRecipients)
		a.Amounts = make([]uint64, n)
		for i := 0; i < n; i++ {
			v, err := c.u64()
			if err != nil {
				return nil, err
			}
			a.Amounts[i] = v
		}
	}
	return a, nil
}

// ClaimArgs is the decoded payload of a Claim instruction.
type ClaimArgs struct {
	TokenType TokenType
}

// DecodeClaimArgs decodes the bytes following the discriminator for a Claim
// instruction. Close shares the identical single-byte payload.
func DecodeClaimArgs(data []byte) (*ClaimArgs, error) {
	c := newCursor(data)
	tt, err := c.u8()
	if err != nil {
		return nil, err
	}
	return &ClaimArgs{TokenType: TokenType(tt)}, nil
}

// CloseArgs is the decoded payload of a Close instruction.
type CloseArgs struct {
	TokenType TokenType
}

// DecodeCloseArgs decodes the bytes following the discriminator for a Close
// instruction.
func DecodeCloseArgs(data []byte) (*CloseArgs, error) {
	c := newCursor(data)
	tt, err := c.u8()
	if err != nil {
		return nil, err
	}
	return &CloseArgs{TokenType: TokenType(tt)}, nil
}

// InitTreasuryArgs is the decoded payload of an InitTreasury instruction.
type InitTreasuryArgs struct {
	TokenType    TokenType
	TreasuryBump uint8
	VaultBump    uint8
}

// DecodeInitTreasuryArgs decodes the bytes following the discriminator for
// an InitTreasury instruction.
func DecodeInitTreasuryArgs(data []byte) (*InitTreasuryArgs, error) {
	c := newCursor(data)
	a := &InitTreasuryArgs{}
	tt, err := c.u8()
	if err != nil {
		return nil, err
	}
	a.TokenType = TokenType(tt)
	if a.TreasuryBump, err = c.u8(); err != nil {
		return nil, err
	}
	if a.VaultBump, err = c.u8(); err != nil {
		return nil, err
	}
	return a, nil
}

// WithdrawFeesArgs is the decoded payload of a WithdrawFees instruction.
// Amount == 0 means "withdraw everything available".
type WithdrawFeesArgs struct {
	TokenType TokenType
	Amount    uint64
}

// DecodeWithdrawFeesArgs decodes the bytes following the discriminator for
// a WithdrawFees instruction.
func DecodeWithdrawFeesArgs(data []byte) (*WithdrawFeesArgs, error) {
	c := newCursor(data)
	a := &WithdrawFeesArgs{}
	tt, err := c.u8()
	if err != nil {
		return nil, err
	}
	a.TokenType = TokenType(tt)
	if a.Amount, err = c.u64(); err != nil {
		return nil, err
	}
	return a, nil
}
