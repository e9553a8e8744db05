package client

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"redpacket/program"
)

// appendU8/appendU64/appendI64 grow buf with the little-endian field the
// program's decode.go cursor expects, keeping this encoder and that
// decoder in lock-step without pulling in a generic serialization library
// for a handful of fixed-width fields.
func appendU8(buf []byte, v uint8) []byte { return append(buf, v) }
func appendU64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}
func appendI64(buf []byte, v int64) []byte { return appendU64(buf, uint64(v)) }

// CreateParams describes a Create instruction before its PDAs are derived.
type CreateParams struct {
	Creator             solana.PublicKey
	TokenType           program.TokenType
	ID                  uint64
	TotalAmount         uint64
	NumRecipients       uint8
	SplitMode           program.SplitMode
	ExpiresAt           int64
	Amounts             []uint64 // required when SplitMode == SplitModeRandom
	Mint                solana.PublicKey
	CreatorTokenAccount solana.PublicKey
}

// BuildCreateInstruction derives the red_packet and vault PDAs for params
// and builds the Create instruction, selecting the SOL or SPL account list
// to match params.TokenType.
func BuildCreateInstruction(programID solana.PublicKey, p CreateParams) (solana.Instruction, error) {
	redPacket, rpBump, err := program.DeriveRedPacketPDA(p.Creator, p.ID)
	if err != nil {
		return nil, fmt.Errorf("derive red packet pda: %w", err)
	}
	vault, vaultBump, err := program.DeriveVaultPDA(p.Creator, p.ID)
	if err != nil {
		return nil, fmt.Errorf("derive vault pda: %w", err)
	}

	var mint solana.PublicKey
	if p.TokenType == program.TokenTypeSPL {
		mint = p.Mint
	} else {
		mint = program.SolMintSentinel
	}
	treasury, _, err := program.DeriveTreasuryPDA(p.TokenType, mint)
	if err != nil {
		return nil, fmt.Errorf("derive treasury pda: %w", err)
	}

	data := []byte{program.InsCreate}
	data = appendU8(data, uint8(p.TokenType))
	data = appendU64(data, p.ID)
	data = appendU64(data, p.TotalAmount)
	data = appendU8(data, p.NumRecipients)
	data = appendU8(data, uint8(p.SplitMode))
	data = appendI64(data, p.ExpiresAt)
	data = appendU8(data, rpBump)
	data = appendU8(data, vaultBump)
	if p.SplitMode == program.SplitModeRandom {
		if len(p.Amounts) != int(p.NumRecipients) {
			return nil, fmt.Errorf("amounts length %d does not match num_recipients %d", len(p.Amounts), p.NumRecipients)
		}
		for _, a := range p.Amounts {
			data = appendU64(data, a)
		}
	}

	metas := solana.AccountMetaSlice{
		solana.Meta(p.Creator).WRITE().SIGNER(),
		solana.Meta(redPacket).WRITE(),
		solana.Meta(vault).WRITE(),
		solana.Meta(treasury).WRITE(),
		solana.Meta(program.SystemProgramID),
	}
	if p.TokenType == program.TokenTypeSPL {
		treasuryVault, _, err := program.DeriveTreasuryVaultPDA(mint)
		if err != nil {
			return nil, fmt.Errorf("derive treasury vault pda: %w", err)
		}
		metas = append(metas,
			solana.Meta(p.CreatorTokenAccount).WRITE(),
			solana.Meta(treasuryVault).WRITE(),
			solana.Meta(mint),
			solana.Meta(program.TokenProgramID),
		)
	}

	return solana.NewInstruction(programID, metas, data), nil
}

// ClaimParams describes a Claim instruction.
type ClaimParams struct {
	Claimer             solana.PublicKey
	Creator             solana.PublicKey
	ID                  uint64
	TokenType           program.TokenType
	ClaimerTokenAccount solana.PublicKey
}

// BuildClaimInstruction derives the red_packet and vault PDAs for params
// and builds the Claim instruction.
func BuildClaimInstruction(programID solana.PublicKey, p ClaimParams) (solana.Instruction, error) {
	redPacket, _, err := program.DeriveRedPacketPDA(p.Creator, p.ID)
	if err != nil {
		return nil, fmt.Errorf("derive red packet pda: %w", err)
	}
	vault, _, err := program.DeriveVaultPDA(p.Creator, p.ID)
	if err != nil {
		return nil, fmt.Errorf("derive vault pda: %w", err)
	}

	data := []byte{program.InsClaim, uint8(p.TokenType)}

	metas := solana.AccountMetaSlice{
		solana.Meta(p.Claimer).WRITE().SIGNER(),
		solana.Meta(redPacket).WRITE(),
		solana.Meta(vault).WRITE(),
	}
	if p.TokenType == program.TokenTypeSPL {
		metas = append(metas,
			solana.Meta(p.ClaimerTokenAccount).WRITE(),
			solana.Meta(program.TokenProgramID),
		)
	}

	return solana.NewInstruction(programID, metas, data), nil
}

// CloseParams describes a Close instruction.
type CloseParams struct {
	Creator             solana.PublicKey
	ID                  uint64
	TokenType           program.TokenType
	CreatorTokenAccount solana.PublicKey
}

// BuildCloseInstruction derives the red_packet and vault PDAs for params
// and builds the Close instruction.
func BuildCloseInstruction(programID solana.PublicKey, p CloseParams) (solana.Instruction, error) {
	redPacket, _, err := program.DeriveRedPacketPDA(p.Creator, p.ID)
	if err != nil {
		return nil, fmt.Errorf("derive red packet pda: %w", err)
	}
	vault, _, err := program.DeriveVaultPDA(p.Creator, p.ID)
	if err != nil {
		return nil, fmt.Errorf("derive vault pda: %w", err)
	}

	data := []byte{program.InsClose, uint8(p.TokenType)}

	metas := solana.AccountMetaSlice{
		solana.Meta(p.Creator).WRITE().SIGNER(),
		solana.Meta(redPacket).WRITE(),
		solana.Meta(vault).WRITE(),
	}
	if p.TokenType == program.TokenTypeSPL {
		metas = append(metas,
			solana.Meta(p.CreatorTokenAccount).WRITE(),
			solana.Meta(program.TokenProgramID),
		)
	}

	return solana.NewInstruction(programID, metas, data), nil
}

// InitTreasuryParams describes an InitTreasury instruction.
type InitTreasuryParams struct {
	Payer     solana.PublicKey
	TokenType program.TokenType
	Mint      solana.PublicKey // ignored for TokenTypeSOL
}

// BuildInitTreasuryInstruction derives the treasury (and, for SPL, the
// treasury vault) PDA and builds the InitTreasury instruction.
func BuildInitTreasuryInstruction(programID solana.PublicKey, p InitTreasuryParams) (solana.Instruction, error) {
	mint := p.Mint
	if p.TokenType == program.TokenTypeSOL {
		mint = program.SolMintSentinel
	}
	treasury, treasuryBump, err := program.DeriveTreasuryPDA(p.TokenType, mint)
	if err != nil {
		return nil, fmt.Errorf("derive treasury pda: %w", err)
	}

	var vaultBump uint8
	var treasuryVault solana.PublicKey
	if p.TokenType == program.TokenTypeSPL {
		treasuryVault, vaultBump, err = program.DeriveTreasuryVaultPDA(mint)
		if err != nil {
			return nil, fmt.Errorf("derive treasury vault pda: %w", err)
		}
	}

	data := []byte{program.InsInitTreasury, uint8(p.TokenType), treasuryBump, vaultBump}

	metas := solana.AccountMetaSlice{
		solana.Meta(p.Payer).WRITE().SIGNER(),
		solana.Meta(treasury).WRITE(),
		solana.Meta(program.SystemProgramID),
	}
	if p.TokenType == program.TokenTypeSPL {
		metas = append(metas,
			solana.Meta(treasuryVault).WRITE(),
			solana.Meta(mint),
			solana.Meta(program.TokenProgramID),
		)
	}

	return solana.NewInstruction(programID, metas, data), nil
}

// WithdrawFeesParams describes a WithdrawFees instruction. Amount == 0
// withdraws everything available.
type WithdrawFeesParams struct {
	Admin             solana.PublicKey
	TokenType         program.TokenType
	Mint              solana.PublicKey // ignored for TokenTypeSOL
	Amount            uint64
	AdminTokenAccount solana.PublicKey
}

// BuildWithdrawFeesInstruction derives the treasury (and, for SPL, the
// treasury vault) PDA and builds the WithdrawFees instruction.
func BuildWithdrawFeesInstruction(programID solana.PublicKey, p WithdrawFeesParams) (solana.Instruction, error) {
	mint := p.Mint
	if p.TokenType == program.TokenTypeSOL {
		mint = program.SolMintSentinel
	}
	treasury, _, err := program.DeriveTreasuryPDA(p.TokenType, mint)
	if err != nil {
		return nil, fmt.Errorf("derive treasury pda: %w", err)
	}

	data := []byte{program.InsWithdrawFees, uint8(p.TokenType)}
	data = appendU64(data, p.Amount)

	if p.TokenType == program.TokenTypeSPL {
		treasuryVault, _, err := program.DeriveTreasuryVaultPDA(mint)
		if err != nil {
			return nil, fmt.Errorf("derive treasury vault pda: %w", err)
		}
		metas := solana.AccountMetaSlice{
			solana.Meta(p.Admin).WRITE().SIGNER(),
			solana.Meta(p.AdminTokenAccount).WRITE(),
			solana.Meta(treasury),
			solana.Meta(treasuryVault).WRITE(),
			solana.Meta(program.TokenProgramID),
		}
		return solana.NewInstruction(programID, metas, data), nil
	}

	metas := solana.AccountMetaSlice{
		solana.Meta(p.Admin).WRITE().SIGNER(),
		solana.Meta(treasury).WRITE(),
	}
	return solana.NewInstruction(programID, metas, data), nil
}
