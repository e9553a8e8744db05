// Package client is an off-chain SDK for the red packet program: it builds
// unsigned transactions for each instruction, derives the PDAs a caller
// needs to supply, and turns raw account bytes and program errors back
// into typed Go values. It never touches the simulated Ledger directly;
// that lives entirely in package program, so this package is what a real
// wallet-integrated caller would import.
package client

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"redpacket/program"
)

// Client wraps an RPC endpoint bound to a specific deployment of the
// program.
type Client struct {
	RPC       *rpc.Client
	ProgramID solana.PublicKey
}

// NewClient dials rpcURL and binds the client to programID.
func NewClient(rpcURL string, programID solana.PublicKey) *Client {
	return &Client{
		RPC:       rpc.New(rpcURL),
		ProgramID: programID,
	}
}

// CreateTransaction builds an unsigned, base64-encoded transaction
// wrapping a single instruction, paid for by payer.
func (c *Client) CreateTransaction(ctx context.Context, ix solana.Instruction, payer solana.PublicKey) (string, error) {
	return c.CreateTransactionWithInstructions(ctx, []solana.Instruction{ix}, payer)
}

// CreateTransactionWithInstructions builds an unsigned, base64-encoded
// transaction wrapping one or more instructions against the latest
// finalized blockhash.
func (c *Client) CreateTransactionWithInstructions(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey) (string, error) {
	recent, err := c.RPC.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return "", fmt.Errorf("get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, recent.Value.Blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return "", fmt.Errorf("build transaction: %w", err)
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("serialize transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// FetchRedPacket retrieves and decodes a red packet account.
func (c *Client) FetchRedPacket(ctx context.Context, addr solana.PublicKey) (*program.RedPacket, error) {
	info, err := c.RPC.GetAccountInfo(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}
	if info == nil || info.Value == nil {
		return nil, fmt.Errorf("account %s does not exist", addr)
	}
	return program.UnmarshalRedPacket(info.Value.Data.GetBinary())
}

// FetchTreasury retrieves and decodes a treasury account.
func (c *Client) FetchTreasury(ctx context.Context, addr solana.PublicKey) (*program.Treasury, error) {
	info, err := c.RPC.GetAccountInfo(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}
	if info == nil || info.Value == nil {
		return nil, fmt.Errorf("account %s does not exist", addr)
	}
	return program.UnmarshalTreasury(info.Value.Data.GetBinary())
}
