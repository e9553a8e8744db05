// Command redpacketsim drives the red packet program's handlers through a
// handful of representative scenarios against the in-memory ledger. It is
// not an external interface to the program (the program has none), only
// a development aid for exercising every instruction end to end.
package main

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"redpacket/client"
	"redpacket/program"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("red packet simulator starting")

	if err := runSOLScenario(logger); err != nil {
		logger.Fatal("sol scenario failed", zap.Error(err))
	}
	if err := runSPLScenario(logger); err != nil {
		logger.Fatal("spl scenario failed", zap.Error(err))
	}

	logger.Info("all scenarios completed")
}

func fundWallet(ledger *program.Ledger, key solana.PublicKey, lamports uint64) {
	ledger.Put(&program.AccountInfo{
		Key:        key,
		Owner:      program.SystemProgramID,
		Lamports:   lamports,
		IsWritable: true,
	})
}

func dispatch(logger *zap.Logger, ledger *program.Ledger, label string, ix solana.Instruction) error {
	accounts, err := program.AccountsFromInstruction(ledger, ix)
	if err != nil {
		return err
	}
	data, err := ix.Data()
	if err != nil {
		return err
	}
	if err := program.Dispatch(ledger, accounts, data); err != nil {
		logger.Error("instruction rejected", zap.String("instruction", label), zap.Error(err),
			zap.String("description", client.DescribeProgramError(err)))
		return err
	}
	logger.Info("instruction applied", zap.String("instruction", label))
	return nil
}

// runSOLScenario walks InitTreasury -> Create -> Claim -> (failed re-claim)
// -> Claim -> Close for a 2-recipient native-SOL red packet, matching the
// shape of scenario 7 in
// the program's testable-property list: a double claim after a successful
// claim must fail without moving any further lamports.
func runSOLScenario(logger *zap.Logger) error {
	ledger := program.NewLedger(1_000)
	programID := program.ProgramID

	creator := solana.NewWallet().PublicKey()
	alice := solana.NewWallet().PublicKey()
	bob := solana.NewWallet().PublicKey()

	fundWallet(ledger, creator, 1_000_000_000)
	fundWallet(ledger, alice, 0)
	fundWallet(ledger, bob, 0)
	fundWallet(ledger, program.AdminAddress, 0)

	initTreasuryIx, err := client.BuildInitTreasuryInstruction(programID, client.InitTreasuryParams{
		Payer:     creator,
		TokenType: program.TokenTypeSOL,
	})
	if err != nil {
		return err
	}
	if err := dispatch(logger, ledger, "init_treasury(sol)", initTreasuryIx); err != nil {
		return err
	}

	createIx, err := client.BuildCreateInstruction(programID, client.CreateParams{
		Creator:       creator,
		TokenType:     program.TokenTypeSOL,
		ID:            1,
		TotalAmount:   1_000_000,
		NumRecipients: 2,
		SplitMode:     program.SplitModeEven,
		ExpiresAt:     1_000_000,
	})
	if err != nil {
		return err
	}
	if err := dispatch(logger, ledger, "create(sol)", createIx); err != nil {
		return err
	}

	claimIx, err := client.BuildClaimInstruction(programID, client.ClaimParams{
		Claimer:   alice,
		Creator:   creator,
		ID:        1,
		TokenType: program.TokenTypeSOL,
	})
	if err != nil {
		return err
	}
	if err := dispatch(logger, ledger, "claim(alice)", claimIx); err != nil {
		return err
	}

	// Second claim by the same address must fail AlreadyClaimed.
	if err := dispatch(logger, ledger, "claim(alice again)", claimIx); err == nil {
		return fmt.Errorf("expected second claim by alice to fail")
	}

	claimBobIx, err := client.BuildClaimInstruction(programID, client.ClaimParams{
		Claimer:   bob,
		Creator:   creator,
		ID:        1,
		TokenType: program.TokenTypeSOL,
	})
	if err != nil {
		return err
	}
	if err := dispatch(logger, ledger, "claim(bob)", claimBobIx); err != nil {
		return err
	}

	closeIx, err := client.BuildCloseInstruction(programID, client.CloseParams{
		Creator:   creator,
		ID:        1,
		TokenType: program.TokenTypeSOL,
	})
	if err != nil {
		return err
	}
	return dispatch(logger, ledger, "close", closeIx)
}

// runSPLScenario walks InitTreasury -> Create -> one Claim for a
// 3-recipient SPL red packet, exercising the fungible-token value-movement
// path end to end.
func runSPLScenario(logger *zap.Logger) error {
	ledger := program.NewLedger(1_000)
	programID := program.ProgramID
	mint := solana.NewWallet().PublicKey()

	creator := solana.NewWallet().PublicKey()
	alice := solana.NewWallet().PublicKey()

	fundWallet(ledger, creator, 1_000_000_000)
	fundWallet(ledger, alice, 10_000_000)
	fundWallet(ledger, program.AdminAddress, 0)

	creatorATA, err := program.DeriveAssociatedTokenAccount(creator, mint)
	if err != nil {
		return err
	}
	aliceATA, err := program.DeriveAssociatedTokenAccount(alice, mint)
	if err != nil {
		return err
	}
	seedTokenAccount(ledger, creatorATA, mint, creator, 901_000)
	seedTokenAccount(ledger, aliceATA, mint, alice, 0)

	initTreasuryIx, err := client.BuildInitTreasuryInstruction(programID, client.InitTreasuryParams{
		Payer:     creator,
		TokenType: program.TokenTypeSPL,
		Mint:      mint,
	})
	if err != nil {
		return err
	}
	if err := dispatch(logger, ledger, "init_treasury(spl)", initTreasuryIx); err != nil {
		return err
	}

	createIx, err := client.BuildCreateInstruction(programID, client.CreateParams{
		Creator:             creator,
		TokenType:           program.TokenTypeSPL,
		ID:                  1,
		TotalAmount:         900_000,
		NumRecipients:       3,
		SplitMode:           program.SplitModeEven,
		ExpiresAt:           1_000_000,
		Mint:                mint,
		CreatorTokenAccount: creatorATA,
	})
	if err != nil {
		return err
	}
	if err := dispatch(logger, ledger, "create(spl)", createIx); err != nil {
		return err
	}

	claimIx, err := client.BuildClaimInstruction(programID, client.ClaimParams{
		Claimer:             alice,
		Creator:             creator,
		ID:                  1,
		TokenType:           program.TokenTypeSPL,
		ClaimerTokenAccount: aliceATA,
	})
	if err != nil {
		return err
	}
	return dispatch(logger, ledger, "claim(spl alice)", claimIx)
}

func seedTokenAccount(ledger *program.Ledger, account, mint, owner solana.PublicKey, amount uint64) {
	acct := &program.SPLTokenAccount{Mint: mint, Owner: owner, Amount: amount}
	ledger.Put(&program.AccountInfo{
		Key:        account,
		Owner:      program.TokenProgramID,
		Data:       acct.Marshal(),
		IsWritable: true,
	})
}
