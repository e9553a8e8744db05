package program

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveAssociatedTokenAccount_Deterministic(t *testing.T) {
	owner := solanaNewKey()
	mint := solanaNewKey()

	a, err := DeriveAssociatedTokenAccount(owner, mint)
	require.NoError(t, err)
	b, err := DeriveAssociatedTokenAccount(owner, mint)
	require.NoError(t, err)
	require.True(t, a.Equals(b))

	other, err := DeriveAssociatedTokenAccount(solanaNewKey(), mint)
	require.NoError(t, err)
	require.False(t, a.Equals(other))
}

// TestCreate_SPL_WrongCreatorTokenAccountRejected substitutes a token
// account the creator does not own in the creator_token_account slot: the
// ATA check must reject it before any value moves.
func TestCreate_SPL_WrongCreatorTokenAccountRejected(t *testing.T) {
	ledger := newTestLedger(1_000)
	mint := solanaNewKey()
	setupSPLTreasury(t, ledger, mint)

	creator, _ := newSigner(ledger, 1_000_000_000)
	stranger, _ := newSigner(ledger, 0)
	strangerATA := seedSPLAccount(ledger, stranger, mint, 901_000)

	redPacketKey, rpBump, err := DeriveRedPacketPDA(creator, 1)
	require.NoError(t, err)
	vaultKey, vaultBump, err := DeriveVaultPDA(creator, 1)
	require.NoError(t, err)
	treasuryKey, _, err := DeriveTreasuryPDA(TokenTypeSPL, mint)
	require.NoError(t, err)
	treasuryVaultKey, _, err := DeriveTreasuryVaultPDA(mint)
	require.NoError(t, err)

	accounts := []*AccountInfo{
		placeholder(creator, true, true),
		placeholder(redPacketKey, false, true),
		placeholder(vaultKey, false, true),
		mustAccount(ledger, treasuryKey),
		placeholder(SystemProgramID, false, false),
		mustAccount(ledger, strangerATA),
		mustAccount(ledger, treasuryVaultKey),
		placeholder(mint, false, false),
		placeholder(TokenProgramID, false, false),
	}
	data := encodeCreate(TokenTypeSPL, 1, 900_000, 3, SplitModeEven, 1_000_000, rpBump, vaultBump, nil)
	err = Dispatch(ledger, accounts, data)
	require.ErrorIs(t, err, ErrInvalidTokenAccount)
	require.False(t, ledger.Exists(redPacketKey))
}

// TestClaim_SPL_WrongClaimerTokenAccountRejected substitutes a token
// account the claimer does not own in the claimer_token_account slot.
func TestClaim_SPL_WrongClaimerTokenAccountRejected(t *testing.T) {
	ledger := newTestLedger(1_000)
	mint := solanaNewKey()
	setupSPLTreasury(t, ledger, mint)

	creator, _ := newSigner(ledger, 1_000_000_000)
	creatorATA := seedSPLAccount(ledger, creator, mint, 901_000)

	redPacketKey, rpBump, err := DeriveRedPacketPDA(creator, 1)
	require.NoError(t, err)
	vaultKey, vaultBump, err := DeriveVaultPDA(creator, 1)
	require.NoError(t, err)
	treasuryKey, _, err := DeriveTreasuryPDA(TokenTypeSPL, mint)
	require.NoError(t, err)
	treasuryVaultKey, _, err := DeriveTreasuryVaultPDA(mint)
	require.NoError(t, err)

	createAccounts := []*AccountInfo{
		placeholder(creator, true, true),
		placeholder(redPacketKey, false, true),
		placeholder(vaultKey, false, true),
		mustAccount(ledger, treasuryKey),
		placeholder(SystemProgramID, false, false),
		mustAccount(ledger, creatorATA),
		mustAccount(ledger, treasuryVaultKey),
		placeholder(mint, false, false),
		placeholder(TokenProgramID, false, false),
	}
	createData := encodeCreate(TokenTypeSPL, 1, 900_000, 3, SplitModeEven, 1_000_000, rpBump, vaultBump, nil)
	require.NoError(t, Dispatch(ledger, createAccounts, createData))

	claimer, _ := newSigner(ledger, 0)
	stranger, _ := newSigner(ledger, 0)
	strangerATA := seedSPLAccount(ledger, stranger, mint, 0)

	claimAccounts := []*AccountInfo{
		placeholder(claimer, true, true),
		mustAccount(ledger, redPacketKey),
		mustAccount(ledger, vaultKey),
		mustAccount(ledger, strangerATA),
		placeholder(TokenProgramID, false, false),
	}
	err = Dispatch(ledger, claimAccounts, encodeClaim(TokenTypeSPL))
	require.ErrorIs(t, err, ErrInvalidTokenAccount)

	rp, err := UnmarshalRedPacket(mustAccount(ledger, redPacketKey).Data)
	require.NoError(t, err)
	require.Equal(t, uint8(0), rp.NumClaimed)
}

// TestWithdrawFees_SPL_WrongAdminTokenAccountRejected substitutes a token
// account the admin does not own in the admin_token_account slot.
func TestWithdrawFees_SPL_WrongAdminTokenAccountRejected(t *testing.T) {
	ledger := newTestLedger(1_000)
	mint := solanaNewKey()
	setupSPLTreasury(t, ledger, mint)

	creator, _ := newSigner(ledger, 1_000_000_000)
	creatorATA := seedSPLAccount(ledger, creator, mint, 901_000)

	redPacketKey, rpBump, err := DeriveRedPacketPDA(creator, 1)
	require.NoError(t, err)
	vaultKey, vaultBump, err := DeriveVaultPDA(creator, 1)
	require.NoError(t, err)
	treasuryKey, _, err := DeriveTreasuryPDA(TokenTypeSPL, mint)
	require.NoError(t, err)
	treasuryVaultKey, _, err := DeriveTreasuryVaultPDA(mint)
	require.NoError(t, err)

	createAccounts := []*AccountInfo{
		placeholder(creator, true, true),
		placeholder(redPacketKey, false, true),
		placeholder(vaultKey, false, true),
		mustAccount(ledger, treasuryKey),
		placeholder(SystemProgramID, false, false),
		mustAccount(ledger, creatorATA),
		mustAccount(ledger, treasuryVaultKey),
		placeholder(mint, false, false),
		placeholder(TokenProgramID, false, false),
	}
	createData := encodeCreate(TokenTypeSPL, 1, 900_000, 3, SplitModeEven, 1_000_000, rpBump, vaultBump, nil)
	require.NoError(t, Dispatch(ledger, createAccounts, createData))

	stranger, _ := newSigner(ledger, 0)
	strangerATA := seedSPLAccount(ledger, stranger, mint, 0)
	adminInfo := fundSOL(ledger, AdminAddress, 0)
	adminInfo.IsWritable = true

	withdrawAccounts := []*AccountInfo{
		placeholder(AdminAddress, true, true),
		mustAccount(ledger, strangerATA),
		mustAccount(ledger, treasuryKey),
		mustAccount(ledger, treasuryVaultKey),
		placeholder(TokenProgramID, false, false),
	}
	err = Dispatch(ledger, withdrawAccounts, encodeWithdrawFees(TokenTypeSPL, 0))
	require.ErrorIs(t, err, ErrInvalidTokenAccount)
}
