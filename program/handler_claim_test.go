package program

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func createSOLRedPacket(t *testing.T, ledger *Ledger, creator solana.PublicKey, id uint64, total uint64, numRecipients uint8, splitMode SplitMode, expiresAt int64, amounts []uint64) (redPacketKey, vaultKey solana.PublicKey) {
	t.Helper()
	redPacketKey, rpBump, err := DeriveRedPacketPDA(creator, id)
	require.NoError(t, err)
	vaultKey, vaultBump, err := DeriveVaultPDA(creator, id)
	require.NoError(t, err)
	treasuryKey, _, err := DeriveTreasuryPDA(TokenTypeSOL, SolMintSentinel)
	require.NoError(t, err)

	accounts := []*AccountInfo{
		placeholder(creator, true, true),
		placeholder(redPacketKey, false, true),
		placeholder(vaultKey, false, true),
		mustAccount(ledger, treasuryKey),
		placeholder(SystemProgramID, false, false),
	}
	data := encodeCreate(TokenTypeSOL, id, total, numRecipients, splitMode, expiresAt, rpBump, vaultBump, amounts)
	require.NoError(t, Dispatch(ledger, accounts, data))
	return redPacketKey, vaultKey
}

// TestClaim_SequentialAndDoubleClaim mirrors scenario 1 and scenario 7:
// each recipient lands in the next sequential slot, and re-claiming fails
// AlreadyClaimed without moving more value.
func TestClaim_SequentialAndDoubleClaim(t *testing.T) {
	ledger := newTestLedger(1_000)
	setupSOLTreasury(t, ledger)
	creator, _ := newSigner(ledger, 1_000_000_000)
	const id, total = uint64(1), uint64(900_000)

	redPacketKey, vaultKey := createSOLRedPacket(t, ledger, creator, id, total, 3, SplitModeEven, 1_000_000, nil)

	alice, _ := newSigner(ledger, 0)
	bob, _ := newSigner(ledger, 0)
	carol, _ := newSigner(ledger, 0)

	claim := func(claimer solana.PublicKey) error {
		accounts := []*AccountInfo{
			placeholder(claimer, true, true),
			mustAccount(ledger, redPacketKey),
			mustAccount(ledger, vaultKey),
		}
		return Dispatch(ledger, accounts, encodeClaim(TokenTypeSOL))
	}

	require.NoError(t, claim(alice))
	require.Equal(t, uint64(300_000), mustAccount(ledger, alice).Lamports)

	err := claim(alice)
	require.ErrorIs(t, err, ErrAlreadyClaimed)
	require.Equal(t, uint64(300_000), mustAccount(ledger, alice).Lamports)

	require.NoError(t, claim(bob))
	require.NoError(t, claim(carol))

	rp, err := UnmarshalRedPacket(mustAccount(ledger, redPacketKey).Data)
	require.NoError(t, err)
	require.Equal(t, uint8(3), rp.NumClaimed)
	require.Equal(t, uint64(0), rp.RemainingAmount)

	require.True(t, rp.HasClaimed(alice))
	require.True(t, rp.HasClaimed(bob))
	require.True(t, rp.HasClaimed(carol))
}

func TestClaim_RedPacketFull(t *testing.T) {
	ledger := newTestLedger(1_000)
	setupSOLTreasury(t, ledger)
	creator, _ := newSigner(ledger, 1_000_000_000)
	redPacketKey, vaultKey := createSOLRedPacket(t, ledger, creator, 1, 100, 1, SplitModeEven, 1_000_000, nil)

	alice, _ := newSigner(ledger, 0)
	bob, _ := newSigner(ledger, 0)

	claim := func(claimer solana.PublicKey) error {
		accounts := []*AccountInfo{
			placeholder(claimer, true, true),
			mustAccount(ledger, redPacketKey),
			mustAccount(ledger, vaultKey),
		}
		return Dispatch(ledger, accounts, encodeClaim(TokenTypeSOL))
	}

	require.NoError(t, claim(alice))
	require.ErrorIs(t, claim(bob), ErrRedPacketFull)
}

// TestClaim_Expired mirrors scenario 4: a claim attempted after the
// expiry timestamp has passed must fail even though unclaimed slots
// remain.
func TestClaim_Expired(t *testing.T) {
	ledger := newTestLedger(1_000)
	setupSOLTreasury(t, ledger)
	creator, _ := newSigner(ledger, 1_000_000_000)
	redPacketKey, vaultKey := createSOLRedPacket(t, ledger, creator, 1, 900, 3, SplitModeEven, 1_030, nil)

	alice, _ := newSigner(ledger, 0)
	accounts := []*AccountInfo{
		placeholder(alice, true, true),
		mustAccount(ledger, redPacketKey),
		mustAccount(ledger, vaultKey),
	}
	require.NoError(t, Dispatch(ledger, accounts, encodeClaim(TokenTypeSOL)))

	ledger.UnixTimestamp = 1_100 // past expires_at

	bob, _ := newSigner(ledger, 0)
	bobAccounts := []*AccountInfo{
		placeholder(bob, true, true),
		mustAccount(ledger, redPacketKey),
		mustAccount(ledger, vaultKey),
	}
	err := Dispatch(ledger, bobAccounts, encodeClaim(TokenTypeSOL))
	require.ErrorIs(t, err, ErrExpired)
}
