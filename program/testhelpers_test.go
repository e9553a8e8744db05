package program

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

func putU8(buf []byte, v uint8) []byte { return append(buf, v) }

func putU64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func putI64(buf []byte, v int64) []byte { return putU64(buf, uint64(v)) }

func encodeCreate(tt TokenType, id, total uint64, numRecipients uint8, splitMode SplitMode, expiresAt int64, rpBump, vaultBump uint8, amounts []uint64) []byte {
	data := []byte{InsCreate}
	data = putU8(data, uint8(tt))
	data = putU64(data, id)
	data = putU64(data, total)
	data = putU8(data, numRecipients)
	data = putU8(data, uint8(splitMode))
	data = putI64(data, expiresAt)
	data = putU8(data, rpBump)
	data = putU8(data, vaultBump)
	if splitMode == SplitModeRandom {
		for _, a := range amounts {
			data = putU64(data, a)
		}
	}
	return data
}

func encodeClaim(tt TokenType) []byte { return []byte{InsClaim, uint8(tt)} }
func encodeClose(tt TokenType) []byte { return []byte{InsClose, uint8(tt)} }

func encodeInitTreasury(tt TokenType, treasuryBump, vaultBump uint8) []byte {
	return []byte{InsInitTreasury, uint8(tt), treasuryBump, vaultBump}
}

func encodeWithdrawFees(tt TokenType, amount uint64) []byte {
	data := []byte{InsWithdrawFees, uint8(tt)}
	return putU64(data, amount)
}

func newTestLedger(now int64) *Ledger {
	return NewLedger(now)
}

func fundSOL(l *Ledger, key solana.PublicKey, lamports uint64) *AccountInfo {
	info := &AccountInfo{Key: key, Owner: SystemProgramID, Lamports: lamports, IsWritable: true}
	l.Put(info)
	return info
}

func newSigner(l *Ledger, lamports uint64) (solana.PublicKey, *AccountInfo) {
	key := solana.NewWallet().PublicKey()
	info := fundSOL(l, key, lamports)
	return key, info
}

func solanaNewKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

func mustAccount(l *Ledger, key solana.PublicKey) *AccountInfo {
	info := l.Get(key)
	if info == nil {
		panic("test expected account to exist: " + key.String())
	}
	return info
}

// seedSPLAccount seeds a token account at owner's canonical associated
// token account address for mint, so fixtures naturally satisfy the
// handlers' ATA checks (assoc_token.go) the same way a real wallet's token
// account would.
func seedSPLAccount(l *Ledger, owner, mint solana.PublicKey, amount uint64) solana.PublicKey {
	key, err := DeriveAssociatedTokenAccount(owner, mint)
	if err != nil {
		panic(err)
	}
	acct := &SPLTokenAccount{Mint: mint, Owner: owner, Amount: amount}
	l.Put(&AccountInfo{Key: key, Owner: TokenProgramID, Data: acct.Marshal(), IsWritable: true})
	return key
}

// placeholder builds an unallocated account reference: the shape handlers
// see before Create or InitTreasury has run.
func placeholder(key solana.PublicKey, isSigner, isWritable bool) *AccountInfo {
	return &AccountInfo{Key: key, IsSigner: isSigner, IsWritable: isWritable}
}
