package program

import "github.com/gagliardetto/solana-go"

// AccountInfo models the properties a host chain hands a program for each
// named account in an instruction: its owner, its lamport balance, its data
// buffer, and whether the current instruction carries it as a signer or as
// writable. Handlers only ever observe and mutate accounts through this
// type, never through a raw byte pointer, which is what lets the same
// handler code run identically against the simulated Ledger in tests and
// (conceptually) against a real account store.
type AccountInfo struct {
	Key        solana.PublicKey
	Owner      solana.PublicKey
	Lamports   uint64
	Data       []byte
	IsSigner   bool
	IsWritable bool
	Executable bool
}

// RentExemptReserve returns the minimum lamport balance this account must
// keep to remain allocated, given its current data length. The simulated
// runtime uses a flat per-byte reserve; the exact figure is irrelevant to
// the invariants this program must uphold, only its existence is.
func RentExemptReserve(dataLen int) uint64 {
	const baseLamports = 890_880
	const lamportsPerByte = 6_960
	return baseLamports + uint64(dataLen)*lamportsPerByte
}

// Ledger is an in-memory account store keyed by account public key, standing in
// for the host chain's account database. A Ledger processes exactly one
// instruction at a time to completion; it holds no locks, since there is no
// in-process concurrency to reason about; using a single Ledger from
// multiple goroutines concurrently is unsupported.
type Ledger struct {
	accounts map[solana.PublicKey]*AccountInfo
	// UnixTimestamp models the host chain's clock sysvar. Tests advance it
	// directly to exercise expiry behavior deterministically.
	UnixTimestamp int64
}

// NewLedger returns an empty ledger with the clock at the given time.
func NewLedger(unixTimestamp int64) *Ledger {
	return &Ledger{
		accounts:      make(map[solana.PublicKey]*AccountInfo),
		UnixTimestamp: unixTimestamp,
	}
}

// Put inserts or replaces an account.
func (l *Ledger) Put(info *AccountInfo) {
	l.accounts[info.Key] = info
}

// Get returns the account at key, or nil if it does not exist.
func (l *Ledger) Get(key solana.PublicKey) *AccountInfo {
	return l.accounts[key]
}

// Delete removes an account, modeling the host chain reclaiming a
// zero-lamport account at the end of a transaction.
func (l *Ledger) Delete(key solana.PublicKey) {
	delete(l.accounts, key)
}

// Exists reports whether an account has been allocated.
func (l *Ledger) Exists(key solana.PublicKey) bool {
	_, ok := l.accounts[key]
	return ok
}

// CreateAccount allocates a new account owned by owner and sized dataLen,
// funded from payer with its rent-exempt reserve plus extraLamports, modeling the
// system program's create_account instruction that handlers invoke via
// program/cpi_sol.go.
func (l *Ledger) CreateAccount(payer, newKey solana.PublicKey, owner solana.PublicKey, dataLen int, extraLamports uint64) error {
	payerInfo := l.Get(payer)
	if payerInfo == nil {
		return ErrInvalidAccountOwner
	}
	reserve := RentExemptReserve(dataLen)
	total := reserve + extraLamports
	if payerInfo.Lamports < total {
		return ErrOverflow
	}
	payerInfo.Lamports -= total
	l.Put(&AccountInfo{
		Key:        newKey,
		Owner:      owner,
		Lamports:   total,
		Data:       make([]byte, dataLen),
		IsWritable: true,
	})
	return nil
}

// CloseAccount zeroes an account's data, sends its full lamport balance to
// recipient, and reassigns ownership to the system program: the shape of
// Close for the red_packet and SOL vault, and of the SPL vault's
// token-account close via the token program.
func (l *Ledger) CloseAccount(key, recipient solana.PublicKey) error {
	info := l.Get(key)
	if info == nil {
		return ErrInvalidAccountOwner
	}
	recipientInfo := l.Get(recipient)
	if recipientInfo == nil {
		return ErrInvalidAccountOwner
	}
	recipientInfo.Lamports += info.Lamports
	info.Lamports = 0
	info.Data = nil
	info.Owner = SystemProgramID
	l.Delete(key)
	return nil
}

// AccountsFromInstruction adapts a built solana.Instruction's account-meta
// list into the []*AccountInfo a handler expects: accounts already present
// in the ledger are passed through by reference (so a handler's writes are
// visible to later instructions), accounts not yet allocated get a bare
// placeholder carrying only the signer/writable flags the instruction
// declares. This is the bridge between the wire-format instructions
// client.Build* produces and the in-memory Dispatch this package runs.
func AccountsFromInstruction(ledger *Ledger, ix solana.Instruction) ([]*AccountInfo, error) {
	metas := ix.Accounts()
	out := make([]*AccountInfo, len(metas))
	for i, m := range metas {
		if existing := ledger.Get(m.PublicKey); existing != nil {
			existing.IsSigner = m.IsSigner
			existing.IsWritable = m.IsWritable
			out[i] = existing
			continue
		}
		out[i] = &AccountInfo{
			Key:        m.PublicKey,
			Owner:      SystemProgramID,
			IsSigner:   m.IsSigner,
			IsWritable: m.IsWritable,
		}
	}
	return out, nil
}
