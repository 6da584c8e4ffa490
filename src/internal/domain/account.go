package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Verbs recorded in history register texts. Statement rendering and the
// durable rows depend on these exact words, so they never change.
const (
	verbTransferred = "transferred"
	verbWithdrew    = "withdrew"
	verbReceived    = "received an amount of"
)

const historyDateLayout = "2/1/2006"

// HistoryEntry is one human-readable transaction record of an account.
// Persisted marks entries already written to durable storage; reconciliation
// flushes only the ones still pending.
type HistoryEntry struct {
	Text      string
	Persisted bool
}

// Account is a single account of the branch ledger. The (branchID, accountID)
// pair is immutable after creation and unique together. The balance never goes
// negative and is mutated only through the operations below. The authenticated
// flag is transient session state: it starts false and resets on every reload.
type Account struct {
	id             int64
	branchID       string
	accountID      string
	credentialHash string
	balance        decimal.Decimal
	history        []HistoryEntry
	authenticated  bool
}

// NewAccount builds an account that does not exist in durable storage yet,
// such as an install-time seed row.
func NewAccount(branchID, accountID, credentialHash string, balance decimal.Decimal) *Account {
	return &Account{
		branchID:       branchID,
		accountID:      accountID,
		credentialHash: credentialHash,
		balance:        balance,
	}
}

// LoadAccount rebuilds an account from its durable row.
func LoadAccount(id int64, branchID, accountID, credentialHash string, balance decimal.Decimal) *Account {
	return &Account{
		id:             id,
		branchID:       branchID,
		accountID:      accountID,
		credentialHash: credentialHash,
		balance:        balance,
	}
}

// ID is the durable row identifier, zero until the account is stored.
func (a *Account) ID() int64 { return a.id }

func (a *Account) BranchID() string { return a.branchID }

func (a *Account) AccountID() string { return a.accountID }

func (a *Account) CredentialHash() string { return a.credentialHash }

// Balance returns the current in-memory balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// History returns a copy of the transaction records, oldest first.
func (a *Account) History() []HistoryEntry {
	out := make([]HistoryEntry, len(a.history))
	copy(out, a.history)
	return out
}

// IsAuthenticated reports whether this session has logged into the account.
func (a *Account) IsAuthenticated() bool { return a.authenticated }

// Logout drops the session authentication. Idempotent.
func (a *Account) Logout() { a.authenticated = false }

// Deposit credits cash into this account, or into another account when other
// is not nil. It models a deposit slot: no authentication is required, and it
// always succeeds. Depositing into another account records the teller-slip
// pair on the initiator: the received record for the cash handed in and the
// transferred record naming the counterpart.
func (a *Account) Deposit(amount decimal.Decimal, other *Account) bool {
	if other != nil && other != a {
		other.Deposit(amount, nil)
		a.appendHistory(a.registerText(verbReceived, amount, nil))
		a.appendHistory(a.registerText(verbTransferred, amount, other))
		return true
	}

	a.balance = a.balance.Add(amount)
	a.appendHistory(a.registerText(verbReceived, amount, nil))
	return true
}

// TransferTo moves amount from this account to other. It requires an
// authenticated session and sufficient balance; otherwise it reports false
// and mutates nothing on either side.
func (a *Account) TransferTo(amount decimal.Decimal, other *Account) bool {
	if !a.authenticated || a.balance.LessThan(amount) {
		return false
	}

	a.balance = a.balance.Sub(amount)
	other.Deposit(amount, nil)
	a.appendHistory(a.registerText(verbTransferred, amount, other))
	return true
}

// Withdraw dispenses the given quantities of 100, 50 and 20 bills. The
// assembled amount must fit both the balance and the per-withdrawal ceiling,
// and the session must be authenticated; otherwise it reports false and
// mutates nothing. The bill triple itself is taken as given: callers obtain
// it from WithdrawalOptions, but only the two amount bounds are re-checked.
func (a *Account) Withdraw(hundreds, fifties, twenties int64) bool {
	amount := decimal.NewFromInt(AssembleCash(hundreds, fifties, twenties))
	if !a.authenticated || a.balance.LessThan(amount) || amount.GreaterThan(decimal.NewFromInt(WithdrawalCeiling)) {
		return false
	}

	a.balance = a.balance.Sub(amount)
	a.appendHistory(a.registerText(verbWithdrew, amount, nil))
	return true
}

// AttachPersistedHistory replaces the in-memory history with records loaded
// from durable storage, all flagged as already persisted.
func (a *Account) AttachPersistedHistory(texts []string) {
	a.history = make([]HistoryEntry, 0, len(texts))
	for _, text := range texts {
		a.history = append(a.history, HistoryEntry{Text: text, Persisted: true})
	}
}

// FlushHistory hands every unsaved history entry to save, in order, marking
// each one persisted as soon as save accepts it. A failed save stops the
// flush so the remaining entries stay pending; entries already marked are
// never handed over again.
func (a *Account) FlushHistory(save func(text string) error) error {
	for i := range a.history {
		if a.history[i].Persisted {
			continue
		}
		if err := save(a.history[i].Text); err != nil {
			return err
		}
		a.history[i].Persisted = true
	}
	return nil
}

func (a *Account) appendHistory(text string) {
	a.history = append(a.history, HistoryEntry{Text: text})
}

func (a *Account) registerText(verb string, amount decimal.Decimal, other *Account) string {
	text := fmt.Sprintf("%s - %s/%s %s R$%s",
		time.Now().Format(historyDateLayout),
		a.accountID,
		a.branchID,
		verb,
		amount.StringFixed(2),
	)
	if other != nil {
		text = fmt.Sprintf("%s to %s/%s", text, other.accountID, other.branchID)
	}
	return text
}
