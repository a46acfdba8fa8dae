// Package ledger owns all account and transaction state. It is purely
// in-memory: an HTTP layer (or any other transport) wraps the operation
// contract, and nothing outside this package mutates the tables.
package ledger

import (
	"sync"
	"time"

	"github.com/AmirSomo/api/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// account pairs the stored record with its own mutex so that the
// check-then-mutate sequence of Withdraw and Transfer is atomic per account.
type account struct {
	mu   sync.Mutex
	data models.Account
}

// Ledger is the aggregate owning accounts and the transaction log.
//
// Lock order is fixed: registry lock, then account locks (two accounts in
// ascending id order), then the history lock. Create and delete take the
// registry lock exclusively; every other operation holds it shared so that
// lookups never observe a half-created or half-deleted entry while still
// allowing mutations on distinct accounts to run concurrently.
type Ledger struct {
	now   func() time.Time
	newID func() string

	mu       sync.RWMutex
	accounts map[string]*account // username -> live account

	histMu  sync.RWMutex
	history map[string][]models.Transaction // account id -> records, kept after delete
}

// Option customizes a Ledger, mainly to inject a deterministic clock or id
// source in tests.
type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithIDSource(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

func New(opts ...Option) *Ledger {
	l := &Ledger{
		now:      time.Now,
		newID:    uuid.NewString,
		accounts: make(map[string]*account),
		history:  make(map[string][]models.Transaction),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateAccount registers a new account under username with the given opening
// balance and writes its creation transaction. The opening balance may be
// zero but not negative. A username freed by DeleteAccount may be reused.
func (l *Ledger) CreateAccount(username string, initialBalance decimal.Decimal) (models.Account, error) {
	if initialBalance.IsNegative() {
		return models.Account{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.accounts[username]; exists {
		return models.Account{}, ErrDuplicateAccount
	}

	acct := &account{data: models.Account{
		ID:        l.newID(),
		Username:  username,
		Balance:   initialBalance,
		CreatedAt: l.now(),
	}}
	l.accounts[username] = acct

	l.appendHistory(models.Transaction{
		ID:        l.newID(),
		AccountID: acct.data.ID,
		Type:      models.TransactionCreation,
		Amount:    initialBalance,
		Timestamp: acct.data.CreatedAt,
	})
	return acct.data, nil
}

// GetBalance returns the current balance. Read-only.
func (l *Ledger) GetBalance(username string) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acct, ok := l.accounts[username]
	if !ok {
		return decimal.Zero, ErrAccountNotFound
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	return acct.data.Balance, nil
}

// Deposit adds amount to the account and records a deposit transaction.
// Returns the resulting balance.
func (l *Ledger) Deposit(username string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	acct, ok := l.accounts[username]
	if !ok {
		return decimal.Zero, ErrAccountNotFound
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()

	acct.data.Balance = acct.data.Balance.Add(amount)
	l.appendHistory(models.Transaction{
		ID:        l.newID(),
		AccountID: acct.data.ID,
		Type:      models.TransactionDeposit,
		Amount:    amount,
		Timestamp: l.now(),
	})
	return acct.data.Balance, nil
}

// Withdraw removes amount from the account and records a withdrawal
// transaction with a negative amount. The sufficiency check and the debit
// happen under the account lock, so the balance can never go negative even
// under concurrent withdrawals.
func (l *Ledger) Withdraw(username string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	acct, ok := l.accounts[username]
	if !ok {
		return decimal.Zero, ErrAccountNotFound
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()

	if acct.data.Balance.LessThan(amount) {
		return decimal.Zero, ErrInsufficientFunds
	}
	acct.data.Balance = acct.data.Balance.Sub(amount)
	l.appendHistory(models.Transaction{
		ID:        l.newID(),
		AccountID: acct.data.ID,
		Type:      models.TransactionWithdrawal,
		Amount:    amount.Neg(),
		Timestamp: l.now(),
	})
	return acct.data.Balance, nil
}

// Transfer moves amount between two accounts as one atomic unit: both balance
// changes and both transaction legs commit together or not at all. The two
// account locks are taken in ascending id order to avoid deadlocks between
// opposite-direction transfers.
func (l *Ledger) Transfer(fromUsername, toUsername string, amount decimal.Decimal) error {
	if fromUsername == toUsername {
		return ErrSameAccount
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	from, ok := l.accounts[fromUsername]
	if !ok {
		return ErrAccountNotFound
	}
	to, ok := l.accounts[toUsername]
	if !ok {
		return ErrAccountNotFound
	}

	first, second := from, to
	if second.data.ID < first.data.ID {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if from.data.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	from.data.Balance = from.data.Balance.Sub(amount)
	to.data.Balance = to.data.Balance.Add(amount)

	now := l.now()
	l.appendHistory(
		models.Transaction{
			ID:             l.newID(),
			AccountID:      from.data.ID,
			Type:           models.TransactionTransferOut,
			Amount:         amount.Neg(),
			Timestamp:      now,
			CounterpartyID: to.data.ID,
		},
		models.Transaction{
			ID:             l.newID(),
			AccountID:      to.data.ID,
			Type:           models.TransactionTransferIn,
			Amount:         amount,
			Timestamp:      now,
			CounterpartyID: from.data.ID,
		},
	)
	return nil
}

// ListTransactions returns the account's history in creation order. The
// result is a point-in-time copy; later mutations never alter it.
func (l *Ledger) ListTransactions(username string) ([]models.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acct, ok := l.accounts[username]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return l.TransactionsByAccountID(acct.data.ID), nil
}

// TransactionsByAccountID returns the retained history for an account id,
// including records orphaned by DeleteAccount. Unknown ids yield an empty
// sequence.
func (l *Ledger) TransactionsByAccountID(accountID string) []models.Transaction {
	l.histMu.RLock()
	defer l.histMu.RUnlock()

	out := make([]models.Transaction, len(l.history[accountID]))
	copy(out, l.history[accountID])
	return out
}

// DeleteAccount removes the account from the lookup table. Its transaction
// records stay in the log; there is no cascading delete.
func (l *Ledger) DeleteAccount(username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[username]; !ok {
		return ErrAccountNotFound
	}
	delete(l.accounts, username)
	return nil
}

// GetStatement returns the account's metadata, balance and full history as a
// single consistent snapshot.
func (l *Ledger) GetStatement(username string) (models.Statement, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acct, ok := l.accounts[username]
	if !ok {
		return models.Statement{}, ErrAccountNotFound
	}

	// Holding the account lock keeps the balance and the history copy in
	// step: no mutation can append to this account's log meanwhile.
	acct.mu.Lock()
	defer acct.mu.Unlock()

	return models.Statement{
		Account:      acct.data,
		Balance:      acct.data.Balance,
		Transactions: l.TransactionsByAccountID(acct.data.ID),
	}, nil
}

// appendHistory records one or more transactions under a single history
// critical section, so both legs of a transfer become visible together. It is
// called only after the corresponding balance mutation has been applied.
func (l *Ledger) appendHistory(txs ...models.Transaction) {
	l.histMu.Lock()
	defer l.histMu.Unlock()
	for _, tx := range txs {
		l.history[tx.AccountID] = append(l.history[tx.AccountID], tx)
	}
}
