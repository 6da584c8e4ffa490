package services

import (
	"context"
	"fmt"

	"github.com/Mazuh/bugginho-atm/src/internal/domain"
	"github.com/Mazuh/bugginho-atm/src/internal/logger"
)

// LedgerStore owns the working set of accounts loaded from durable storage.
// Mutations made through the accounts are visible in memory immediately and
// reach the store only on an explicit Reconcile.
type LedgerStore struct {
	accountRepo domain.AccountRepository
	historyRepo domain.HistoryRepository
	accounts    []*domain.Account
}

func NewLedgerStore(accountRepo domain.AccountRepository, historyRepo domain.HistoryRepository) *LedgerStore {
	return &LedgerStore{
		accountRepo: accountRepo,
		historyRepo: historyRepo,
	}
}

// Load replaces the in-memory working set with the accounts and history rows
// currently in durable storage. Loaded accounts start unauthenticated.
func (s *LedgerStore) Load(ctx context.Context) error {
	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load working set: %w", err)
	}

	for _, account := range accounts {
		texts, err := s.historyRepo.GetByOwnerID(ctx, account.ID())
		if err != nil {
			return fmt.Errorf("load history for account %s/%s: %w", account.AccountID(), account.BranchID(), err)
		}
		account.AttachPersistedHistory(texts)
	}

	s.accounts = accounts
	logger.Info("ledger working set loaded", logger.Fields{
		"accounts": len(accounts),
	})
	return nil
}

// Accounts exposes the loaded working set.
func (s *LedgerStore) Accounts() []*domain.Account {
	return s.accounts
}

// FindAccount returns the unique account matching both identifiers exactly.
func (s *LedgerStore) FindAccount(branchID, accountID string) (*domain.Account, error) {
	for _, account := range s.accounts {
		if account.BranchID() == branchID && account.AccountID() == accountID {
			return account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// Reconcile flushes every account's current balance and its unsaved history
// entries to durable storage, then reloads the working set so memory reflects
// exactly what is durable. Entries are marked persisted one by one as they
// land, so a mid-flight failure never duplicates a history row on retry.
// Running it again with no intervening mutation writes no new history.
func (s *LedgerStore) Reconcile(ctx context.Context) error {
	for _, account := range s.accounts {
		if err := s.accountRepo.UpdateBalance(ctx, account.ID(), account.Balance()); err != nil {
			return fmt.Errorf("reconcile balance for account %s/%s: %w", account.AccountID(), account.BranchID(), err)
		}

		ownerID := account.ID()
		if err := account.FlushHistory(func(text string) error {
			return s.historyRepo.Create(ctx, ownerID, text)
		}); err != nil {
			return fmt.Errorf("reconcile history for account %s/%s: %w", account.AccountID(), account.BranchID(), err)
		}
	}

	logger.Info("ledger reconciled", logger.Fields{
		"accounts": len(s.accounts),
	})
	return s.Load(ctx)
}
