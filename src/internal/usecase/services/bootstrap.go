package services

import (
	"context"
	"fmt"

	"github.com/Mazuh/bugginho-atm/src/internal/domain"
	"github.com/Mazuh/bugginho-atm/src/internal/logger"
	"github.com/shopspring/decimal"
)

// Install-time account set. Accounts are created once here; there is no
// self-service signup.
var seedAccounts = []struct {
	BranchID  string
	AccountID string
	Password  string
	Balance   int64
}{
	{BranchID: "001", AccountID: "1234-5", Password: "pass", Balance: 1500},
	{BranchID: "001", AccountID: "6789-0", Password: "pass1", Balance: 300},
	{BranchID: "001", AccountID: "5555-1", Password: "pass2", Balance: 0},
}

// SeedAccounts inserts the fixed seed set with pre-hashed credentials and
// baseline balances, only when the store holds no accounts yet. Safe to run
// on every bootstrap.
func SeedAccounts(ctx context.Context, accountRepo domain.AccountRepository) error {
	count, err := accountRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("check existing accounts: %w", err)
	}
	if count > 0 {
		logger.Info("ledger seed skipped, accounts already present", logger.Fields{
			"accounts": count,
		})
		return nil
	}

	for _, seed := range seedAccounts {
		account := domain.NewAccount(
			seed.BranchID,
			seed.AccountID,
			domain.HashCredential(seed.Password),
			decimal.NewFromInt(seed.Balance),
		)
		if _, err := accountRepo.Create(ctx, account); err != nil {
			return fmt.Errorf("seed account %s/%s: %w", seed.AccountID, seed.BranchID, err)
		}
	}

	logger.Info("ledger seeded", logger.Fields{
		"accounts": len(seedAccounts),
	})
	return nil
}
