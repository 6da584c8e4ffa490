package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Mazuh/bugginho-atm/src/internal/domain"
	"github.com/Mazuh/bugginho-atm/src/internal/logger"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"branchId":  account.BranchID(),
		"accountId": account.AccountID(),
	})

	const query = `
INSERT INTO accounts (
	branch_id,
	account_id,
	credential_hash,
	balance
) VALUES ($1, $2, $3, $4)
RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.BranchID(),
		account.AccountID(),
		account.CredentialHash(),
		account.Balance(),
	).Scan(&id); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"branchId":  account.BranchID(),
			"accountId": account.AccountID(),
		})
		return nil, fmt.Errorf("create account: %w", err)
	}

	return domain.LoadAccount(
		id,
		account.BranchID(),
		account.AccountID(),
		account.CredentialHash(),
		account.Balance(),
	), nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]*domain.Account, error) {
	const query = `
SELECT id, branch_id, account_id, credential_hash, balance
FROM accounts
ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("account repository get all failed", err, nil)
		return nil, fmt.Errorf("get all accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var (
			id             int64
			branchID       string
			accountID      string
			credentialHash string
			balance        decimal.Decimal
		)
		if err := rows.Scan(&id, &branchID, &accountID, &credentialHash, &balance); err != nil {
			logger.Error("account repository scan failed", err, nil)
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, domain.LoadAccount(id, branchID, accountID, credentialHash, balance))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = $2,
    updated_at = NOW()
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, balance)
	if err != nil {
		logger.Error("account repository update balance failed", err, logger.Fields{
			"accountRowId": id,
		})
		return fmt.Errorf("update account balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account balance rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM accounts`).Scan(&count); err != nil {
		logger.Error("account repository count failed", err, nil)
		return 0, fmt.Errorf("count accounts: %w", err)
	}

	return count, nil
}
