package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetAll(ctx context.Context) ([]*Account, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	Count(ctx context.Context) (int64, error)
}

type HistoryRepository interface {
	Create(ctx context.Context, ownerID int64, registerText string) error
	GetByOwnerID(ctx context.Context, ownerID int64) ([]string, error)
}
