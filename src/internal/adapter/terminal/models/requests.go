package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountRef identifies the session account for operations that need nothing
// else, such as balance, statement and logout.
type AccountRef struct {
	BranchID  string `json:"branchId"`
	AccountID string `json:"accountId"`
}

func (r AccountRef) Validate() error {
	var errs []string

	if strings.TrimSpace(r.BranchID) == "" {
		errs = append(errs, "branchId is required")
	}
	if strings.TrimSpace(r.AccountID) == "" {
		errs = append(errs, "accountId is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type LoginRequest struct {
	BranchID  string `json:"branchId"`
	AccountID string `json:"accountId"`
	Password  string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.BranchID) == "" {
		errs = append(errs, "branchId is required")
	}
	if strings.TrimSpace(r.AccountID) == "" {
		errs = append(errs, "accountId is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// DepositRequest credits cash into the session account, or into another
// account when both target fields are present.
type DepositRequest struct {
	BranchID        string          `json:"branchId"`
	AccountID       string          `json:"accountId"`
	Amount          decimal.Decimal `json:"amount"`
	TargetBranchID  string          `json:"targetBranchId"`
	TargetAccountID string          `json:"targetAccountId"`
}

func (r DepositRequest) HasTarget() bool {
	return strings.TrimSpace(r.TargetBranchID) != "" || strings.TrimSpace(r.TargetAccountID) != ""
}

func (r DepositRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.BranchID) == "" {
		errs = append(errs, "branchId is required")
	}
	if strings.TrimSpace(r.AccountID) == "" {
		errs = append(errs, "accountId is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if r.HasTarget() {
		if strings.TrimSpace(r.TargetBranchID) == "" || strings.TrimSpace(r.TargetAccountID) == "" {
			errs = append(errs, "targetBranchId and targetAccountId must be provided together")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferRequest struct {
	BranchID        string          `json:"branchId"`
	AccountID       string          `json:"accountId"`
	Amount          decimal.Decimal `json:"amount"`
	TargetBranchID  string          `json:"targetBranchId"`
	TargetAccountID string          `json:"targetAccountId"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.BranchID) == "" {
		errs = append(errs, "branchId is required")
	}
	if strings.TrimSpace(r.AccountID) == "" {
		errs = append(errs, "accountId is required")
	}
	if strings.TrimSpace(r.TargetBranchID) == "" {
		errs = append(errs, "targetBranchId is required")
	}
	if strings.TrimSpace(r.TargetAccountID) == "" {
		errs = append(errs, "targetAccountId is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if strings.TrimSpace(r.BranchID) == strings.TrimSpace(r.TargetBranchID) &&
		strings.TrimSpace(r.AccountID) == strings.TrimSpace(r.TargetAccountID) {
		errs = append(errs, "target account cannot be the session account")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type WithdrawalOptionsRequest struct {
	Amount int64 `json:"amount"`
}

func (r WithdrawalOptionsRequest) Validate() error {
	if r.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	return nil
}

type WithdrawRequest struct {
	BranchID  string `json:"branchId"`
	AccountID string `json:"accountId"`
	Hundreds  int64  `json:"hundreds"`
	Fifties   int64  `json:"fifties"`
	Twenties  int64  `json:"twenties"`
}

func (r WithdrawRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.BranchID) == "" {
		errs = append(errs, "branchId is required")
	}
	if strings.TrimSpace(r.AccountID) == "" {
		errs = append(errs, "accountId is required")
	}
	if r.Hundreds < 0 || r.Fifties < 0 || r.Twenties < 0 {
		errs = append(errs, "bill quantities cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
