package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Mazuh/bugginho-atm/src/internal/adapter/terminal/models"
	"github.com/Mazuh/bugginho-atm/src/internal/domain"
	"github.com/Mazuh/bugginho-atm/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newTestTeller(t *testing.T) (*services.TellerService, *memoryHistoryRepo) {
	t.Helper()
	store, _, historyRepo := newTestStore(t)
	return services.NewTellerService(store), historyRepo
}

func TestTellerServiceLoginValidationError(t *testing.T) {
	teller, _ := newTestTeller(t)

	_, err := teller.Login(models.LoginRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty login request")
	}
}

func TestTellerServiceLoginWrongPassword(t *testing.T) {
	teller, _ := newTestTeller(t)

	resp, err := teller.Login(models.LoginRequest{BranchID: "001", AccountID: "1234-5", Password: "nope"})
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
	if resp.Success {
		t.Fatal("expected unsuccessful response")
	}
}

func TestTellerServiceLoginUnknownAccount(t *testing.T) {
	teller, _ := newTestTeller(t)

	_, err := teller.Login(models.LoginRequest{BranchID: "001", AccountID: "0000-0", Password: "pass"})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}

func TestTellerServiceLoginSuccess(t *testing.T) {
	teller, _ := newTestTeller(t)

	resp, err := teller.Login(models.LoginRequest{BranchID: "001", AccountID: "1234-5", Password: "pass"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
}

func TestTellerServiceBalanceNeedsNoAuthentication(t *testing.T) {
	teller, _ := newTestTeller(t)

	resp, err := teller.Balance(models.AccountRef{BranchID: "001", AccountID: "1234-5"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || resp.Data.Balance != "500.00" {
		t.Fatalf("expected balance 500.00, got %+v", resp.Data)
	}
}

func TestTellerServiceDepositIntoOtherAccount(t *testing.T) {
	teller, _ := newTestTeller(t)

	resp, err := teller.Deposit(models.DepositRequest{
		BranchID:        "001",
		AccountID:       "1234-5",
		Amount:          decimal.NewFromInt(50),
		TargetBranchID:  "001",
		TargetAccountID: "6789-0",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || resp.Data.CreditedAccountID != "6789-0" {
		t.Fatalf("expected credit on target account, got %+v", resp.Data)
	}

	balance, err := teller.Balance(models.AccountRef{BranchID: "001", AccountID: "6789-0"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if balance.Data.Balance != "150.00" {
		t.Fatalf("expected target balance 150.00, got %s", balance.Data.Balance)
	}

	statement, err := teller.Statement(models.AccountRef{BranchID: "001", AccountID: "1234-5"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(statement.Data.Entries) != 2 {
		t.Fatalf("expected two initiator statement entries, got %d", len(statement.Data.Entries))
	}
}

func TestTellerServiceTransferRequiresAuthentication(t *testing.T) {
	teller, _ := newTestTeller(t)

	_, err := teller.Transfer(models.TransferRequest{
		BranchID:        "001",
		AccountID:       "1234-5",
		Amount:          decimal.NewFromInt(50),
		TargetBranchID:  "001",
		TargetAccountID: "6789-0",
	})
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
}

func TestTellerServiceTransferInsufficientFunds(t *testing.T) {
	teller, _ := newTestTeller(t)

	if _, err := teller.Login(models.LoginRequest{BranchID: "001", AccountID: "1234-5", Password: "pass"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	_, err := teller.Transfer(models.TransferRequest{
		BranchID:        "001",
		AccountID:       "1234-5",
		Amount:          decimal.NewFromInt(9999),
		TargetBranchID:  "001",
		TargetAccountID: "6789-0",
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
}

func TestTellerServiceWithdrawalOptions(t *testing.T) {
	teller, _ := newTestTeller(t)

	resp, err := teller.WithdrawalOptions(models.WithdrawalOptionsRequest{Amount: 220})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(resp.Data.Options) != 3 {
		t.Fatalf("expected three options for 220, got %+v", resp.Data.Options)
	}

	_, err = teller.WithdrawalOptions(models.WithdrawalOptionsRequest{Amount: 1010})
	if !errors.Is(err, domain.ErrWithdrawalLimitExceeded) {
		t.Fatalf("expected limit exceeded for 1010, got %v", err)
	}

	_, err = teller.WithdrawalOptions(models.WithdrawalOptionsRequest{Amount: 999})
	if !errors.Is(err, domain.ErrDenominationInfeasible) {
		t.Fatalf("expected infeasible for 999, got %v", err)
	}
}

func TestTellerServiceWithdrawFlow(t *testing.T) {
	teller, _ := newTestTeller(t)

	if _, err := teller.Login(models.LoginRequest{BranchID: "001", AccountID: "1234-5", Password: "pass"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	resp, err := teller.Withdraw(models.WithdrawRequest{
		BranchID:  "001",
		AccountID: "1234-5",
		Hundreds:  4,
		Fifties:   1,
		Twenties:  2,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.Amount != "490.00" || resp.Data.NewBalance != "10.00" {
		t.Fatalf("expected 490.00 withdrawn leaving 10.00, got %+v", resp.Data)
	}

	_, err = teller.Withdraw(models.WithdrawRequest{
		BranchID:  "001",
		AccountID: "1234-5",
		Hundreds:  11,
	})
	if !errors.Is(err, domain.ErrWithdrawalLimitExceeded) {
		t.Fatalf("expected limit exceeded, got %v", err)
	}

	_, err = teller.Withdraw(models.WithdrawRequest{
		BranchID:  "001",
		AccountID: "1234-5",
		Hundreds:  1,
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
}

func TestTellerServiceWithdrawRejectsNegativeBillCounts(t *testing.T) {
	teller, _ := newTestTeller(t)

	if _, err := teller.Login(models.LoginRequest{BranchID: "001", AccountID: "1234-5", Password: "pass"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	resp, err := teller.Withdraw(models.WithdrawRequest{
		BranchID:  "001",
		AccountID: "1234-5",
		Hundreds:  -1,
		Twenties:  6,
	})
	if err == nil {
		t.Fatal("expected validation error for negative bill count")
	}
	if resp.Success {
		t.Fatal("expected unsuccessful response")
	}
	if services.IsBusinessError(err) {
		t.Fatalf("expected a validation error, not a business rejection: %v", err)
	}

	balance, _ := teller.Balance(models.AccountRef{BranchID: "001", AccountID: "1234-5"})
	if balance.Data.Balance != "500.00" {
		t.Fatalf("expected balance untouched, got %s", balance.Data.Balance)
	}
}

func TestTellerServiceDepositRejectsNonPositiveAmount(t *testing.T) {
	teller, _ := newTestTeller(t)

	for _, amount := range []int64{0, -10} {
		_, err := teller.Deposit(models.DepositRequest{
			BranchID:  "001",
			AccountID: "1234-5",
			Amount:    decimal.NewFromInt(amount),
		})
		if err == nil {
			t.Fatalf("expected validation error for amount %d", amount)
		}
	}
}

func TestTellerServiceWithdrawalOptionsRejectNegativeAmount(t *testing.T) {
	teller, _ := newTestTeller(t)

	_, err := teller.WithdrawalOptions(models.WithdrawalOptionsRequest{Amount: -20})
	if err == nil {
		t.Fatal("expected validation error for negative amount")
	}
}

func TestTellerServiceSavePersistsHistoryOnce(t *testing.T) {
	teller, historyRepo := newTestTeller(t)
	ctx := context.Background()

	if _, err := teller.Deposit(models.DepositRequest{
		BranchID:  "001",
		AccountID: "1234-5",
		Amount:    decimal.NewFromInt(25),
	}); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	if _, err := teller.Save(ctx); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}
	if _, err := teller.Save(ctx); err != nil {
		t.Fatalf("expected second save to succeed, got %v", err)
	}

	if got := historyRepo.total(); got != 1 {
		t.Fatalf("expected a single durable history row, got %d", got)
	}
}

func TestIsBusinessError(t *testing.T) {
	if !services.IsBusinessError(domain.ErrInsufficientFunds) {
		t.Fatal("expected insufficient funds to be a business error")
	}
	if services.IsBusinessError(errors.New("connection refused")) {
		t.Fatal("expected storage faults not to be business errors")
	}
}
