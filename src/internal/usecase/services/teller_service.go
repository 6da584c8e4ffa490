package services

import (
	"context"
	"errors"

	"github.com/Mazuh/bugginho-atm/src/internal/adapter/terminal/models"
	"github.com/Mazuh/bugginho-atm/src/internal/commons"
	"github.com/Mazuh/bugginho-atm/src/internal/domain"
	"github.com/Mazuh/bugginho-atm/src/internal/logger"
	"github.com/shopspring/decimal"
)

// TellerService is the session-facing facade over the ledger. It validates
// request models, maps domain outcomes to response envelopes and logs every
// operation with credential material masked. Deposits, balance reads and
// statements are deliberately not authentication-gated, matching the branch's
// deposit-slot behavior; only debiting operations check the session flag.
type TellerService struct {
	store *LedgerStore
}

func NewTellerService(store *LedgerStore) *TellerService {
	return &TellerService{store: store}
}

func (s *TellerService) Login(req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("teller service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoginResponse]("validation failed", err.Error()), err
	}

	account, err := s.store.FindAccount(req.BranchID, req.AccountID)
	if err != nil {
		logger.Error("teller service login account lookup failed", err, logger.Fields{
			"branchId":  req.BranchID,
			"accountId": req.AccountID,
		})
		return commons.ErrorResponse[models.LoginResponse]("Account not found"), err
	}

	if !account.Authenticate(req.Password) {
		err := domain.ErrAuthenticationFailed
		logger.Error("teller service login rejected", err, logger.Fields{
			"branchId":  req.BranchID,
			"accountId": req.AccountID,
		})
		return commons.ErrorResponse[models.LoginResponse]("Authentication failed"), err
	}

	logger.Info("teller service login success", logger.Fields{
		"branchId":  req.BranchID,
		"accountId": req.AccountID,
	})
	return commons.SuccessResponse("logged in successfully", models.LoginResponse{
		BranchID:  account.BranchID(),
		AccountID: account.AccountID(),
	}), nil
}

func (s *TellerService) Logout(req models.AccountRef) (commons.Response[models.LoginResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoginResponse]("validation failed", err.Error()), err
	}

	account, err := s.store.FindAccount(req.BranchID, req.AccountID)
	if err != nil {
		return commons.ErrorResponse[models.LoginResponse]("Account not found"), err
	}

	account.Logout()
	return commons.SuccessResponse("logged out", models.LoginResponse{
		BranchID:  account.BranchID(),
		AccountID: account.AccountID(),
	}), nil
}

func (s *TellerService) Balance(req models.AccountRef) (commons.Response[models.BalanceResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.BalanceResponse]("validation failed", err.Error()), err
	}

	account, err := s.store.FindAccount(req.BranchID, req.AccountID)
	if err != nil {
		return commons.ErrorResponse[models.BalanceResponse]("Account not found"), err
	}

	return commons.SuccessResponse("balance fetched successfully", models.BalanceResponse{
		BranchID:  account.BranchID(),
		AccountID: account.AccountID(),
		Balance:   account.Balance().StringFixed(2),
	}), nil
}

func (s *TellerService) Statement(req models.AccountRef) (commons.Response[models.StatementResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.StatementResponse]("validation failed", err.Error()), err
	}

	account, err := s.store.FindAccount(req.BranchID, req.AccountID)
	if err != nil {
		return commons.ErrorResponse[models.StatementResponse]("Account not found"), err
	}

	history := account.History()
	entries := make([]string, 0, len(history))
	for _, entry := range history {
		entries = append(entries, entry.Text)
	}

	return commons.SuccessResponse("statement fetched successfully", models.StatementResponse{
		Entries: entries,
	}), nil
}

func (s *TellerService) Deposit(req models.DepositRequest) (commons.Response[models.DepositResponse], error) {
	logger.Info("teller service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()), err
	}

	account, err := s.store.FindAccount(req.BranchID, req.AccountID)
	if err != nil {
		return commons.ErrorResponse[models.DepositResponse]("Account not found"), err
	}

	credited := account
	var target *domain.Account
	if req.HasTarget() {
		target, err = s.store.FindAccount(req.TargetBranchID, req.TargetAccountID)
		if err != nil {
			return commons.ErrorResponse[models.DepositResponse]("Target account not found"), err
		}
		credited = target
	}

	account.Deposit(req.Amount, target)

	logger.Info("teller service deposit success", logger.Fields{
		"branchId":          req.BranchID,
		"accountId":         req.AccountID,
		"creditedBranchId":  credited.BranchID(),
		"creditedAccountId": credited.AccountID(),
		"amount":            req.Amount,
	})
	return commons.SuccessResponse("deposit registered successfully", models.DepositResponse{
		CreditedBranchID:  credited.BranchID(),
		CreditedAccountID: credited.AccountID(),
		Amount:            req.Amount.StringFixed(2),
	}), nil
}

func (s *TellerService) Transfer(req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("teller service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	account, err := s.store.FindAccount(req.BranchID, req.AccountID)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("Account not found"), err
	}
	target, err := s.store.FindAccount(req.TargetBranchID, req.TargetAccountID)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("Target account not found"), err
	}

	if !account.IsAuthenticated() {
		err := domain.ErrAuthenticationFailed
		return commons.ErrorResponse[models.TransferResponse]("Authentication required"), err
	}

	if !account.TransferTo(req.Amount, target) {
		err := domain.ErrInsufficientFunds
		logger.Error("teller service transfer rejected", err, logger.Fields{
			"branchId":  req.BranchID,
			"accountId": req.AccountID,
			"amount":    req.Amount,
		})
		return commons.ErrorResponse[models.TransferResponse]("Insufficient funds"), err
	}

	logger.Info("teller service transfer success", logger.Fields{
		"branchId":        req.BranchID,
		"accountId":       req.AccountID,
		"targetBranchId":  req.TargetBranchID,
		"targetAccountId": req.TargetAccountID,
		"amount":          req.Amount,
	})
	return commons.SuccessResponse("transfer completed successfully", models.TransferResponse{
		Amount:     req.Amount.StringFixed(2),
		NewBalance: account.Balance().StringFixed(2),
	}), nil
}

func (s *TellerService) WithdrawalOptions(req models.WithdrawalOptionsRequest) (commons.Response[models.WithdrawalOptionsResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.WithdrawalOptionsResponse]("validation failed", err.Error()), err
	}

	if req.Amount > domain.WithdrawalCeiling {
		err := domain.ErrWithdrawalLimitExceeded
		return commons.ErrorResponse[models.WithdrawalOptionsResponse]("Withdrawal limit exceeded"), err
	}

	options := domain.WithdrawalOptions(req.Amount)
	if len(options) == 0 {
		err := domain.ErrDenominationInfeasible
		return commons.ErrorResponse[models.WithdrawalOptionsResponse]("No note combination available"), err
	}

	return commons.SuccessResponse("withdrawal options computed", models.WithdrawalOptionsResponse{
		Amount:  req.Amount,
		Options: options,
	}), nil
}

func (s *TellerService) Withdraw(req models.WithdrawRequest) (commons.Response[models.WithdrawResponse], error) {
	logger.Info("teller service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.WithdrawResponse]("validation failed", err.Error()), err
	}

	account, err := s.store.FindAccount(req.BranchID, req.AccountID)
	if err != nil {
		return commons.ErrorResponse[models.WithdrawResponse]("Account not found"), err
	}

	amount := domain.AssembleCash(req.Hundreds, req.Fifties, req.Twenties)
	if !account.IsAuthenticated() {
		err := domain.ErrAuthenticationFailed
		return commons.ErrorResponse[models.WithdrawResponse]("Authentication required"), err
	}
	if amount > domain.WithdrawalCeiling {
		err := domain.ErrWithdrawalLimitExceeded
		return commons.ErrorResponse[models.WithdrawResponse]("Withdrawal limit exceeded"), err
	}

	if !account.Withdraw(req.Hundreds, req.Fifties, req.Twenties) {
		err := domain.ErrInsufficientFunds
		logger.Error("teller service withdraw rejected", err, logger.Fields{
			"branchId":  req.BranchID,
			"accountId": req.AccountID,
			"amount":    amount,
		})
		return commons.ErrorResponse[models.WithdrawResponse]("Insufficient funds"), err
	}

	logger.Info("teller service withdraw success", logger.Fields{
		"branchId":  req.BranchID,
		"accountId": req.AccountID,
		"amount":    amount,
	})
	return commons.SuccessResponse("cash withdrawn successfully", models.WithdrawResponse{
		Amount:     decimal.NewFromInt(amount).StringFixed(2),
		Hundreds:   req.Hundreds,
		Fifties:    req.Fifties,
		Twenties:   req.Twenties,
		NewBalance: account.Balance().StringFixed(2),
	}), nil
}

// Save flushes the working set to durable storage. Mutations made since the
// last save are only durable after this returns nil.
func (s *TellerService) Save(ctx context.Context) (commons.Response[models.SaveResponse], error) {
	if err := s.store.Reconcile(ctx); err != nil {
		logger.Error("teller service save failed", err, nil)
		return commons.ErrorResponse[models.SaveResponse]("failed to save", "Unable to reach the durable store"), err
	}

	return commons.SuccessResponse("ledger saved successfully", models.SaveResponse{
		Accounts: len(s.store.Accounts()),
	}), nil
}

// IsBusinessError reports whether err is a business-rule rejection rather
// than a storage fault.
func IsBusinessError(err error) bool {
	return errors.Is(err, domain.ErrAccountNotFound) ||
		errors.Is(err, domain.ErrAuthenticationFailed) ||
		errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrWithdrawalLimitExceeded) ||
		errors.Is(err, domain.ErrDenominationInfeasible)
}
