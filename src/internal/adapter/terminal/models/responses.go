package models

import "github.com/Mazuh/bugginho-atm/src/internal/domain"

type LoginResponse struct {
	BranchID  string `json:"branchId"`
	AccountID string `json:"accountId"`
}

type BalanceResponse struct {
	BranchID  string `json:"branchId"`
	AccountID string `json:"accountId"`
	Balance   string `json:"balance"`
}

type StatementResponse struct {
	Entries []string `json:"entries"`
}

type DepositResponse struct {
	CreditedBranchID  string `json:"creditedBranchId"`
	CreditedAccountID string `json:"creditedAccountId"`
	Amount            string `json:"amount"`
}

type TransferResponse struct {
	Amount     string `json:"amount"`
	NewBalance string `json:"newBalance"`
}

type WithdrawalOptionsResponse struct {
	Amount  int64               `json:"amount"`
	Options []domain.NoteBundle `json:"options"`
}

type WithdrawResponse struct {
	Amount     string `json:"amount"`
	Hundreds   int64  `json:"hundreds"`
	Fifties    int64  `json:"fifties"`
	Twenties   int64  `json:"twenties"`
	NewBalance string `json:"newBalance"`
}

type SaveResponse struct {
	Accounts int `json:"accounts"`
}
