package domain

import "errors"

// Business-rule violations surface as these sentinels and never abort the
// process; only durable-storage failures are fatal to an operation.
var ErrAccountNotFound = errors.New("Account not found")
var ErrAuthenticationFailed = errors.New("Authentication failed")
var ErrInsufficientFunds = errors.New("Insufficient funds")
var ErrWithdrawalLimitExceeded = errors.New("Withdrawal limit exceeded")
var ErrDenominationInfeasible = errors.New("No note combination available")
