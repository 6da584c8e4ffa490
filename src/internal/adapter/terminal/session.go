package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Mazuh/bugginho-atm/src/internal/adapter/terminal/models"
	"github.com/Mazuh/bugginho-atm/src/internal/logger"
	"github.com/Mazuh/bugginho-atm/src/internal/usecase/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxLoginAttempts = 3

// Session is the interactive menu loop of one terminal user. It is a thin
// I/O wrapper: every decision is delegated to the teller service.
type Session struct {
	teller    *services.TellerService
	in        *bufio.Scanner
	out       io.Writer
	id        uuid.UUID
	branchID  string
	accountID string
	password  string
}

func NewSession(teller *services.TellerService, in io.Reader, out io.Writer) *Session {
	return &Session{
		teller: teller,
		in:     bufio.NewScanner(in),
		out:    out,
		id:     uuid.New(),
	}
}

// Run drives the session until the user quits or input ends. Business
// rejections are printed and the menu continues; only storage faults end
// the session with an error.
func (s *Session) Run(ctx context.Context) error {
	logger.Info("terminal session started", logger.Fields{
		"sessionId": s.id.String(),
	})

	s.printf("Welcome to Bugginho Bank.")
	if !s.login() {
		s.printf("Too many failed attempts. Goodbye.")
		return nil
	}

	for {
		s.printf("")
		s.printf("1) Balance  2) Statement  3) Deposit  4) Transfer  5) Withdraw  6) Save  0) Exit")
		choice, ok := s.prompt("Choose an option")
		if !ok {
			return nil
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			s.showBalance()
		case "2":
			s.showStatement()
		case "3":
			s.deposit()
		case "4":
			s.transfer()
		case "5":
			s.withdraw()
		case "6":
			err = s.save(ctx)
		case "0":
			s.logout()
			s.printf("Goodbye.")
			return nil
		default:
			s.printf("Unknown option.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) login() bool {
	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		branchID, ok := s.prompt("Branch")
		if !ok {
			return false
		}
		accountID, ok := s.prompt("Account")
		if !ok {
			return false
		}
		password, ok := s.prompt("Password")
		if !ok {
			return false
		}

		resp, err := s.teller.Login(models.LoginRequest{
			BranchID:  branchID,
			AccountID: accountID,
			Password:  password,
		})
		if resp.Success {
			s.branchID = branchID
			s.accountID = accountID
			s.password = password
			s.printf("Hello, %s/%s.", accountID, branchID)
			return true
		}

		logger.Error("terminal session login attempt failed", err, logger.Fields{
			"sessionId": s.id.String(),
			"attempt":   attempt,
		})
		s.printf("%s", resp.Message)
	}
	return false
}

func (s *Session) logout() {
	_, _ = s.teller.Logout(s.ref())
}

func (s *Session) showBalance() {
	resp, _ := s.teller.Balance(s.ref())
	if !resp.Success {
		s.printf("%s", resp.Message)
		return
	}
	s.printf("Balance: R$%s", resp.Data.Balance)
}

func (s *Session) showStatement() {
	resp, _ := s.teller.Statement(s.ref())
	if !resp.Success {
		s.printf("%s", resp.Message)
		return
	}
	if len(resp.Data.Entries) == 0 {
		s.printf("No transactions yet.")
		return
	}
	for _, entry := range resp.Data.Entries {
		s.printf("%s", entry)
	}
}

func (s *Session) deposit() {
	amount, ok := s.promptAmount("Amount to deposit")
	if !ok {
		return
	}

	req := models.DepositRequest{
		BranchID:  s.branchID,
		AccountID: s.accountID,
		Amount:    amount,
	}

	answer, ok := s.prompt("Deposit into another account? (y/N)")
	if !ok {
		return
	}
	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		if req.TargetBranchID, ok = s.prompt("Target branch"); !ok {
			return
		}
		if req.TargetAccountID, ok = s.prompt("Target account"); !ok {
			return
		}
	}

	resp, _ := s.teller.Deposit(req)
	s.printf("%s", resp.Message)
}

func (s *Session) transfer() {
	amount, ok := s.promptAmount("Amount to transfer")
	if !ok {
		return
	}
	targetBranch, ok := s.prompt("Target branch")
	if !ok {
		return
	}
	targetAccount, ok := s.prompt("Target account")
	if !ok {
		return
	}

	resp, _ := s.teller.Transfer(models.TransferRequest{
		BranchID:        s.branchID,
		AccountID:       s.accountID,
		Amount:          amount,
		TargetBranchID:  targetBranch,
		TargetAccountID: targetAccount,
	})
	s.printf("%s", resp.Message)
}

func (s *Session) withdraw() {
	amount, ok := s.promptInt("Amount to withdraw")
	if !ok {
		return
	}

	optionsResp, _ := s.teller.WithdrawalOptions(models.WithdrawalOptionsRequest{Amount: amount})
	if !optionsResp.Success {
		s.printf("%s", optionsResp.Message)
		return
	}

	options := optionsResp.Data.Options
	for i, option := range options {
		s.printf("%d) %d x R$100, %d x R$50, %d x R$20", i+1, option.Hundreds, option.Fifties, option.Twenties)
	}
	pick, ok := s.promptInt("Choose a combination")
	if !ok {
		return
	}
	if pick < 1 || pick > int64(len(options)) {
		s.printf("Unknown combination.")
		return
	}

	chosen := options[pick-1]
	resp, _ := s.teller.Withdraw(models.WithdrawRequest{
		BranchID:  s.branchID,
		AccountID: s.accountID,
		Hundreds:  chosen.Hundreds,
		Fifties:   chosen.Fifties,
		Twenties:  chosen.Twenties,
	})
	s.printf("%s", resp.Message)
}

func (s *Session) save(ctx context.Context) error {
	resp, err := s.teller.Save(ctx)
	s.printf("%s", resp.Message)
	if err != nil {
		return err
	}

	// Saving reloads the working set, which drops the store-side
	// authentication. Log back in with the held credentials so debiting
	// operations keep working for the rest of the session.
	relogin, err := s.teller.Login(models.LoginRequest{
		BranchID:  s.branchID,
		AccountID: s.accountID,
		Password:  s.password,
	})
	if !relogin.Success {
		logger.Error("terminal session re-login after save failed", err, logger.Fields{
			"sessionId": s.id.String(),
		})
		s.printf("Session expired. Please exit and login again.")
	}
	return nil
}

func (s *Session) ref() models.AccountRef {
	return models.AccountRef{BranchID: s.branchID, AccountID: s.accountID}
}

func (s *Session) prompt(label string) (string, bool) {
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) promptAmount(label string) (decimal.Decimal, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		s.printf("Not a valid amount.")
		return decimal.Zero, false
	}
	return amount, true
}

func (s *Session) promptInt(label string) (int64, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.printf("Not a valid number.")
		return 0, false
	}
	return value, true
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}
