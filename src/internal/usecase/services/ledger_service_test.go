package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Mazuh/bugginho-atm/src/internal/domain"
	"github.com/Mazuh/bugginho-atm/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

type accountRow struct {
	id             int64
	branchID       string
	accountID      string
	credentialHash string
	balance        decimal.Decimal
}

type memoryAccountRepo struct {
	nextID int64
	rows   []*accountRow
}

func (r *memoryAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.nextID++
	row := &accountRow{
		id:             r.nextID,
		branchID:       account.BranchID(),
		accountID:      account.AccountID(),
		credentialHash: account.CredentialHash(),
		balance:        account.Balance(),
	}
	r.rows = append(r.rows, row)
	return domain.LoadAccount(row.id, row.branchID, row.accountID, row.credentialHash, row.balance), nil
}

func (r *memoryAccountRepo) GetAll(context.Context) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(r.rows))
	for _, row := range r.rows {
		accounts = append(accounts, domain.LoadAccount(row.id, row.branchID, row.accountID, row.credentialHash, row.balance))
	}
	return accounts, nil
}

func (r *memoryAccountRepo) UpdateBalance(_ context.Context, id int64, balance decimal.Decimal) error {
	for _, row := range r.rows {
		if row.id == id {
			row.balance = balance
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *memoryAccountRepo) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

type memoryHistoryRepo struct {
	rows   map[int64][]string
	failOn string
}

func newMemoryHistoryRepo() *memoryHistoryRepo {
	return &memoryHistoryRepo{rows: map[int64][]string{}}
}

func (r *memoryHistoryRepo) Create(_ context.Context, ownerID int64, registerText string) error {
	if r.failOn != "" && registerText == r.failOn {
		return errors.New("store unreachable")
	}
	r.rows[ownerID] = append(r.rows[ownerID], registerText)
	return nil
}

func (r *memoryHistoryRepo) GetByOwnerID(_ context.Context, ownerID int64) ([]string, error) {
	out := make([]string, len(r.rows[ownerID]))
	copy(out, r.rows[ownerID])
	return out, nil
}

func (r *memoryHistoryRepo) total() int {
	n := 0
	for _, texts := range r.rows {
		n += len(texts)
	}
	return n
}

func newTestStore(t *testing.T) (*services.LedgerStore, *memoryAccountRepo, *memoryHistoryRepo) {
	t.Helper()
	ctx := context.Background()

	accountRepo := &memoryAccountRepo{}
	historyRepo := newMemoryHistoryRepo()

	fixtures := []struct {
		accountID string
		password  string
		balance   int64
	}{
		{accountID: "1234-5", password: "pass", balance: 500},
		{accountID: "6789-0", password: "pass1", balance: 100},
	}
	for _, f := range fixtures {
		account := domain.NewAccount("001", f.accountID, domain.HashCredential(f.password), decimal.NewFromInt(f.balance))
		if _, err := accountRepo.Create(ctx, account); err != nil {
			t.Fatalf("failed to create fixture account: %v", err)
		}
	}

	store := services.NewLedgerStore(accountRepo, historyRepo)
	if err := store.Load(ctx); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store, accountRepo, historyRepo
}

func TestLedgerStoreFindAccount(t *testing.T) {
	store, _, _ := newTestStore(t)

	account, err := store.FindAccount("001", "1234-5")
	if err != nil {
		t.Fatalf("expected account, got %v", err)
	}
	if account.AccountID() != "1234-5" || account.BranchID() != "001" {
		t.Fatalf("found the wrong account: %s/%s", account.AccountID(), account.BranchID())
	}

	if _, err := store.FindAccount("002", "1234-5"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected not found for wrong branch, got %v", err)
	}
	if _, err := store.FindAccount("001", "0000-0"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected not found for unknown account, got %v", err)
	}
}

func TestLedgerStoreReconcileFlushesAndReloads(t *testing.T) {
	ctx := context.Background()
	store, accountRepo, historyRepo := newTestStore(t)

	account, err := store.FindAccount("001", "1234-5")
	if err != nil {
		t.Fatalf("expected account, got %v", err)
	}
	account.Authenticate("pass")
	account.Deposit(decimal.NewFromInt(50), nil)

	if err := store.Reconcile(ctx); err != nil {
		t.Fatalf("expected reconcile to succeed, got %v", err)
	}

	if got := historyRepo.total(); got != 1 {
		t.Fatalf("expected one durable history row, got %d", got)
	}
	if !accountRepo.rows[0].balance.Equal(decimal.NewFromInt(550)) {
		t.Fatalf("expected durable balance 550, got %s", accountRepo.rows[0].balance)
	}

	// The working set was reloaded: the fresh account reflects durable state
	// and the session authentication is gone.
	reloaded, err := store.FindAccount("001", "1234-5")
	if err != nil {
		t.Fatalf("expected account after reload, got %v", err)
	}
	if reloaded == account {
		t.Fatal("expected reload to rebuild the working set")
	}
	if reloaded.IsAuthenticated() {
		t.Fatal("expected reload to reset authentication")
	}
	if !reloaded.Balance().Equal(decimal.NewFromInt(550)) {
		t.Fatalf("expected balance 550 after reload, got %s", reloaded.Balance())
	}
	history := reloaded.History()
	if len(history) != 1 || !history[0].Persisted {
		t.Fatalf("expected one persisted history entry, got %+v", history)
	}
}

func TestLedgerStoreReconcileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, accountRepo, historyRepo := newTestStore(t)

	account, _ := store.FindAccount("001", "1234-5")
	account.Authenticate("pass")
	account.Deposit(decimal.NewFromInt(50), nil)

	if err := store.Reconcile(ctx); err != nil {
		t.Fatalf("expected first reconcile to succeed, got %v", err)
	}
	if err := store.Reconcile(ctx); err != nil {
		t.Fatalf("expected second reconcile to succeed, got %v", err)
	}

	if got := historyRepo.total(); got != 1 {
		t.Fatalf("expected no duplicated history rows, got %d", got)
	}
	if !accountRepo.rows[0].balance.Equal(decimal.NewFromInt(550)) {
		t.Fatalf("expected balance unchanged at 550, got %s", accountRepo.rows[0].balance)
	}
}

func TestLedgerStoreReconcileRetryAfterFailureDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	store, _, historyRepo := newTestStore(t)

	account, _ := store.FindAccount("001", "1234-5")
	account.Authenticate("pass")
	account.Deposit(decimal.NewFromInt(10), nil)
	account.Deposit(decimal.NewFromInt(20), nil)

	entries := account.History()
	historyRepo.failOn = entries[1].Text

	if err := store.Reconcile(ctx); err == nil {
		t.Fatal("expected reconcile to fail on the injected entry")
	}
	if got := historyRepo.total(); got != 1 {
		t.Fatalf("expected only the first entry durable, got %d rows", got)
	}

	historyRepo.failOn = ""
	if err := store.Reconcile(ctx); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if got := historyRepo.total(); got != 2 {
		t.Fatalf("expected exactly two durable rows after retry, got %d", got)
	}
}

func TestSeedAccountsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	accountRepo := &memoryAccountRepo{}

	if err := services.SeedAccounts(ctx, accountRepo); err != nil {
		t.Fatalf("expected seeding to succeed, got %v", err)
	}
	seeded := len(accountRepo.rows)
	if seeded == 0 {
		t.Fatal("expected seed accounts to be inserted")
	}

	if err := services.SeedAccounts(ctx, accountRepo); err != nil {
		t.Fatalf("expected second seeding to succeed, got %v", err)
	}
	if len(accountRepo.rows) != seeded {
		t.Fatalf("expected second seeding to insert nothing, got %d rows", len(accountRepo.rows))
	}
}
