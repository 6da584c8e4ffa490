package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Mazuh/bugginho-atm/src/internal/adapter/repository/postgres"
	"github.com/Mazuh/bugginho-atm/src/internal/adapter/terminal"
	"github.com/Mazuh/bugginho-atm/src/internal/config"
	"github.com/Mazuh/bugginho-atm/src/internal/usecase/services"
	"github.com/google/subcommands"
)

type sessionCmd struct{}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "start an interactive terminal session" }
func (*sessionCmd) Usage() string {
	return `atm session

  Loads the account working set from the durable store and runs the
  interactive menu on stdin/stdout. Mutations reach the store only through
  the save option.
`
}
func (*sessionCmd) SetFlags(*flag.FlagSet) {}

func (c *sessionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return subcommands.ExitFailure
	}

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := postgres.Open(openCtx, cfg.DatabaseDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	store := services.NewLedgerStore(postgres.NewAccountRepository(db), postgres.NewHistoryRepository(db))
	if err := store.Load(openCtx); err != nil {
		fmt.Fprintf(os.Stderr, "load working set: %v\n", err)
		return subcommands.ExitFailure
	}

	session := terminal.NewSession(services.NewTellerService(store), os.Stdin, os.Stdout)
	if err := session.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "session aborted: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
