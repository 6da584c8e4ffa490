package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Mazuh/bugginho-atm/src/internal/adapter/repository/postgres"
	"github.com/Mazuh/bugginho-atm/src/internal/config"
	"github.com/Mazuh/bugginho-atm/src/internal/usecase/services"
	"github.com/google/subcommands"
)

type bootstrapCmd struct{}

func (*bootstrapCmd) Name() string { return "bootstrap" }
func (*bootstrapCmd) Synopsis() string {
	return "create the durable store schema and seed the install-time accounts"
}
func (*bootstrapCmd) Usage() string {
	return `atm bootstrap

  Applies pending migrations and inserts the fixed seed accounts when the
  store is empty. Safe to run repeatedly.
`
}
func (*bootstrapCmd) SetFlags(*flag.FlagSet) {}

func (c *bootstrapCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		fmt.Fprintf(os.Stderr, "run migrations: %v\n", err)
		return subcommands.ExitFailure
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	if err := services.SeedAccounts(ctx, postgres.NewAccountRepository(db)); err != nil {
		fmt.Fprintf(os.Stderr, "seed accounts: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("bootstrap completed successfully")
	return subcommands.ExitSuccess
}
