package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/Mazuh/bugginho-atm/src/internal/logger"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(&bootstrapCmd{}, "ledger")
	commander.Register(&sessionCmd{}, "ledger")

	flag.Parse()
	code := int(commander.Execute(context.Background()))
	_ = logger.Sync()
	os.Exit(code)
}
