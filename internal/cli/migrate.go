package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"rmclub-backend/internal/infrastructure/database"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "create or update all tables" }
func (*migrateCmd) Usage() string {
	return `rmctl migrate

  Runs AutoMigrate for every model against DATABASE_URL.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, db, err := open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := database.AutoMigrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "Error migrating: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Info().Int("models", len(database.Models())).Msg("migration complete")
	return subcommands.ExitSuccess
}
