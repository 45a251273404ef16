package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ifnexus/internal/config"
	"ifnexus/internal/db"
	"ifnexus/internal/repository"
	"ifnexus/internal/seed"
)

//go:embed usuarios.yaml
var defaultFixture []byte

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the IFNexus database with test data",
	}
	cmd.AddCommand(usersCmd())
	return cmd
}

func usersCmd() *cobra.Command {
	var fixturePath string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Create test accounts",
		Long: `Create test accounts from a YAML fixture.

Without --file the built-in fixture is used. Accounts whose email already
exists are left untouched.

Examples:
  seed users
  seed users --file contas.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = bytes.NewReader(defaultFixture)
			if fixturePath != "" {
				f, err := os.Open(fixturePath)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			return runUsers(cmd.Context(), r)
		},
	}

	cmd.Flags().StringVarP(&fixturePath, "file", "f", "", "YAML fixture with a usuarios list")
	return cmd
}

func runUsers(ctx context.Context, r io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fixture, err := seed.Parse(r)
	if err != nil {
		return err
	}

	cfg := config.Load()
	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB, false); err != nil {
		return err
	}

	created, skipped, err := seed.Users(ctx, repository.NewUserRepository(gormDB), fixture.Users)
	if err != nil {
		return err
	}

	log.Info().Int("created", created).Int("skipped", skipped).Msg("test users seeded")
	return nil
}
