package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	custsvc "rmclub-backend/internal/application/customers"

	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type portfolioCmd struct {
	customer string
	limit    int
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display a customer's portfolio and upcoming payments" }
func (*portfolioCmd) Usage() string {
	return `rmctl portfolio -customer <uuid> [-n <count>]

  Displays the portfolio summary, next due installment and the upcoming
  payment schedule of one customer.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.customer, "customer", "", "customer id")
	f.IntVar(&c.limit, "n", 12, "number of upcoming payments to list (-1 for all)")
}

func (c *portfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := uuid.Parse(c.customer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -customer %q: %v\n", c.customer, err)
		return subcommands.ExitUsageError
	}
	cfg, db, err := open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	svc := &custsvc.Service{DB: db, Currency: cfg.Currency}
	profile, err := svc.Profile(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading customer: %v\n", err)
		return subcommands.ExitFailure
	}
	due, err := svc.UpcomingPayments(ctx, id, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading payments: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(RenderProfile(profile, due, cfg.Currency, cfg.DisplayTimezone))
	return subcommands.ExitSuccess
}
