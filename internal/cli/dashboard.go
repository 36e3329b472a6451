package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	dashsvc "rmclub-backend/internal/application/dashboard"

	"github.com/google/subcommands"
)

type dashboardCmd struct {
	name string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the admin dashboard" }
func (*dashboardCmd) Usage() string {
	return `rmctl dashboard [-name <greeting name>]

  Displays the same dashboard the admin app shows: greeting, stats, recent
  customers and investments, today's investments and meetings.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "name to greet")
}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, db, err := open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	svc := &dashsvc.Service{
		DB:          db,
		Now:         time.Now,
		Location:    cfg.DisplayTimezone,
		RecentLimit: cfg.RecentLimit,
		Currency:    cfg.Currency,
	}
	d, err := svc.Build(ctx, c.name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building dashboard: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(RenderDashboard(d, cfg.Currency, cfg.DisplayTimezone))
	return subcommands.ExitSuccess
}
