// Package cli holds the rmctl subcommands: schema migration and terminal
// renderings of the read models the API serves.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"rmclub-backend/internal/config"
	"rmclub-backend/internal/infrastructure/database"
	"rmclub-backend/internal/logging"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"gorm.io/gorm"
)

var plain = flag.Bool("plain", false, "print raw markdown instead of rendering it for the terminal")

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&migrateCmd{}, "database")
	c.Register(&portfolioCmd{}, "reports")
	c.Register(&dashboardCmd{}, "reports")
}

// open loads config and connects to DATABASE_URL.
func open() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is not set")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func printMarkdown(md string) {
	writeMarkdown(os.Stdout, md, *plain)
}

func writeMarkdown(w io.Writer, md string, raw bool) {
	if raw {
		fmt.Fprint(w, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}
