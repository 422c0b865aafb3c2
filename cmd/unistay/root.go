package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Lalith0024/unistay/internal/config"
	"github.com/go-logr/logr"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

// cli holds the state shared by every subcommand.
type cli struct {
	configPath string
	logLevel   string
	cfg        config.Config
	logger     logr.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "unistay",
		Short: "Hostel management server with role based dashboards",
		Long: `unistay serves the UniStay login, signup and dashboard pages. Every
navigation passes through the session guard, which sends visitors to the
login page, to their role's dashboard, or lets the page render.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(newServeCmd(c), newSeedCmd(c), newUserCmd(c))
	return rootCmd
}

// load reads the config and builds the logger. Logs go to w as JSON.
func (c *cli) load(w io.Writer) error {
	c.cfg = config.Default()
	if c.configPath != "" {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}
	if c.logLevel != "" {
		c.cfg.Log.Level = c.logLevel
	}

	level, err := parseLevel(c.cfg.Log.Level)
	if err != nil {
		return err
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	c.logger = logr.FromSlogHandler(handler)
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// slogger returns the CLI logger as a slog.Logger, for the packages that log with slog.
func (c *cli) slogger() *slog.Logger {
	return slog.New(logr.ToSlogHandler(c.logger))
}

// logWarnings reports configuration that is valid but likely a mistake.
func (c *cli) logWarnings() {
	log := c.slogger()
	for _, w := range c.cfg.Warnings() {
		log.Warn(w)
	}
}

func (c *cli) openDB() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", c.cfg.Database.Path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}
