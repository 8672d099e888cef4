// Package cli implements the theaterlog CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rcliao/theaterlog/internal/config"
	"github.com/rcliao/theaterlog/internal/storage"
	"github.com/rcliao/theaterlog/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "theaterlog",
	Short: "Personal log of theater visits",
	Long:  "Keep a personal log of theater visits: add and rate entries, search them, pull show listings from the web and move data in and out as JSON or CSV.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $THEATERLOG_DB or ~/.theaterlog/theaterlog.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (optional)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

// session bundles the objects every command needs.
type session struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *store.Store
	db    *storage.SQLite
}

func (s *session) Close() {
	s.db.Close()
}

func openSession() (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}

	log := newLogger(cfg.Logger.Level)

	db, err := storage.NewSQLite(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	return &session{
		cfg:   cfg,
		log:   log,
		store: store.New(db, log),
		db:    db,
	}, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
