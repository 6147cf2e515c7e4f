/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jfmyers9/lfm/internal/config"
	"github.com/jfmyers9/lfm/internal/logging"
	"github.com/jfmyers9/lfm/internal/tagstore"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	logLevel string
	logFile  string

	cfg       *config.Config
	logger    zerolog.Logger
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lfm",
	Short: "Command line client for Last.fm",
	Long: `lfm queries and edits your Last.fm data from the terminal.

It looks up artists, albums, tracks, tags, users and events, runs
paged searches, prints weekly charts, scrobbles plays and keeps the
tags you apply on Last.fm in sync with a local list of desired tags.

Run 'lfm auth' once to store a session key for commands that write.`,
	Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := execute()
	if err != nil {
		if !errors.Is(err, errNotPlaying) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// execute runs the root command and closes the log file whether or not
// the command failed. cobra skips post-run hooks after an error.
func execute() error {
	defer closeLog()
	return rootCmd.Execute()
}

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotated file instead of stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger, logCloser, err = logging.New(logging.Options{Level: level, File: logFile})
	if err != nil {
		return err
	}
	logger = logger.With().Str("command", cmd.Name()).Logger()
	return nil
}

// newClient builds a Last.fm client from the loaded config.
func newClient() (*lastfm.Client, error) {
	if cfg.LastFM.APIKey == "" || cfg.LastFM.APISecret == "" {
		return nil, fmt.Errorf("no API credentials configured, run 'lfm auth' first")
	}
	return lastfm.NewClient(lastfm.Config{
		APIKey:     cfg.LastFM.APIKey,
		APISecret:  cfg.LastFM.APISecret,
		SessionKey: cfg.LastFM.SessionKey,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		UserAgent:  "lfm/" + version,
		MaxRetries: cfg.MaxRetries,
		Logger:     logging.Adapter{Logger: logger.With().Str("component", "lastfm").Logger()},
	})
}

// openStore opens the tag store in the configured data directory.
func openStore() (*tagstore.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	path := filepath.Join(cfg.DataDir, "tags.db")
	logger.Debug().Str("path", path).Msg("Opening tag store")
	return tagstore.Open(path)
}

func diffOptions() []lastfm.DiffOption {
	if cfg.Tags.FoldCase {
		return []lastfm.DiffOption{lastfm.WithFoldCase()}
	}
	return nil
}
