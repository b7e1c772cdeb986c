package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
	logger *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "bhabhi",
		Short: "CLI tool for the Bhabhi card game bot",
		Long: `bhabhi is a CLI tool for talking to the Bhabhi game bot over its JSON API.

It can post chat messages into a room as a given player, show the table and
the round history, and stream room or private messages in real time.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			client = NewClient(cfg.ServerURL, logger)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BHABHI_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Room, "room", cfg.Room, "Chat room ID (env: BHABHI_ROOM)")
	rootCmd.PersistentFlags().StringVar(&cfg.Player, "as", cfg.Player, "Player ID to send as (env: BHABHI_PLAYER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Name, "name", cfg.Name, "Display name to send with messages (env: BHABHI_NAME)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newSayCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(pterm.LogLevelDebug).WithWriter(w)))
}
