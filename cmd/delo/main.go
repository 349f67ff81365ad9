package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"deloconnect/internal/api"
	"deloconnect/internal/config"
	"deloconnect/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool

	// Logger for non-interactive commands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "delo",
	Short: "DeloConnect - HR wellbeing & chat escalation console",
	Long: `DeloConnect is the administrative console for the employee wellbeing
and chat-escalation platform.

It renders employee, session, meeting and escalation lists, employee
profiles and the wellbeing dashboard, and attaches to chat threads live
over the backend's WebSocket feed.

Run without arguments to start the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The dashboard has its own UI; keep zap off its terminal.
		if cmd.Use == "delo" && cmd.CalledAs() == "delo" {
			return initFileLogging()
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return initFileLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive dashboard.
		return runDashboard(cmd.Context())
	},
}

func initFileLogging() error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	return logging.Initialize(dir)
}

// loadClient builds the REST client for CLI commands. The auth gate lives
// here: without a token no command issues a call.
func loadClient() (*api.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	client := api.NewClient(cfg)
	if !client.HasToken() {
		return nil, nil, api.ErrNoToken
	}
	return client, cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(employeesCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(meetingsCmd)
	rootCmd.AddCommand(escalationsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(wellbeingCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrNoToken) {
			fmt.Fprintln(os.Stderr, "Your token is missing or expired; run `delo login` to set a new one.")
		}
		os.Exit(1)
	}
}
