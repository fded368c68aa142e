package cmd

import (
	"context"
	"errors"
	"fmt"
	"linkedin-dashboard/cmd/linkedin-cli/cmd/key"
	"linkedin-dashboard/cmd/linkedin-cli/globals"
	"linkedin-dashboard/internal/dashboard"
	"linkedin-dashboard/lib/keystore"
	"linkedin-dashboard/lib/rapidapi"
	"linkedin-dashboard/lib/restyutil"
	"linkedin-dashboard/lib/telemetry"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Telemetry is set up by main before any command runs.
var Telemetry telemetry.Telemetry

var (
	configPath string
	debug      bool

	// set once PersistentPreRunE succeeds, closed by ExecuteContext
	current *globals.Value
)

var rootCmd = &cobra.Command{
	Use:           "linkedin-cli",
	Short:         "linkedin-cli queries LinkedIn profiles, posts, comments, companies and reactions through RapidAPI.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(debug)

		cfg, err := globals.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		value, err := setup(cfg)
		if err != nil {
			return err
		}
		current = value
		cmd.SetContext(globals.Set(cmd.Context(), value))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file, defaults to the nearest "+globals.ConfigName+".")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging.")
	rootCmd.AddCommand(key.RootCmd)
}

func setup(cfg globals.Config) (*globals.Value, error) {
	store, err := keystore.Open(cfg.Keystore, telemetry.SlogAPI{})
	if err != nil {
		return nil, err
	}

	var output restyutil.InstrumentOutput
	if cfg.DebugHttpDir != "" {
		fsOutput, err := restyutil.NewFilesystemOutput(cfg.DebugHttpDir)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("debug http dir: %w", err)
		}
		output = fsOutput
	}

	client, err := rapidapi.NewClient(rapidapi.ClientOptions{
		BaseUrl:          cfg.BaseUrl,
		Credentials:      store,
		Timeout:          cfg.Timeout(),
		InstrumentOutput: output,
		OnRetry: func(attempt int, wait time.Duration) {
			fmt.Fprintf(os.Stderr, "Retrying... attempt %d\n", attempt)
		},
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	slog.Debug("configured api client", "base_url", cfg.BaseUrl, "timeout", cfg.Timeout())

	return &globals.Value{
		Config:    cfg,
		Store:     store,
		Dashboard: dashboard.New(client, telemetry.SlogAPI{}),
	}, nil
}

// userMessage turns an error into what the user should read.
func userMessage(err error) string {
	var remote *rapidapi.RemoteError
	switch {
	case errors.Is(err, rapidapi.ErrMissingCredential):
		return "Please enter your RapidAPI key: linkedin-cli key set <key>"
	case errors.Is(err, rapidapi.ErrRateLimited):
		return "RapidAPI rate limit reached. Try again later."
	case errors.As(err, &remote):
		return remote.Detail
	case errors.Is(err, context.Canceled):
		return "Interrupted."
	}
	return err.Error()
}

// ExecuteContext runs the CLI and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if current != nil {
		closeErr := current.Store.Close()
		if closeErr != nil {
			slog.Warn("failed to close keystore", "err", closeErr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", userMessage(err))
		return 1
	}
	return 0
}
