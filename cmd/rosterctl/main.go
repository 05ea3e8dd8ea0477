// Command rosterctl is the admin CLI for the attendance server: it hashes
// login passwords and reads or exports groups straight from the store.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/attendance/internal/config"
	"github.com/mmynk/attendance/internal/models"
	"github.com/mmynk/attendance/internal/remote"
	"github.com/mmynk/attendance/internal/storage/backend"
	"github.com/mmynk/attendance/pkg/logging"
)

var (
	configPath string
	envPath    string
	logLevel   string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "rosterctl",
	Short:         "Admin tool for the attendance roster",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetupWithLevel(logging.ParseLevel(logLevel))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the server configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "Optional .env file with ROSTER_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	rootCmd.AddCommand(hashPasswordCmd, groupsCmd, exportCmd, calendarCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadGroups reads every stored group, from the configured remote server if
// one is set and from the database otherwise.
func loadGroups(ctx context.Context) (*config.Config, map[string]*models.GroupRecord, error) {
	cfg, err := config.Load(configPath, envPath)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Remote.URL != "" {
		groups, err := remote.NewClient(nil, cfg.Remote.URL, cfg.Remote.Token).Pull(ctx)
		if err != nil {
			return nil, nil, err
		}
		return cfg, groups, nil
	}

	store, err := backend.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	groups, err := remote.NewStoreRemote(store).Pull(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cfg, groups, nil
}
