package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lockward/lockward/internal/config"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "lockward",
		Short: "lockward - X11 screen locker",
		Long: `lockward locks X11 sessions after a period of inactivity or on request.
Screensavers run as separate lockward-saver-<name> processes; the password
is checked in-process against PAM or a bcrypt hash.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.Path(), "config file")
	rootCmd.AddCommand(startCmd, stopCmd, statusCmd, lockCmd, historyCmd, clearCmd, hashCmd, versionCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.New(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lockward version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
