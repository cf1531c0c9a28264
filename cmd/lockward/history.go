package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lockward/lockward/internal/auth"
	"github.com/lockward/lockward/internal/daemon"
	"github.com/lockward/lockward/internal/database"
	"github.com/lockward/lockward/internal/reporter"
	"github.com/lockward/lockward/pkg/utils"
)

var (
	jsonOutput bool
	assumeYes  bool
)

func openRepository(path string) (*database.Repository, func(), error) {
	db, err := database.Connect(path)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Initialize(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return database.NewRepository(db), func() { db.Close() }, nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status and the last lock session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		running, pid, err := daemon.New(cfg.Daemon.PIDFile).IsRunning()
		if err != nil {
			return errors.Wrap(err, "failed to check daemon status")
		}
		if running {
			fmt.Fprintf(out, "Status: Running (PID: %d)\n", pid)
		} else {
			fmt.Fprintln(out, "Status: Not running")
		}
		fmt.Fprintf(out, "Idle Timeout: %v\n", cfg.TimeoutDuration())
		if len(cfg.Saver.Use) > 0 {
			fmt.Fprintf(out, "Savers: %s\n", strings.Join(cfg.Saver.Use, ", "))
		} else {
			fmt.Fprintln(out, "Savers: none (blank screen)")
		}

		repo, closeDB, err := openRepository(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer closeDB()

		latest, err := repo.GetLatest()
		if err != nil {
			return err
		}
		if latest == nil {
			fmt.Fprintln(out, "\nNo lock sessions recorded yet.")
			return nil
		}

		now := time.Now()
		fmt.Fprintf(out, "\nLast Session:\n")
		fmt.Fprintf(out, "  Started: %s (%s ago)\n", latest.StartedAt.Format("2006-01-02 15:04:05"),
			utils.FormatRoundedUnit(now.Sub(latest.StartedAt)))
		fmt.Fprintf(out, "  Trigger: %s\n", latest.Trigger)
		if latest.LockedAt != nil {
			fmt.Fprintf(out, "  Locked For: %s\n", utils.FormatClock(latest.LockedDuration(now)))
		}
		if latest.EndedAt == nil {
			fmt.Fprintln(out, "  Active: yes")
		}
		if latest.FailedAttempts > 0 {
			fmt.Fprintf(out, "  Failed Attempts: %d\n", latest.FailedAttempts)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:       "history [day|week|month]",
	Short:     "Summarize lock history",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"day", "today", "week", "month"},
	RunE: func(cmd *cobra.Command, args []string) error {
		period := "day"
		if len(args) > 0 {
			period = args[0]
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		repo, closeDB, err := openRepository(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer closeDB()

		report, err := reporter.New(repo).GenerateReport(period)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			data, err := reporter.FormatReportJSON(report)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, data)
			return nil
		}
		fmt.Fprint(out, reporter.FormatReportText(report))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded lock history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !assumeYes {
			fmt.Fprint(out, "This will delete all lock history. Are you sure? (yes/no): ")
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.TrimSpace(answer)
			if answer != "yes" && answer != "y" {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}
		}

		repo, closeDB, err := openRepository(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := repo.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(out, "History cleared")
		return nil
	},
}

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print a bcrypt hash for [auth.internal] hash",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

// readPassword reads one line from in. Pipe the password in to keep it
// out of the terminal scrollback.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "Password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "failed to read password")
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("empty password")
	}
	return password, nil
}

func init() {
	historyCmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	clearCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
}
