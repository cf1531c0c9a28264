package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lockward/lockward/internal/config"
	"github.com/lockward/lockward/internal/daemon"
	"github.com/lockward/lockward/internal/logging"
	"github.com/lockward/lockward/internal/models"
	"github.com/lockward/lockward/internal/supervisor"
)

const childEnv = "LOCKWARD_DAEMON_CHILD"

var foreground bool

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the locker daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dm := daemon.New(cfg.Daemon.PIDFile)
		running, pid, err := dm.IsRunning()
		if err != nil {
			return errors.Wrap(err, "failed to check daemon status")
		}
		if running {
			return errors.Errorf("daemon is already running (PID: %d)", pid)
		}

		if !foreground && os.Getenv(childEnv) != "1" {
			return daemonize(cfg)
		}

		return runDaemon(cfg, dm)
	},
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "run in the foreground, logging to stderr")
}

func runDaemon(cfg *config.Config, dm *daemon.Daemon) error {
	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: logging.Format(cfg.Logging.Format),
		File:   cfg.Logging.File,
	}
	if logCfg.File == "" && !foreground {
		logCfg.File = logging.DefaultPath()
	}
	log, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := supervisor.Open(ctx, cfg, log.Logger)
	if err != nil {
		log.Error("failed to start", "error", err)
		return err
	}
	defer rt.Close()

	if err := dm.WritePID(); err != nil {
		return err
	}
	defer dm.RemovePID()

	loader := config.NewLoader(configPath)
	if _, err := loader.Load(); err == nil {
		loader.OnChange(rt.Reconfigure)
		if err := loader.Watch(); err != nil {
			log.Warn("config hot reload disabled", "error", err)
		}
		go func() {
			for err := range loader.Errors() {
				log.Warn("config reload failed", "error", err)
			}
		}()
	}
	defer loader.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)
	defer signal.Stop(sigChan)

	go func() {
		for sig := range sigChan {
			if sig == syscall.SIGUSR1 {
				rt.RequestLock(models.TriggerSignal)
				continue
			}
			log.Info("received shutdown signal", "signal", sig)
			cancel()
			return
		}
	}()

	log.Info("starting lockward daemon", "version", version)
	log.Debug(cfg.String())

	if err := rt.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("supervisor error", "error", err)
		return err
	}

	log.Info("daemon stopped")
	return nil
}

func daemonize(cfg *config.Config) error {
	env := append(os.Environ(), childEnv+"=1")

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil}, // stdin, stdout, stderr to /dev/null
		Sys: &syscall.SysProcAttr{
			Setsid: true,
		},
	}

	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	process, err := os.StartProcess(exe, os.Args, procAttr)
	if err != nil {
		return errors.Wrap(err, "failed to start daemon process")
	}

	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = logging.DefaultPath()
	}
	fmt.Printf("Daemon started (PID: %d)\n", process.Pid)
	fmt.Printf("Logs: %s\n", logFile)
	return process.Release()
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the locker daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dm := daemon.New(cfg.Daemon.PIDFile)

		running, pid, err := dm.IsRunning()
		if err != nil {
			return errors.Wrap(err, "failed to check daemon status")
		}
		if !running {
			fmt.Println("Daemon is not running")
			return nil
		}

		fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
		if err := dm.Stop(); err != nil {
			return err
		}
		fmt.Println("Daemon stopped")
		return nil
	},
}

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Lock the screen now",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := daemon.New(cfg.Daemon.PIDFile).Lock(); err != nil {
			if errors.Is(err, daemon.ErrNotRunning) {
				return errors.New("daemon is not running, start it with 'lockward start'")
			}
			return err
		}
		return nil
	},
}
