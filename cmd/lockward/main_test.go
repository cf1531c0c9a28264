package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockward/lockward/internal/database"
	"github.com/lockward/lockward/internal/models"
)

// writeConfig points the database and PID file into a temporary directory.
func writeConfig(t *testing.T) (cfgPath, dbPath string) {
	t.Helper()

	dir := t.TempDir()
	dbPath = filepath.Join(dir, "lockward.db")
	cfgPath = filepath.Join(dir, "config.toml")

	content := fmt.Sprintf("[database]\npath = %q\n\n[daemon]\npid_file = %q\n",
		dbPath, filepath.Join(dir, "lockward.pid"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	return cfgPath, dbPath
}

func seedHistory(t *testing.T, dbPath string) {
	t.Helper()

	db, err := database.Connect(dbPath)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Initialize())

	repo := database.NewRepository(db)
	now := time.Now()

	s := &models.LockSession{StartedAt: now.Add(-30 * time.Minute), Screens: 1, Trigger: models.TriggerIdle}
	require.NoError(t, repo.StartSession(s))
	require.NoError(t, repo.MarkLocked(s.ID, now.Add(-20*time.Minute)))
	require.NoError(t, repo.RecordAttempt(&models.AuthAttempt{SessionID: s.ID, Timestamp: now.Add(-15 * time.Minute), Method: "internal"}))
	require.NoError(t, repo.EndSession(s.ID, now.Add(-10*time.Minute)))
}

func countSessions(t *testing.T, dbPath string) int {
	t.Helper()

	db, err := database.Connect(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var n int64
	require.NoError(t, db.Model(&models.LockSession{}).Count(&n).Error)
	return int(n)
}

// run executes the CLI with args and stdin and returns what it printed.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	jsonOutput, assumeYes = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"start", "stop", "status", "lock", "history", "clear", "hash", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestHistoryArgs(t *testing.T) {
	assert.NoError(t, historyCmd.Args(historyCmd, nil))
	assert.NoError(t, historyCmd.Args(historyCmd, []string{"week"}))
	assert.Error(t, historyCmd.Args(historyCmd, []string{"year"}))
	assert.Error(t, historyCmd.Args(historyCmd, []string{"day", "week"}))
}

func TestHistoryJSON(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)
	seedHistory(t, dbPath)

	out, err := run(t, "", "history", "week", "--json", "--config", cfgPath)
	require.NoError(t, err)

	var report models.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "week", report.Period.Type)
	assert.Equal(t, 1, report.Sessions)
	assert.Equal(t, 1, report.Locked)
	assert.Equal(t, 1, report.FailedAttempts)
	assert.Equal(t, []models.TriggerSummary{{Trigger: models.TriggerIdle, Sessions: 1}}, report.Triggers)
}

func TestHistoryText(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)
	seedHistory(t, dbPath)

	out, err := run(t, "", "history", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Lock History - day")
	assert.Contains(t, out, "Failed Attempts: 1")
	assert.Contains(t, out, models.TriggerIdle)
}

func TestHistoryRejectsUnknownPeriod(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	_, err := run(t, "", "history", "year", "--config", cfgPath)
	assert.Error(t, err)
}

func TestClearCancelled(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)
	seedHistory(t, dbPath)

	out, err := run(t, "no\n", "clear", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled")
	assert.Equal(t, 1, countSessions(t, dbPath))
}

func TestClearConfirmed(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)
	seedHistory(t, dbPath)

	out, err := run(t, "yes\n", "clear", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared")
	assert.Zero(t, countSessions(t, dbPath))
}

func TestClearAssumeYes(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)
	seedHistory(t, dbPath)

	out, err := run(t, "", "clear", "-y", "--config", cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "Are you sure")
	assert.Zero(t, countSessions(t, dbPath))
}

func TestStatusWithoutDaemon(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)
	seedHistory(t, dbPath)

	out, err := run(t, "", "status", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Status: Not running")
	assert.Contains(t, out, "Trigger: idle")
	assert.Contains(t, out, "Failed Attempts: 1")
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[timer]\ntimeout = -1\n"), 0o600))

	_, err := run(t, "", "status", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestReadPassword(t *testing.T) {
	var prompt bytes.Buffer

	got, err := readPassword(strings.NewReader("hunter2\r\n"), &prompt)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
	assert.Equal(t, "Password: ", prompt.String())

	_, err = readPassword(strings.NewReader("\n"), io.Discard)
	assert.Error(t, err)

	_, err = readPassword(strings.NewReader(""), io.Discard)
	assert.Error(t, err)
}

func TestStartForegroundFlag(t *testing.T) {
	f := startCmd.Flags().Lookup("foreground")
	require.NotNil(t, f)
	assert.Equal(t, "f", f.Shorthand)
	assert.Equal(t, "false", f.DefValue)
}
