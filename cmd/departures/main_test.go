package main

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Defaults(t *testing.T) {
	cmd := newRootCmd()
	for name, want := range map[string]string{
		"config":   "./config/departures.yml",
		"log-file": "./logs/departures.log",
		"env-file": ".env",
		"timeout":  "0s",
		"dry-run":  "false",
	} {
		fl := cmd.Flags().Lookup(name)
		require.NotNil(t, fl, name)
		assert.Equal(t, want, fl.DefValue, name)
	}
	assert.Equal(t, "c", cmd.Flags().Lookup("config").Shorthand)
}

func TestRootCmd_FailureIsLoggedNotReturned(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	dir := t.TempDir()
	logFile := filepath.Join(dir, "logs", "departures.log")

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--config", filepath.Join(dir, "missing.yml"),
		"--log-file", logFile,
		"--env-file", "",
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "An error occurred")
	assert.Contains(t, string(data), "missing.yml")
}

func TestRootCmd_BadLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--log-level", "loud"})
	assert.Error(t, cmd.Execute())
}
