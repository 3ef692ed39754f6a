package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CACHE_HOME", home)
	t.Setenv("HOME", home)
	// Tokens from the environment keep the keyring out of the test.
	t.Setenv("CURSEFORGE_API_KEY", "test")
	t.Setenv("GITHUB_TOKEN", "test")

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{name: "version", args: []string{"modsync", "version"}, expectedExit: 0},
		{name: "profile list without config", args: []string{"modsync", "profile", "list"}, expectedExit: 0},
		{name: "apply without profiles", args: []string{"modsync", "apply", "--plain"}, expectedExit: 1},
		{name: "unknown command", args: []string{"modsync", "frobnicate"}, expectedExit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.expectedExit, run())
		})
	}
}
