package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { configPath = "" })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coyotemind.yaml")
	t.Setenv("COYOTE_CONFIG", path)
	t.Setenv("COYOTE_COLORS", "9")

	out, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "board_size: 4")
	assert.Contains(t, out, "colors: 9")

	_, err = os.Stat(path)
	assert.NoError(t, err, "defaults written on first run")
}

func TestPlayDefenseurDaily(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	t.Setenv("COYOTE_ATTEMPTS", "20")

	out, err := execute(t, "1234\nn\nn\n",
		"play", "--config", path, "--game", "recherche", "--mode", "defenseur", "--daily", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "The computer found your code!")
	assert.Contains(t, out, "recherche/defenseur")
}

func TestPlayRejectsUnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	_, err := execute(t, "", "play", "--config", path, "--mode", "solo")
	assert.ErrorContains(t, err, `unknown mode "solo"`)
}
