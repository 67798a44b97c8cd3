package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExecute_Found(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "settings.txt", "2\n06afd46bcdfd22ef94ac122aa11f241244a37ecc\n")
	found := filepath.Join(dir, "found.txt")

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code, err := execute(context.Background(), []string{
		"--settings", settings,
		"--found-file", found,
		"--workers", "2",
		"--log-format", "json",
	}, stdout, stderr)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	assert.Contains(t, stdout.String(), "Private key (dec): 2")
	assert.Contains(t, stdout.String(), "1cMh228HTCiwS8ZsaakH8A8wze1JR5ZsP")
	assert.Contains(t, stderr.String(), "match recorded")

	content, err := os.ReadFile(found)
	require.NoError(t, err)
	assert.Equal(t, "2\n", string(content))
}

func TestExecute_NotFound(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "settings.txt", "4\n385defb0ed10fe95817943ed37b4984f8f4255d6\n")

	stdout := &bytes.Buffer{}
	code, err := execute(context.Background(), []string{
		"--settings", settings,
		"--found-file", filepath.Join(dir, "found.txt"),
		"--mode", "sequential",
		"--exit-code-not-found", "2",
	}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.Contains(t, stdout.String(), "No match in 8 keys")
}

func TestExecute_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "settings.txt", "4\n385defb0ed10fe95817943ed37b4984f8f4255d6\n")
	t.Setenv("HASHHUNT_EXIT_CODE_NOT_FOUND", "3")
	t.Setenv("HASHHUNT_SETTINGS", settings)
	t.Setenv("HASHHUNT_FOUND_FILE", filepath.Join(dir, "found.txt"))

	code, err := execute(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestExecute_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.txt", "0\nnot-a-digest\n")
	good := writeFile(t, dir, "good.txt", "4\n385defb0ed10fe95817943ed37b4984f8f4255d6\n")

	tests := []struct {
		name string
		args []string
	}{
		{"invalid settings", []string{"--settings", bad}},
		{"missing settings", []string{"--settings", filepath.Join(dir, "nope.txt")}},
		{"bad mode", []string{"--settings", good, "--mode", "random"}},
		{"bad remainder", []string{"--settings", good, "--remainder", "spread"}},
		{"bad batch", []string{"--settings", good, "--batch-size", "0"}},
		{"bad log format", []string{"--settings", good, "--log-format", "xml"}},
		{"reject remainder", []string{"--settings", good, "--workers", "3", "--remainder", "reject"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--found-file", filepath.Join(dir, "found.txt"))
			code, err := execute(context.Background(), args, &bytes.Buffer{}, &bytes.Buffer{})
			assert.Error(t, err)
			assert.Equal(t, 1, code)
		})
	}
}

func TestExecute_Interrupted(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "settings.txt", "60\n385defb0ed10fe95817943ed37b4984f8f4255d6\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, err := execute(ctx, []string{
		"--settings", settings,
		"--found-file", filepath.Join(dir, "found.txt"),
	}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.Equal(t, 130, code)
}

func TestRootCommand_Defaults(t *testing.T) {
	var code int
	cmd := newRootCommand(viper.New(), &bytes.Buffer{}, &bytes.Buffer{}, &code)

	batch := cmd.Flags().Lookup("batch-size")
	require.NotNil(t, batch)
	assert.Equal(t, strconv.Itoa(curve.DefaultBatchSize), batch.DefValue)

	mode := cmd.Flags().Lookup("mode")
	require.NotNil(t, mode)
	assert.Equal(t, "batch", mode.DefValue)
}
