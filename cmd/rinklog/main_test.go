package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"rinklog/pkg/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs rootCmd with args from a clean flag state and returns what the
// command printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if s, ok := f.Value.(pflag.SliceValue); ok {
			_ = s.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "rinklog.toml")

	out, err := execute(t, "--config", path, "init-config")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	got := &config.Config{}
	require.NoError(t, got.ReadFile(path))
	assert.Equal(t, config.Default(), got)

	t.Run("refuses to overwrite", func(t *testing.T) {
		out, err := execute(t, "--config", path, "init-config")
		require.Error(t, err)
		assert.Equal(t, path+" already exists", err.Error())
		assert.Empty(t, out)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, written, after)
	})
}

func TestCommandsFailBeforeRemoteCalls(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	configPath := filepath.Join(dir, "missing.toml")
	badSnapshot := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(badSnapshot, []byte(`{"players":[`), 0600))

	tests := []struct {
		name       string
		args       []string
		wantErr    string
		wantConfig bool
	}{
		{
			name:    "player without name",
			args:    []string{"add-player", "--number", "9"},
			wantErr: `required flag(s) "name" not set`,
		},
		{
			name:    "game with bad date",
			args:    []string{"add-game", "--opponent", "Sharks", "--date", "tomorrow"},
			wantErr: `--date: parsing time "tomorrow" as "2006-01-02T15:04:05Z07:00": cannot parse "tomorrow" as "2006"`,
		},
		{
			name:    "event with unknown type",
			args:    []string{"add-event", "--game", "g1", "--type", "hit"},
			wantErr: `invalid event type "hit"`,
		},
		{
			name:    "malformed snapshot",
			args:    []string{"save", "--file", badSnapshot},
			wantErr: "decode snapshot: unexpected EOF",
		},
		{
			name:       "load without a workbook",
			args:       []string{"load"},
			wantConfig: true,
		},
		{
			name:       "player without a workbook",
			args:       []string{"add-player", "--name", "Ann"},
			wantConfig: true,
		},
		{
			name:       "event without a workbook",
			args:       []string{"add-event", "--game", "g1", "--assists", "p1,p2"},
			wantConfig: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"--config", configPath}, tt.args...)...)
			require.Error(t, err)
			assert.Empty(t, out)
			if tt.wantConfig {
				assert.ErrorIs(t, err, config.ErrConfiguration)
				return
			}
			assert.NotErrorIs(t, err, config.ErrConfiguration)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"load", "save", "add-player", "add-game", "add-event", "init-config"} {
		assert.Contains(t, names, want)
	}
	assert.Equal(t, "rinklog.toml", rootCmd.PersistentFlags().Lookup("config").DefValue)
}
