package cmd

import (
	"os"
	"path/filepath"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		wantErr  bool
		contains []string
	}{
		{
			name:    "help command",
			args:    []string{"--help"},
			wantErr: false,
			contains: []string{
				"Splash draws a lock screen over the terminal",
				"config",
				"preview",
				"--document",
				"--start-open",
			},
		},
		{
			name:    "version command",
			args:    []string{"version"},
			wantErr: false,
			contains: []string{
				"splash version test-version",
			},
		},
		{
			name:    "unexpected argument",
			args:    []string{"now"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			useHome(t)
			output, err := run(t, tc.args...)

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, expected := range tc.contains {
				assert.Contains(t, output, expected)
			}
		})
	}
}

func TestRootCommandStructure(t *testing.T) {
	cmd := newRootCmd("test")

	// Verify basic properties
	assert.Equal(t, "splash", cmd.Use)
	assert.Contains(t, cmd.Short, "Terminal lock screen")
	assert.Contains(t, cmd.Long, "Splash draws a lock screen")

	// Verify subcommands are registered
	subcommands := cmd.Commands()
	expectedCommands := []string{"version", "config", "preview", "man"}

	for _, expected := range expectedCommands {
		found := false
		for _, subcmd := range subcommands {
			if subcmd.Name() == expected {
				found = true
				break
			}
		}
		assert.True(t, found, "Expected subcommand %s not found", expected)
	}

	for _, flag := range []string{"config", "document", "log-file", "debug", "start-open"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "Expected flag --%s", flag)
	}
}

func TestFlagsOverrideSettings(t *testing.T) {
	home := useHome(t)
	settings := filepath.Join(home, "custom.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("log_level: warn\nmouse: false\n"), 0o644))

	output, err := run(t, "config", "show", "--config", settings, "--document", "/srv/lock.json", "--debug")
	require.NoError(t, err)

	output = xansi.Strip(output)
	assert.Contains(t, output, settings)
	assert.Contains(t, output, "/srv/lock.json")
	assert.Contains(t, output, "debug")
	assert.NotContains(t, output, "warn")
}

func TestPreviewCommand(t *testing.T) {
	useHome(t)

	output, err := run(t, "preview", "--width", "40", "--height", "12", "--at", "2024-03-02T15:04:00Z")
	require.NoError(t, err)

	output = xansi.Strip(output)
	assert.Contains(t, output, "Saturday, March 2nd")
	assert.Contains(t, output, "3:04")
	assert.Contains(t, output, "PM")
}

func TestPreviewCommandDocument(t *testing.T) {
	home := useHome(t)
	doc := filepath.Join(home, "lock.yaml")
	require.NoError(t, os.WriteFile(doc, []byte(`content:
  clock:
    format: "HH:mm"
  html: "Locked by ops"
`), 0o644))

	output, err := run(t, "preview", "--document", doc, "--width", "40", "--height", "12", "--at", "2024-03-02T09:05:00Z")
	require.NoError(t, err)

	output = xansi.Strip(output)
	assert.Contains(t, output, "09:05")
	assert.Contains(t, output, "Locked by ops")
	assert.NotContains(t, output, "Saturday")
}

func TestPreviewCommandRejects(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{"zero width", []string{"preview", "--width", "0"}, "must be positive"},
		{"bad time", []string{"preview", "--at", "noon"}, "invalid --at time"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			useHome(t)
			_, err := run(t, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
