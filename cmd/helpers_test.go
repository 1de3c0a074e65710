package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"

	"github.com/karthickk/splash-screen/pkg/config"
)

// useHome points HOME at a temporary directory so commands read and write
// settings there.
func useHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() {
		config.SetConfigFile("")
		viper.Reset()
	})
	return home
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd("test-version")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
