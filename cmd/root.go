package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/karthickk/splash-screen/internal/document"
	"github.com/karthickk/splash-screen/internal/splash"
	"github.com/karthickk/splash-screen/internal/ui/views"
	"github.com/karthickk/splash-screen/pkg/config"
	"github.com/karthickk/splash-screen/pkg/logger"
	"github.com/karthickk/splash-screen/pkg/ui"
)

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "splash",
		Short: "Terminal lock screen with a configurable splash overlay",
		Long: `Splash draws a lock screen over the terminal: a background image, clocks
and markup described by a JSON or YAML document. The overlay opens when the
terminal goes idle and closes again after input.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := loadSettings(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplash(cmd.Context(), config.Get())
		},
	}

	// Add subcommands
	cmd.AddCommand(newVersionCmd(version))
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newPreviewCmd())
	cmd.AddCommand(newManCmd())

	// Add flags
	flags := cmd.PersistentFlags()
	flags.String("config", "", "settings file (default $HOME/.config/splash-screen/splash-screen.yaml)")
	flags.String("document", "", "splash document, a file path or http(s) URL")
	flags.String("log-file", "", "file to write logs to")
	flags.Bool("debug", false, "log at debug level")
	flags.Bool("start-open", false, "open the overlay as soon as it is ready")

	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// version needs no settings
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "splash version %s\n", version)
		},
	}
}

// Execute invokes the command.
func Execute(version string) error {
	if err := newRootCmd(version).Execute(); err != nil {
		ui.ShowError(os.Stderr, err.Error())
		return fmt.Errorf("error executing root command: %w", err)
	}

	return nil
}

// loadSettings reads the settings file named by --config (or the default
// search path) and layers the root flags over it.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	config.SetConfigFile(path)
	if _, err := config.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return config.BindFlags(flags)
}

// documentSource returns nil for an empty location so the controller runs on
// the built-in document.
func documentSource(location string) document.Source {
	if location == "" {
		return nil
	}
	return document.NewSource(location)
}

// runSplash runs the lock screen until the user quits.
func runSplash(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()
	log.Info("starting splash screen", "document", cfg.Document, "start_open", cfg.StartOpen)

	clock := clockwork.NewRealClock()
	ctrl := splash.New(splash.Options{
		Source:    documentSource(cfg.Document),
		Clock:     clock,
		Logger:    log,
		StartOpen: cfg.StartOpen,
		Context:   ctx,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	if _, err := tea.NewProgram(views.NewAppModel(ctrl, clock), opts...).Run(); err != nil {
		return fmt.Errorf("error running splash screen: %w", err)
	}
	log.Info("splash screen closed")
	return nil
}
