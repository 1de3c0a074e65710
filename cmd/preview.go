package cmd

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/karthickk/splash-screen/internal/splash"
	"github.com/karthickk/splash-screen/pkg/config"
	"github.com/karthickk/splash-screen/pkg/logger"
)

func newPreviewCmd() *cobra.Command {
	var (
		width  int
		height int
		at     string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print one frame of the open overlay",
		Long: `Render the splash document once with the overlay fully open and print the
frame. Use it to check a document without locking the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("preview size must be positive, got %dx%d", width, height)
			}

			clock := clockwork.NewRealClock()
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at time: %w", err)
				}
				clock = clockwork.NewFakeClockAt(t)
			}

			cfg := config.Get()
			log, err := logger.New(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer log.Sync()

			frame := splash.Preview(splash.Options{
				Source:  documentSource(cfg.Document),
				Clock:   clock,
				Logger:  log,
				Context: cmd.Context(),
			}, width, height)
			fmt.Fprintln(cmd.OutOrStdout(), frame)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "frame width in cells")
	cmd.Flags().IntVar(&height, "height", 24, "frame height in cells")
	cmd.Flags().StringVar(&at, "at", "", "render the clocks at this RFC 3339 time instead of now")

	return cmd
}
