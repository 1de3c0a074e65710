package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// DisplayHeader writes the application banner followed by a boxed table of
// label/value rows.
func DisplayHeader(w io.Writer, rows [][]string) error {
	s, err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("Splash", pterm.NewStyle(pterm.FgMagenta)),
	).Srender()
	if err != nil {
		return fmt.Errorf("error rendering header: %w", err)
	}
	fmt.Fprintln(w, s)

	if len(rows) == 0 {
		return nil
	}
	return DisplayTable(w, rows)
}

// DisplayTable writes rows as a boxed table without a header row.
func DisplayTable(w io.Writer, rows [][]string) error {
	table, err := pterm.DefaultTable.WithHasHeader(false).
		WithBoxed(true).
		WithData(rows).
		Srender()
	if err != nil {
		return fmt.Errorf("error rendering table: %w", err)
	}
	fmt.Fprintln(w, table)
	return nil
}

// ShowError displays an error message in red
func ShowError(w io.Writer, msg string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", red("❌ Error:"), msg)
}

// ShowSuccess displays a success message in green
func ShowSuccess(w io.Writer, msg string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", green("✅ Success:"), msg)
}

// ShowInfo displays an info message in blue
func ShowInfo(w io.Writer, msg string) {
	blue := color.New(color.FgBlue).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", blue("ℹ️  Info:"), msg)
}

// ShowWarning displays a warning message in yellow
func ShowWarning(w io.Writer, msg string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", yellow("⚠️  Warning:"), msg)
}
