package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/karthickk/splash-screen/internal/content"
	"github.com/karthickk/splash-screen/internal/document"
	"github.com/karthickk/splash-screen/pkg/config"
	"github.com/karthickk/splash-screen/pkg/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the splash document and settings",
		Long:  `Create, inspect and validate the splash document, and change application settings.`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigValidateCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a splash document interactively",
		Long:  `Initialize the splash document by prompting for the background, transition and timeout.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show settings and the merged document",
		Long:  `Display the current settings and the splash document merged over the defaults.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a specific setting and save it to the settings file.
Keys: ` + strings.Join(config.Keys, ", ") + `.`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}

	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate settings and the splash document",
		Long:  `Validate the current settings and report every document value that would be ignored.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigValidate,
	}

	return cmd
}

// initAnswers are the document values config init asks for.
type initAnswers struct {
	Location      string `survey:"location"`
	Image         string `survey:"image"`
	Transition    string `survey:"transition"`
	ActiveTimeout string `survey:"activetimeout"`
	Fit           bool   `survey:"fit"`
	Filter        bool   `survey:"filter"`
	Vignette      bool   `survey:"vignette"`
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🚀 Initializing splash document...")
	fmt.Fprintln(out)

	cfg := config.Get()
	defaults := document.Default()
	answers := initAnswers{}

	questions := []*survey.Question{
		{
			Name:     "location",
			Prompt:   &survey.Input{Message: "Document file:", Default: cfg.Document},
			Validate: survey.ComposeValidators(survey.Required, localPath),
		},
		{
			Name:   "image",
			Prompt: &survey.Input{Message: "Background image (path or URL, empty for none):"},
		},
		{
			Name: "transition",
			Prompt: &survey.Select{
				Message: "Transition:",
				Options: []string{string(document.TransitionFade), string(document.TransitionSlide)},
				Default: string(defaults.Transition),
			},
		},
		{
			Name: "activetimeout",
			Prompt: &survey.Input{
				Message: "Seconds before the overlay closes again:",
				Default: strconv.Itoa(int(defaults.ActiveTimeout.Seconds())),
			},
			Validate: seconds,
		},
		{
			Name:   "fit",
			Prompt: &survey.Confirm{Message: "Scale the image to cover the screen?", Default: defaults.Fit},
		},
		{
			Name:   "filter",
			Prompt: &survey.Confirm{Message: "Blur and dim the image?", Default: defaults.Filter},
		},
		{
			Name:   "vignette",
			Prompt: &survey.Confirm{Message: "Darken the edges?", Default: defaults.Vignette},
		},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	if err := writeDocument(answers); err != nil {
		return err
	}
	if err := config.Update("document", answers.Location); err != nil {
		return fmt.Errorf("failed to save document location: %w", err)
	}

	fmt.Fprintln(out)
	ui.ShowSuccess(out, fmt.Sprintf("Document written to %s", answers.Location))
	ui.ShowInfo(out, "Run 'splash preview' to see it.")

	return nil
}

func localPath(val interface{}) error {
	s, _ := val.(string)
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return errors.New("config init can only write local files")
	}
	return nil
}

func seconds(val interface{}) error {
	s, _ := val.(string)
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}

// writeDocument sets the answered keys in the document at answers.Location,
// keeping anything else already in it, and writes it back as JSON or YAML
// depending on the file extension.
func writeDocument(answers initAnswers) error {
	path := answers.Location
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if data, err := os.ReadFile(path); err == nil {
		if root, err = document.Parse(data); err != nil {
			return fmt.Errorf("existing document %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if answers.Image == "" {
		setKey(root, "img", scalar("!!bool", "false"))
	} else {
		setKey(root, "img", scalar("!!str", answers.Image))
	}
	setKey(root, "transition", scalar("!!str", answers.Transition))
	setKey(root, "active-timeout", scalar(numberTag(answers.ActiveTimeout), answers.ActiveTimeout))
	setKey(root, "fit", scalar("!!bool", strconv.FormatBool(answers.Fit)))
	setKey(root, "filter", scalar("!!bool", strconv.FormatBool(answers.Filter)))
	setKey(root, "vignette", scalar("!!bool", strconv.FormatBool(answers.Vignette)))

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = document.EncodeYAML(root)
	default:
		data, err = document.EncodeJSON(root)
	}
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating document directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func numberTag(s string) string {
	if _, err := strconv.Atoi(s); err == nil {
		return "!!int"
	}
	return "!!float"
}

// setKey replaces the value of key in mapping m, or appends the pair.
func setKey(m *yaml.Node, key string, val *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = val
			return
		}
	}
	m.Content = append(m.Content, scalar("!!str", key), val)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := config.Get()

	if err := ui.DisplayHeader(out, settingRows(cfg)); err != nil {
		return err
	}

	doc, err := document.Resolve(cmd.Context(), documentSource(cfg.Document))
	if err != nil {
		ui.ShowWarning(out, fmt.Sprintf("%v; showing the defaults", err))
	}
	data, err := document.EncodeYAML(doc.Raw)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "🖼  Document:")
	fmt.Fprint(out, string(data))

	return nil
}

func settingRows(cfg *config.Config) [][]string {
	return [][]string{
		{"Settings file", config.File()},
		{"Document", cfg.Document},
		{"Log level", cfg.LogLevel},
		{"Log file", cfg.LogFile},
		{"Start open", strconv.FormatBool(cfg.StartOpen)},
		{"Mouse", strconv.FormatBool(cfg.Mouse)},
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value, err := settingValue(key, args[1])
	if err != nil {
		return err
	}

	if err := config.Update(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	ui.ShowSuccess(cmd.OutOrStdout(), fmt.Sprintf("Set %s = %v", key, value))
	return nil
}

// settingValue converts raw to the type the setting holds.
func settingValue(key, raw string) (interface{}, error) {
	switch key {
	case "start_open", "mouse":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false, got %q", key, raw)
		}
		return b, nil
	default:
		return raw, nil
	}
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🔍 Validating splash configuration...")
	fmt.Fprintln(out)

	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	ui.ShowSuccess(out, "Settings are valid")

	doc, err := document.Resolve(cmd.Context(), documentSource(cfg.Document))
	if err != nil && !errors.Is(err, document.ErrNoSource) {
		return fmt.Errorf("document validation failed: %w", err)
	}

	problems := documentProblems(doc)
	for _, p := range problems {
		ui.ShowWarning(out, p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("document has %d ignored value(s)", len(problems))
	}

	ui.ShowSuccess(out, fmt.Sprintf("Document %s is valid", cfg.Document))
	return nil
}

// documentProblems lists everything normalisation or rendering would skip.
func documentProblems(doc *document.Document) []string {
	var problems []string
	for _, err := range doc.Issues {
		problems = append(problems, err.Error())
	}
	for _, entry := range doc.Content {
		if entry.Kind == document.KindUnknown {
			problems = append(problems, fmt.Sprintf("content %q: unknown content type", entry.Name))
		}
		for _, err := range entry.Issues {
			problems = append(problems, fmt.Sprintf("content %q: %v", entry.Name, err))
		}
		for _, frag := range entry.Fragments {
			for _, op := range frag.Ops {
				if !content.IsFragmentOp(op.Name) {
					problems = append(problems, fmt.Sprintf("content %q: unknown operation %q", entry.Name, op.Name))
				}
			}
		}
	}
	return problems
}
