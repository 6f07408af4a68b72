package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/helmcode/agridetect/pkg/api"
	"github.com/helmcode/agridetect/pkg/config"
	"github.com/helmcode/agridetect/pkg/formatter"
	"github.com/helmcode/agridetect/pkg/i18n"
	"github.com/spf13/cobra"
)

// ErrSilent makes the process exit non-zero after a failure that has
// already been reported to the user.
var ErrSilent = errors.New("command failed")

var (
	envFile      string
	apiURL       string
	locale       string
	outputFormat string
	verbose      bool
)

// AddGlobalFlags registers the flags shared by every subcommand.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file with AGRIDETECT_* settings")
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "AgriDetect API base URL (overrides AGRIDETECT_API_URL)")
	root.PersistentFlags().StringVar(&locale, "locale", "", "Message language (en, fr)")
	root.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// SetupLogging routes diagnostics to stderr when verbose, and drops them
// otherwise.
func SetupLogging() {
	if verbose {
		log.SetHandler(cli.New(os.Stderr))
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetHandler(discard.New())
}

type setup struct {
	cfg     *config.Config
	client  *api.Client
	catalog *i18n.Catalog
}

func loadSetup() (*setup, error) {
	if !formatter.ValidFormat(outputFormat) {
		return nil, fmt.Errorf("unsupported output format: %s (supported: human, json, yaml)", outputFormat)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if apiURL != "" {
		cfg.BaseURL = apiURL
	}
	if locale != "" {
		cfg.Locale = locale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"api_url": cfg.BaseURL,
		"prefix":  cfg.APIPrefix,
		"locale":  cfg.Locale,
	}).Debug("configuration loaded")

	return &setup{
		cfg:     cfg,
		client:  api.New(cfg),
		catalog: i18n.New(cfg.Locale),
	}, nil
}

func human() bool {
	return outputFormat == formatter.FormatHuman
}

func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	return s
}

func printHeader(w io.Writer, title string, lines ...string) {
	if !human() {
		return
	}
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w)
	cyan.Fprintln(w, title)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}

func printSuccess(w io.Writer, msg string) {
	if !human() {
		return
	}
	green := color.New(color.FgGreen)
	green.Fprintf(w, "✓ %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	red.Fprintf(os.Stderr, "✗ %s\n", msg)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
