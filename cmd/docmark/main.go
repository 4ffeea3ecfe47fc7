package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"docmark/internal/config"

	"github.com/spf13/cobra"
)

// errNothingToDocument is reported when a package exports nothing.
var errNothingToDocument = errors.New("nothing to document")

var (
	rootCmd = &cobra.Command{
		Use:   "docmark [path]",
		Short: "Generate a Markdown API page for a Go package",
		Long: `docmark reads the Go source files of one package (or a single file) and
renders every exported declaration with its doc comment into one Markdown
page with a linked index.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runGenerate,
	}

	flags struct {
		write   bool
		html    bool
		model   bool
		cache   string
		config  string
		verbose bool
	}

	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errNothingToDocument) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&flags.write, "write", "w", false, "Write the page into the package directory instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&flags.html, "html", false, "Also write an HTML rendering of the page")
	rootCmd.PersistentFlags().BoolVar(&flags.model, "model", false, "Also write the validated doc_model.json")
	rootCmd.PersistentFlags().StringVar(&flags.cache, "cache", "", "Path to the SQLite extraction cache")
	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to the config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(watchCmd)
}

// setup loads configuration and lets explicitly set flags win over it.
func setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	loaded, err := config.LoadConfig(flags.config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	fs := cmd.Flags()
	if fs.Changed("html") {
		cfg.Output.HTML = flags.html
	}
	if fs.Changed("model") {
		cfg.Output.Model = flags.model
	}
	if fs.Changed("cache") {
		cfg.Cache.Path = flags.cache
	}
	return nil
}

func targetPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_, err := generate(cmd.Context(), cfg, targetPath(args), flags.write, cmd.OutOrStdout())
	return err
}
