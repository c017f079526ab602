package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-roleform/internal/app"
	"github.com/goliatone/go-roleform/internal/config"
	"github.com/goliatone/go-roleform/internal/lint"
	"github.com/goliatone/go-roleform/internal/logging"
	"github.com/goliatone/go-roleform/pkg/model"
	"github.com/goliatone/go-roleform/pkg/renderers/tui"
	"github.com/goliatone/go-roleform/pkg/renderers/vanilla"
)

func main() {
	if err := newRootCmd(&cli{stdout: os.Stdout}).Execute(); err != nil {
		os.Exit(1)
	}
}

// cli holds the persistent flags and the state shared by subcommands.
type cli struct {
	envFile      string
	logLevel     string
	logFormat    string
	locale       string
	themeVariant string
	sink         string
	format       string

	stdout  io.Writer
	appOpts []app.Option

	logger *zap.Logger
	app    *app.App
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "roleform",
		Short: "Role-dependent employee registration form",
		Long: `roleform serves and renders the employee registration form.

The role selector decides which extra field group is shown:
developers describe their tech stack and GitHub profile, designers
their tools and portfolio, planners their experience and projects.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.envFile, "env-file", ".env", "Optional .env file loaded before the environment")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&c.logFormat, "log-format", "", "Log format (console, json)")
	flags.StringVar(&c.locale, "locale", "", "Default locale (en, ko)")
	flags.StringVar(&c.themeVariant, "theme-variant", "", "Theme variant (light, dark)")
	flags.StringVar(&c.sink, "sink", "", "Submission sink (log, stdout)")

	root.AddCommand(c.serveCmd(), c.fillCmd(), c.renderCmd(), c.lintCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.envFile)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Logger.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Logger.Format = c.logFormat
	}
	if c.locale != "" {
		cfg.Locale = c.locale
	}
	if c.themeVariant != "" {
		cfg.ThemeVariant = c.themeVariant
	}
	if c.sink != "" {
		cfg.Sink = c.sink
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return err
	}
	c.logger = logger

	format, err := tui.ParseOutputFormat(c.format)
	if err != nil {
		return err
	}

	opts := append([]app.Option{app.WithStdout(c.stdout), app.WithOutputFormat(format)}, c.appOpts...)
	a, err := app.New(cfg, logger, opts...)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *cli) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registration form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.app.Config.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.app.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides ROLEFORM_ADDR)")
	return cmd
}

func (c *cli) fillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in the registration form interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.app.Fill(cmd.Context(), "")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.stdout, strings.TrimRight(string(out), "\n"))
			return err
		},
	}
	cmd.Flags().StringVar(&c.format, "format", string(tui.OutputFormatJSON), "Result format (json, form, pretty)")
	return cmd
}

func (c *cli) renderCmd() *cobra.Command {
	var renderer, role, output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form page as static HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			html, err := c.app.RenderForm(cmd.Context(), renderer, role, "")
			if err != nil {
				return err
			}
			if output == "" {
				_, err = c.stdout.Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(c.stdout, "Form written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&renderer, "renderer", vanilla.Name, "Renderer to use (vanilla, tui)")
	cmd.Flags().StringVar(&role, "role", "", "Preselected role (developer, designer, planner)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	return cmd
}

// errLintFailed is returned when any document has violations.
var errLintFailed = errors.New("lint: unsupported extensions found")

func (c *cli) lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint OpenAPI documents for unsupported x-roleform UI extensions",
		Long: `Lint OpenAPI documents for unsupported x-roleform UI extensions and
visibility rules that do not compile. Without arguments the embedded
registration document is checked.`,
		RunE: func(cmd *cobra.Command, paths []string) error {
			var violations []lint.Violation
			if len(paths) == 0 {
				found, err := lint.Document(cmd.Context(), "registration.openapi.yaml", model.RegistrationDocument())
				if err != nil {
					return err
				}
				violations = found
			}
			for _, path := range paths {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				found, err := lint.Document(cmd.Context(), path, raw)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				violations = append(violations, found...)
			}
			for _, v := range violations {
				fmt.Fprintln(c.stdout, v)
			}
			if len(violations) > 0 {
				return errLintFailed
			}
			return nil
		},
	}
}
