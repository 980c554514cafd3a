package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/ryo246912/gh-unresolved-comments/internal/config"
	"github.com/ryo246912/gh-unresolved-comments/internal/github"
	"github.com/ryo246912/gh-unresolved-comments/internal/logging"
	"github.com/ryo246912/gh-unresolved-comments/internal/service"
	"github.com/ryo246912/gh-unresolved-comments/internal/ui"
	"github.com/spf13/cobra"
)

type flags struct {
	githubToken  string
	createIssue  bool
	commentLimit int
	repo         string
	format       string
	confirm      bool
	timeout      time.Duration
	logLevel     string
	configPath   string
	envFile      string
	ghAuth       bool
	debugHTTP    bool
}

// overrides collects the flags the user actually set
func (f *flags) overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	changed := cmd.Flags().Changed
	if changed("comment-limit") {
		o.CommentLimit = &f.commentLimit
	}
	if changed("create-issue") {
		o.CreateIssue = &f.createIssue
	}
	if changed("repo") {
		o.Repo = &f.repo
	}
	if changed("format") {
		o.Format = &f.format
	}
	if changed("confirm") {
		o.Confirm = &f.confirm
	}
	if changed("timeout") {
		o.Timeout = &f.timeout
	}
	if changed("log-level") {
		o.LogLevel = &f.logLevel
	}
	if changed("gh-auth") {
		o.UseGHAuth = &f.ghAuth
	}
	return o
}

// app carries the process streams so the command can run in tests
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	terminal term.Term
	prompter ui.Prompter
	// clientOptions is applied on top of the resolved client options
	clientOptions func(*github.Options)
}

func (a *app) run(ctx context.Context, cmd *cobra.Command, f *flags, prURL string) error {
	e, err := config.LoadEnv(f.envFile)
	if err != nil {
		return err
	}

	configPath := f.configPath
	if configPath == "" {
		configPath = e.ConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Apply(e.Overrides())
	cfg.Apply(f.overrides(cmd))
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(a.stderr, logging.Options{
		Level:   level,
		NoColor: !a.terminal.IsColorEnabled(),
	})

	cred := config.ResolveToken(f.githubToken, e, cfg.UseGHAuth, github.DefaultHost)
	if cred.Present() {
		logger.Debug("using GitHub token", "source", cred.Source)
	}

	opts := github.Options{
		Token:   cred.Token,
		Timeout: cfg.Timeout,
		Logger:  logger,
	}
	if f.debugHTTP {
		opts.HTTPLog = a.stderr
	}
	if a.clientOptions != nil {
		a.clientOptions(&opts)
	}

	client, err := github.NewClient(opts)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	tableWidth := ui.DefaultTableWidth
	if a.terminal.IsTerminalOutput() {
		if width, _, err := a.terminal.Size(); err == nil && width > 0 {
			tableWidth = width
		}
	}

	unresolvedService := service.NewUnresolvedService(client, a.prompter, a.stdout, logger)
	return unresolvedService.Process(ctx, service.RunOptions{
		PRURL:        prURL,
		CommentLimit: cfg.CommentLimit,
		CreateIssue:  cfg.CreateIssue,
		HasToken:     cred.Present(),
		TargetRepo:   cfg.Repo,
		Format:       cfg.Format,
		Confirm:      cfg.Confirm,
		TableWidth:   tableWidth,
	})
}

func newRootCmd(a *app) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "gh-unresolved-comments <pr_url>",
		Short: "Collect unresolved review comments of a pull request",
		Long: `Collect the comments of every unresolved review thread on a GitHub pull
request and print them, or file them as a new issue with --create-issue.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "" {
				return cmd.Usage()
			}
			return a.run(cmd.Context(), cmd, f, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	fl := cmd.Flags()
	fl.StringVar(&f.githubToken, "github-token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	fl.BoolVar(&f.createIssue, "create-issue", false, "Create an issue with the unresolved comments")
	fl.IntVar(&f.commentLimit, "comment-limit", service.DefaultCommentLimit, "Maximum number of review threads and comments per thread to fetch")
	fl.StringVar(&f.repo, "repo", "", "Repository to create the issue in (OWNER/REPO, defaults to the pull request's)")
	fl.StringVar(&f.format, "format", service.OutputIssue, "Output format when not creating an issue: issue, table or json")
	fl.BoolVar(&f.confirm, "confirm", false, "Ask before creating the issue")
	fl.DurationVar(&f.timeout, "timeout", 0, "Timeout for each GitHub request (0 disables it)")
	fl.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	fl.StringVar(&f.configPath, "config", "", "Path to a YAML config file (defaults to GH_UNRESOLVED_CONFIG)")
	fl.StringVar(&f.envFile, "env-file", "", "Path to a .env file to read variables from")
	fl.BoolVar(&f.ghAuth, "gh-auth", false, "Fall back to the gh CLI credentials when no token is given")
	fl.BoolVar(&f.debugHTTP, "debug-http", false, "Log HTTP requests and responses to stderr")

	return cmd
}

func main() {
	a := &app{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		terminal: term.FromEnv(),
		prompter: &ui.DefaultPrompter{},
	}

	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		logger := logging.NewLogger(os.Stderr, logging.Options{
			Level:   slog.LevelInfo,
			NoColor: !a.terminal.IsColorEnabled(),
		})
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
