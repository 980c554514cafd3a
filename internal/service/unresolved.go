package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/ryo246912/gh-unresolved-comments/internal/github"
	"github.com/ryo246912/gh-unresolved-comments/internal/models"
	"github.com/ryo246912/gh-unresolved-comments/internal/ui"
)

// Output formats for print mode
const (
	OutputIssue = "issue"
	OutputTable = "table"
	OutputJSON  = "json"
)

// DefaultCommentLimit caps both threads and comments per thread
const DefaultCommentLimit = 100

// ValidateFormat checks an output format name
func ValidateFormat(format string) error {
	switch format {
	case OutputIssue, OutputTable, OutputJSON:
		return nil
	}
	return models.NewInvalidInputError(format, "format must be one of issue, table, json")
}

// RunOptions holds everything a single run needs
type RunOptions struct {
	PRURL        string
	CommentLimit int
	CreateIssue  bool
	// HasToken reports whether a credential was resolved; without one the
	// run stays in print mode.
	HasToken bool
	// TargetRepo overrides the repository the issue is filed in
	TargetRepo string
	Format     string
	Confirm    bool
	TableWidth int
}

// UnresolvedService contains the business logic
type UnresolvedService struct {
	client   github.GitHubClient
	prompter ui.Prompter
	out      io.Writer
	logger   *slog.Logger
}

// NewUnresolvedService creates a new service instance
func NewUnresolvedService(client github.GitHubClient, prompter ui.Prompter, out io.Writer, logger *slog.Logger) *UnresolvedService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &UnresolvedService{
		client:   client,
		prompter: prompter,
		out:      out,
		logger:   logger,
	}
}

// Process handles the complete workflow. A malformed PR URL and a failed
// issue creation are reported on the output and do not return an error.
func (s *UnresolvedService) Process(ctx context.Context, opts RunOptions) error {
	ref, err := github.ParsePullRequestURL(opts.PRURL)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return nil
	}

	if opts.CommentLimit <= 0 {
		return models.NewInvalidInputError(fmt.Sprint(opts.CommentLimit), "comment limit must be positive")
	}
	if opts.Format == "" {
		opts.Format = OutputIssue
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return err
	}

	createIssue := opts.CreateIssue
	if !opts.HasToken {
		if createIssue {
			s.logger.Warn("no GitHub token found, issue creation is disabled; printing instead")
			createIssue = false
		} else {
			s.logger.Warn("no GitHub token found, running in read-only mode")
		}
	}

	var target repository.Repository
	if createIssue {
		target, err = s.resolveTarget(ref, opts.TargetRepo)
		if err != nil {
			return err
		}
	}

	data, err := s.client.FetchReviewThreads(ctx, ref, opts.CommentLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch review threads: %w", err)
	}

	comments, err := FilterUnresolved(data)
	if err != nil {
		return fmt.Errorf("failed to read review threads: %w", err)
	}
	s.logger.Debug("filtered review comments", "pr", ref.String(), "unresolved", len(comments))

	if len(comments) == 0 {
		fmt.Fprintln(s.out, "No unresolved comments found.")
		return nil
	}

	if createIssue {
		return s.publish(ctx, target, comments, ref, opts.Confirm)
	}
	return s.print(comments, ref, opts)
}

// resolveTarget picks the repository the issue goes to
func (s *UnresolvedService) resolveTarget(ref models.PullRequestRef, override string) (repository.Repository, error) {
	if override == "" {
		return repository.Repository{Host: github.DefaultHost, Owner: ref.Owner, Name: ref.Repo}, nil
	}
	repo, err := repository.Parse(override)
	if err != nil {
		return repository.Repository{}, models.NewInvalidInputError(override, fmt.Sprintf("invalid repository: %v", err))
	}
	return repo, nil
}

func (s *UnresolvedService) publish(ctx context.Context, target repository.Repository, comments []models.UnresolvedComment, ref models.PullRequestRef, confirm bool) error {
	fullName := target.Owner + "/" + target.Name

	if confirm {
		confirmed, err := s.prompter.ConfirmIssueCreation(fullName, len(comments))
		if err != nil {
			return fmt.Errorf("failed to confirm issue creation: %w", err)
		}
		if !confirmed {
			fmt.Fprintln(s.out, "Issue creation cancelled.")
			return nil
		}
	}

	issue, err := s.client.CreateIssue(ctx, target, NewIssueRequest(comments, ref.Number))
	if err != nil {
		var failure *models.PublishFailure
		if errors.As(err, &failure) {
			s.logger.Warn("issue creation failed", "repo", fullName, "status", failure.StatusCode)
			fmt.Fprintf(s.out, "Failed to create issue. Status code: %d\n", failure.StatusCode)
			return nil
		}
		return fmt.Errorf("failed to create issue: %w", err)
	}

	s.logger.Info("issue created", "repo", fullName, "number", issue.Number)
	fmt.Fprintf(s.out, "Issue created successfully: %s\n", issue.HTMLURL)
	return nil
}

func (s *UnresolvedService) print(comments []models.UnresolvedComment, ref models.PullRequestRef, opts RunOptions) error {
	switch opts.Format {
	case OutputTable:
		return ui.RenderTable(s.out, comments, opts.TableWidth)
	case OutputJSON:
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(comments)
	default:
		title, body := FormatIssue(comments, ref.Number)
		_, err := fmt.Fprintf(s.out, "Issue Title: %s\n\nIssue Body: %s\n", title, body)
		return err
	}
}
