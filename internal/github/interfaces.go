package github

import (
	"context"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/ryo246912/gh-unresolved-comments/internal/models"
)

// ReviewData is the decoded GraphQL response body, kept as-is
type ReviewData map[string]interface{}

// GitHubClient defines the interface for GitHub operations
type GitHubClient interface {
	FetchReviewThreads(ctx context.Context, ref models.PullRequestRef, limit int) (ReviewData, error)
	CreateIssue(ctx context.Context, repo repository.Repository, issue models.IssueRequest) (*models.Issue, error)
}

// Ensure Client implements GitHubClient interface
var _ GitHubClient = (*Client)(nil)
