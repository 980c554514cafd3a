package github

import (
	"context"
	"fmt"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/ryo246912/gh-unresolved-comments/internal/models"
)

// MockClient implements GitHubClient for testing
type MockClient struct {
	// Control test behavior
	ReviewData   ReviewData
	FetchError   error
	CreatedIssue *models.Issue
	CreateError  error

	// Track method calls
	FetchReviewThreadsCalled bool
	CreateIssueCalled        bool
	CreateIssueCalls         int

	// Store call arguments for verification
	LastRef   models.PullRequestRef
	LastLimit int
	LastRepo  repository.Repository
	LastIssue models.IssueRequest
}

// FetchReviewThreads mocks the GraphQL API call
func (m *MockClient) FetchReviewThreads(ctx context.Context, ref models.PullRequestRef, limit int) (ReviewData, error) {
	m.FetchReviewThreadsCalled = true
	m.LastRef = ref
	m.LastLimit = limit
	return m.ReviewData, m.FetchError
}

// CreateIssue mocks the issue creation call
func (m *MockClient) CreateIssue(ctx context.Context, repo repository.Repository, issue models.IssueRequest) (*models.Issue, error) {
	m.CreateIssueCalled = true
	m.CreateIssueCalls++
	m.LastRepo = repo
	m.LastIssue = issue
	return m.CreatedIssue, m.CreateError
}

// NewReviewData builds a response body shaped like the review threads query result
func NewReviewData(threads ...models.ReviewThread) ReviewData {
	edges := make([]interface{}, 0, len(threads))
	for _, thread := range threads {
		nodes := make([]interface{}, 0, len(thread.Comments))
		for _, comment := range thread.Comments {
			var author interface{}
			if comment.Author != "" {
				author = map[string]interface{}{"login": comment.Author}
			}
			nodes = append(nodes, map[string]interface{}{
				"author":    author,
				"body":      comment.Body,
				"url":       comment.URL,
				"createdAt": comment.CreatedAt,
				"id":        comment.ID,
			})
		}
		var path interface{}
		if thread.Path != "" {
			path = thread.Path
		}
		edges = append(edges, map[string]interface{}{
			"node": map[string]interface{}{
				"isResolved":  thread.IsResolved,
				"isOutdated":  thread.IsOutdated,
				"isCollapsed": thread.IsCollapsed,
				"path":        path,
				"comments": map[string]interface{}{
					"nodes": nodes,
				},
			},
		})
	}

	return ReviewData{
		"data": map[string]interface{}{
			"repository": map[string]interface{}{
				"pullRequest": map[string]interface{}{
					"url":            "https://github.com/owner/repo/pull/1",
					"reviewDecision": "CHANGES_REQUESTED",
					"reviewThreads": map[string]interface{}{
						"edges": edges,
					},
				},
			},
		},
	}
}

// CreateTestThread builds a thread with count comments
func CreateTestThread(resolved bool, path string, count int) models.ReviewThread {
	comments := make([]models.ReviewComment, count)
	for i := 0; i < count; i++ {
		comments[i] = models.ReviewComment{
			Author:    fmt.Sprintf("user%d", i+1),
			Body:      fmt.Sprintf("comment %d on %s", i+1, path),
			URL:       fmt.Sprintf("https://github.com/owner/repo/pull/1#discussion_r%d", i+1),
			CreatedAt: "2023-01-01T12:00:00Z",
			ID:        fmt.Sprintf("PRRC_%d", i+1),
		}
	}
	return models.ReviewThread{
		IsResolved: resolved,
		Path:       path,
		Comments:   comments,
	}
}

// NewNetworkError returns an error that is not one of the typed API errors
func NewNetworkError() error {
	return fmt.Errorf("network connection failed")
}
