package github

import (
	"fmt"

	"github.com/ryo246912/gh-unresolved-comments/internal/models"
)

// The limit is inlined because it applies to two connections; the
// variables stay {owner, repo, pr}.
const reviewThreadsQueryTemplate = `
query ($owner: String!, $repo: String!, $pr: Int!) {
  repository(owner: $owner, name: $repo) {
    pullRequest(number: $pr) {
      url
      reviewDecision
      reviewThreads(first: %[1]d) {
        edges {
          node {
            isResolved
            isOutdated
            isCollapsed
            path
            comments(first: %[1]d) {
              nodes {
                author {
                  login
                }
                body
                url
                createdAt
                id
              }
            }
          }
        }
      }
    }
  }
}
`

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func reviewThreadsQuery(limit int) string {
	return fmt.Sprintf(reviewThreadsQueryTemplate, limit)
}

func reviewThreadsVariables(ref models.PullRequestRef) map[string]interface{} {
	return map[string]interface{}{
			"owner": ref.Owner,
		"repo":  ref.Repo,
		"pr":    ref.Number,
	}
}
