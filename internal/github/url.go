package github

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ryo246912/gh-unresolved-comments/internal/models"
)

var pullRequestURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/pull/(\d+)$`)

// ParsePullRequestURL extracts owner, repo and number from
// https://github.com/<owner>/<repo>/pull/<number>
func ParsePullRequestURL(rawURL string) (models.PullRequestRef, error) {
	matches := pullRequestURLPattern.FindStringSubmatch(strings.TrimSpace(rawURL))
	if matches == nil {
		return models.PullRequestRef{}, models.NewInvalidInputError(rawURL,
			"expected a pull request URL like https://github.com/owner/repo/pull/123")
	}

	// GraphQL Int is 32-bit
	number, err := strconv.ParseInt(matches[3], 10, 32)
	if err != nil {
		return models.PullRequestRef{}, models.NewInvalidInputError(rawURL, "pull request number is out of range")
	}
	if number <= 0 {
		return models.PullRequestRef{}, models.NewInvalidInputError(rawURL, "pull request number must be positive")
	}

	return models.PullRequestRef{
		Owner:  matches[1],
		Repo:   matches[2],
		Number: int(number),
	}, nil
}
