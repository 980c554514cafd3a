package service

import (
	"fmt"
	"strings"

	"github.com/ryo246912/gh-unresolved-comments/internal/models"
)

// IssueLabel is attached to every created issue
const IssueLabel = "unresolved"

const commentSeparator = "____________"

// FormatIssue renders the issue title and Markdown body. Values are
// substituted verbatim, without Markdown escaping.
func FormatIssue(comments []models.UnresolvedComment, prNumber int) (string, string) {
	title := fmt.Sprintf("Unresolved comments from PR #%d", prNumber)

	var body strings.Builder
	for _, c := range comments {
		fmt.Fprintf(&body, "- **Author**: %s\n", c.Author)
		fmt.Fprintf(&body, "- **File Path**: %s\n", c.FilePath)
		fmt.Fprintf(&body, "- **Created At**: %s\n", c.CreatedAt)
		fmt.Fprintf(&body, "- **Comment**: %s\n", c.Body)
		fmt.Fprintf(&body, "  [View in GitHub](%s)\n", c.URL)
		body.WriteString(commentSeparator + "\n\n")
	}
	return title, body.String()
}

// NewIssueRequest builds the create-issue payload
func NewIssueRequest(comments []models.UnresolvedComment, prNumber int) models.IssueRequest {
	title, body := FormatIssue(comments, prNumber)
	return models.IssueRequest{
		Title:  title,
		Body:   body,
		Labels: []string{IssueLabel},
	}
}
