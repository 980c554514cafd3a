package service

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/ryo246912/gh-unresolved-comments/internal/models"
)

func diff(want, got string) string {
	text, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	return text
}

func TestFormatIssue(t *testing.T) {
	tests := []struct {
		name          string
		comments      []models.UnresolvedComment
		prNumber      int
		expectedTitle string
		expectedBody  string
	}{
		{
			name: "single comment block",
			comments: []models.UnresolvedComment{
				{
					Author:    "dougsland",
					Body:      "looks like out of indent",
					URL:       "https://github.com/containers/bluechi/pull/752#discussion_r1",
					CreatedAt: "2024-01-15T10:00:00Z",
					ID:        "PRRC_1",
					FilePath:  "tests/e2e/lib/diskutils",
				},
			},
			prNumber:      752,
			expectedTitle: "Unresolved comments from PR #752",
			expectedBody: "- **Author**: dougsland\n" +
				"- **File Path**: tests/e2e/lib/diskutils\n" +
				"- **Created At**: 2024-01-15T10:00:00Z\n" +
				"- **Comment**: looks like out of indent\n" +
				"  [View in GitHub](https://github.com/containers/bluechi/pull/752#discussion_r1)\n" +
				"____________\n" +
				"\n",
		},
		{
			name: "markdown is not escaped and order is kept",
			comments: []models.UnresolvedComment{
				{Author: "b", Body: "**bold** _x_", URL: "u2", CreatedAt: "t2", FilePath: "x_y.go"},
				{Author: "a", Body: "`code`", URL: "u1", CreatedAt: "t1", FilePath: ""},
			},
			prNumber:      3,
			expectedTitle: "Unresolved comments from PR #3",
			expectedBody: "- **Author**: b\n" +
				"- **File Path**: x_y.go\n" +
				"- **Created At**: t2\n" +
				"- **Comment**: **bold** _x_\n" +
				"  [View in GitHub](u2)\n" +
				"____________\n" +
				"\n" +
				"- **Author**: a\n" +
				"- **File Path**: \n" +
				"- **Created At**: t1\n" +
				"- **Comment**: `code`\n" +
				"  [View in GitHub](u1)\n" +
				"____________\n" +
				"\n",
		},
		{
			name:          "no comments",
			comments:      nil,
			prNumber:      1,
			expectedTitle: "Unresolved comments from PR #1",
			expectedBody:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := FormatIssue(tt.comments, tt.prNumber)
			if title != tt.expectedTitle {
				t.Errorf("title = %q, want %q", title, tt.expectedTitle)
			}
			if body != tt.expectedBody {
				t.Errorf("body mismatch:\n%s", diff(tt.expectedBody, body))
			}
		})
	}
}

func TestFormatIssue_IdempotentAndCountable(t *testing.T) {
	comments := make([]models.UnresolvedComment, 0, 7)
	for _, author := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		comments = append(comments, models.UnresolvedComment{
			Author:    author,
			Body:      "multi\nline body",
			URL:       "https://example.com/" + author,
			CreatedAt: "2024-01-01T00:00:00Z",
			FilePath:  "dir/" + author + ".go",
		})
	}

	_, first := FormatIssue(comments, 10)
	_, second := FormatIssue(comments, 10)
	if first != second {
		t.Errorf("FormatIssue is not deterministic:\n%s", diff(first, second))
	}

	if got := strings.Count(first, "- **Author**: "); got != len(comments) {
		t.Errorf("Found %d author lines, want %d", got, len(comments))
	}
	if got := strings.Count(first, "\n"+commentSeparator+"\n\n"); got != len(comments) {
		t.Errorf("Found %d separators, want %d", got, len(comments))
	}
	if !strings.HasPrefix(first, "- **Author**: a\n") || !strings.HasSuffix(first, "https://example.com/g)\n____________\n\n") {
		t.Errorf("Blocks are not in input order:\n%s", first)
	}
}

func TestNewIssueRequest(t *testing.T) {
	comments := []models.UnresolvedComment{{Author: "a", Body: "b", URL: "u", CreatedAt: "t", FilePath: "p"}}

	req := NewIssueRequest(comments, 42)

	title, body := FormatIssue(comments, 42)
	if req.Title != title || req.Body != body {
		t.Errorf("NewIssueRequest() = %+v, want title %q and formatted body", req, title)
	}
	if len(req.Labels) != 1 || req.Labels[0] != "unresolved" {
		t.Errorf("Labels = %v, want [unresolved]", req.Labels)
	}
}
