package models

import "fmt"

// UnknownAuthor is used when a comment's author account no longer exists
const UnknownAuthor = "ghost"

// PullRequestRef identifies a pull request
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// FullName returns the owner/repo form
func (r PullRequestRef) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Repo)
}

func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s#%d", r.FullName(), r.Number)
}

// ReviewThread represents a review thread as returned by GraphQL
type ReviewThread struct {
	IsResolved  bool
	IsOutdated  bool
	IsCollapsed bool
	Path        string
	Comments    []ReviewComment
}

// ReviewComment represents a single comment inside a review thread
type ReviewComment struct {
	Author    string
	Body      string
	URL       string
	CreatedAt string
	ID        string
}

// UnresolvedComment is a comment from a thread that is not resolved yet
type UnresolvedComment struct {
	Author    string `json:"author"`
	Body      string `json:"body"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
	ID        string `json:"id"`
	FilePath  string `json:"file_path"`
}

// IssueRequest is the payload for creating an issue
type IssueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

// Issue represents a created issue
type Issue struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}
