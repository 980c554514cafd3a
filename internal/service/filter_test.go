package service

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ryo246912/gh-unresolved-comments/internal/github"
	"github.com/ryo246912/gh-unresolved-comments/internal/models"
)

func TestFilterUnresolved(t *testing.T) {
	resolved := github.CreateTestThread(true, "resolved.go", 2)
	unresolved := github.CreateTestThread(false, "open.go", 1)
	outdated := github.CreateTestThread(false, "outdated.go", 2)
	outdated.IsOutdated = true
	outdated.IsCollapsed = true

	tests := []struct {
		name        string
		data        github.ReviewData
		expectedIDs []string
		expectPaths []string
	}{
		{
			name:        "one resolved and one unresolved thread",
			data:        github.NewReviewData(resolved, unresolved),
			expectedIDs: []string{"PRRC_1"},
			expectPaths: []string{"open.go"},
		},
		{
			name:        "all threads resolved",
			data:        github.NewReviewData(resolved, resolved),
			expectedIDs: []string{},
			expectPaths: []string{},
		},
		{
			name:        "no threads",
			data:        github.NewReviewData(),
			expectedIDs: []string{},
			expectPaths: []string{},
		},
		{
			name:        "outdated and collapsed threads are kept in order",
			data:        github.NewReviewData(unresolved, resolved, outdated),
			expectedIDs: []string{"PRRC_1", "PRRC_1", "PRRC_2"},
			expectPaths: []string{"open.go", "outdated.go", "outdated.go"},
		},
		{
			name:        "thread without comments contributes nothing",
			data:        github.NewReviewData(github.CreateTestThread(false, "empty.go", 0), unresolved),
			expectedIDs: []string{"PRRC_1"},
			expectPaths: []string{"open.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterUnresolved(tt.data)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got == nil {
				t.Fatalf("Expected a non-nil slice")
			}

			ids := make([]string, 0, len(got))
			paths := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
				paths = append(paths, c.FilePath)
			}
			if !reflect.DeepEqual(ids, tt.expectedIDs) {
				t.Errorf("IDs = %v, want %v", ids, tt.expectedIDs)
			}
			if !reflect.DeepEqual(paths, tt.expectPaths) {
				t.Errorf("Paths = %v, want %v", paths, tt.expectPaths)
			}
		})
	}
}

func TestFilterUnresolved_CopiesFields(t *testing.T) {
	thread := models.ReviewThread{
		Path: "tests/e2e/lib/diskutils",
		Comments: []models.ReviewComment{
			{
				Author:    "dougsland",
				Body:      "looks like out of indent",
				URL:       "https://github.com/containers/bluechi/pull/1#discussion_r1",
				CreatedAt: "2023-09-01T10:00:00Z",
				ID:        "PRRC_kwDO",
			},
		},
	}

	got, err := FilterUnresolved(github.NewReviewData(thread))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []models.UnresolvedComment{
		{
			Author:    "dougsland",
			Body:      "looks like out of indent",
			URL:       "https://github.com/containers/bluechi/pull/1#discussion_r1",
			CreatedAt: "2023-09-01T10:00:00Z",
			ID:        "PRRC_kwDO",
			FilePath:  "tests/e2e/lib/diskutils",
		},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("FilterUnresolved() = %+v, want %+v", got, expected)
	}
}

func TestFilterUnresolved_MissingAuthorAndPath(t *testing.T) {
	thread := github.CreateTestThread(false, "", 1)
	thread.Comments[0].Author = ""
	data := github.NewReviewData(thread)

	got, err := FilterUnresolved(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(got))
	}
	if got[0].Author != models.UnknownAuthor {
		t.Errorf("Author = %q, want %q", got[0].Author, models.UnknownAuthor)
	}
	if got[0].FilePath != "" {
		t.Errorf("FilePath = %q, want empty", got[0].FilePath)
	}

	// author key missing entirely
	comment := commentNodes(data)[0]
	delete(comment, "author")
	got, err = FilterUnresolved(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got[0].Author != models.UnknownAuthor {
		t.Errorf("Author = %q, want %q", got[0].Author, models.UnknownAuthor)
	}
}

func TestFilterUnresolved_ShapeErrors(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(github.ReviewData)
		expectedPath string
		contains     string
	}{
		{
			name:         "missing data",
			mutate:       func(d github.ReviewData) { delete(d, "data") },
			expectedPath: "$.data",
		},
		{
			name: "repository is null with graphql errors",
			mutate: func(d github.ReviewData) {
				d["data"].(map[string]interface{})["repository"] = nil
				d["errors"] = []interface{}{
					map[string]interface{}{"message": "Could not resolve to a Repository with the name 'o/r'."},
				}
			},
			expectedPath: "$.data.repository",
			contains:     "Could not resolve to a Repository",
		},
		{
			name: "edges is not an array",
			mutate: func(d github.ReviewData) {
				threads(d)["edges"] = "nope"
			},
			expectedPath: "$.data.repository.pullRequest.reviewThreads.edges",
		},
		{
			name: "missing isResolved",
			mutate: func(d github.ReviewData) {
				delete(firstNode(d), "isResolved")
			},
			expectedPath: "$.data.repository.pullRequest.reviewThreads.edges[0].node.isResolved",
		},
		{
			name: "missing comments",
			mutate: func(d github.ReviewData) {
				delete(firstNode(d), "comments")
			},
			expectedPath: "$.data.repository.pullRequest.reviewThreads.edges[0].node.comments",
		},
		{
			name: "body is not a string",
			mutate: func(d github.ReviewData) {
				commentNodes(d)[0]["body"] = 42.0
			},
			expectedPath: "$.data.repository.pullRequest.reviewThreads.edges[0].node.comments.nodes[0].body",
			contains:     "expected a string, got number",
		},
		{
			name: "missing id",
			mutate: func(d github.ReviewData) {
				delete(commentNodes(d)[0], "id")
			},
			expectedPath: "$.data.repository.pullRequest.reviewThreads.edges[0].node.comments.nodes[0].id",
		},
		{
			name: "missing isOutdated",
			mutate: func(d github.ReviewData) {
				delete(firstNode(d), "isOutdated")
			},
			expectedPath: "$.data.repository.pullRequest.reviewThreads.edges[0].node.isOutdated",
		},
		{
			name: "resolved thread with null isCollapsed still fails",
			mutate: func(d github.ReviewData) {
				firstNode(d)["isResolved"] = true
				firstNode(d)["isCollapsed"] = nil
			},
			expectedPath: "$.data.repository.pullRequest.reviewThreads.edges[0].node.isCollapsed",
			contains:     "expected a boolean, got null",
		},
		{
			name: "resolved thread with malformed comment still fails",
			mutate: func(d github.ReviewData) {
				firstNode(d)["isResolved"] = true
				delete(commentNodes(d)[0], "url")
			},
			expectedPath: "$.data.repository.pullRequest.reviewThreads.edges[0].node.comments.nodes[0].url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := github.NewReviewData(github.CreateTestThread(false, "a.go", 1))
			tt.mutate(data)

			got, err := FilterUnresolved(data)
			if err == nil {
				t.Fatalf("Expected error but got %+v", got)
			}

			var shapeErr *models.DataShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("Expected DataShapeError, got %T: %v", err, err)
			}
			if shapeErr.Path != tt.expectedPath {
				t.Errorf("Path = %q, want %q", shapeErr.Path, tt.expectedPath)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Error %q should contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func threads(d github.ReviewData) map[string]interface{} {
	repo := d["data"].(map[string]interface{})["repository"].(map[string]interface{})
	return repo["pullRequest"].(map[string]interface{})["reviewThreads"].(map[string]interface{})
}

func firstNode(d github.ReviewData) map[string]interface{} {
	edges := threads(d)["edges"].([]interface{})
	return edges[0].(map[string]interface{})["node"].(map[string]interface{})
}

func commentNodes(d github.ReviewData) []map[string]interface{} {
	nodes := firstNode(d)["comments"].(map[string]interface{})["nodes"].([]interface{})
	out := make([]map[string]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = n.(map[string]interface{})
	}
	return out
}
