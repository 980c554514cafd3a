package service

import (
	"errors"
	"fmt"

	"github.com/ryo246912/gh-unresolved-comments/internal/github"
	"github.com/ryo246912/gh-unresolved-comments/internal/models"
)

// FilterUnresolved flattens the comments of every thread that is not
// resolved, keeping the order of the response. Outdated and collapsed
// threads are included. A response missing any expected key is a
// DataShapeError.
func FilterUnresolved(data github.ReviewData) ([]models.UnresolvedComment, error) {
	threads, err := DecodeReviewThreads(data)
	if err != nil {
		return nil, err
	}

	unresolved := make([]models.UnresolvedComment, 0)
	for _, thread := range threads {
		if thread.IsResolved {
			continue
		}
		for _, comment := range thread.Comments {
			unresolved = append(unresolved, models.UnresolvedComment{
				Author:    comment.Author,
				Body:      comment.Body,
				URL:       comment.URL,
				CreatedAt: comment.CreatedAt,
				ID:        comment.ID,
				FilePath:  thread.Path,
			})
		}
	}
	return unresolved, nil
}

// DecodeReviewThreads reads data.repository.pullRequest.reviewThreads.edges.
// Every thread is checked, resolved or not, so a malformed response fails
// even when its broken part would have been filtered out.
func DecodeReviewThreads(data github.ReviewData) ([]models.ReviewThread, error) {
	root := shape{path: "$", value: map[string]interface{}(data)}

	edges, err := root.field("data").field("repository").field("pullRequest").
		field("reviewThreads").field("edges").list()
	if err != nil {
		return nil, withGraphQLErrors(err, data)
	}

	threads := make([]models.ReviewThread, 0, len(edges))
	for _, edge := range edges {
		thread, err := decodeThread(edge.field("node"))
		if err != nil {
			return nil, err
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

func decodeThread(node shape) (models.ReviewThread, error) {
	var thread models.ReviewThread
	var err error

	if thread.IsResolved, err = node.field("isResolved").boolean(); err != nil {
		return thread, err
	}
	if thread.IsOutdated, err = node.field("isOutdated").boolean(); err != nil {
		return thread, err
	}
	if thread.IsCollapsed, err = node.field("isCollapsed").boolean(); err != nil {
		return thread, err
	}
	if thread.Path, err = node.field("path").optionalString(); err != nil {
		return thread, err
	}

	nodes, err := node.field("comments").field("nodes").list()
	if err != nil {
		return thread, err
	}
	thread.Comments = make([]models.ReviewComment, 0, len(nodes))
	for _, n := range nodes {
		comment, err := decodeComment(n)
		if err != nil {
			return thread, err
		}
		thread.Comments = append(thread.Comments, comment)
	}
	return thread, nil
}

func decodeComment(node shape) (models.ReviewComment, error) {
	var comment models.ReviewComment
	var err error

	// author is null for deleted accounts
	author := node.field("author")
	if author.err == nil && author.value != nil {
		if comment.Author, err = author.field("login").optionalString(); err != nil {
			return comment, err
		}
	}
	if comment.Author == "" {
		comment.Author = models.UnknownAuthor
	}

	if comment.Body, err = node.field("body").str(); err != nil {
		return comment, err
	}
	if comment.URL, err = node.field("url").str(); err != nil {
		return comment, err
	}
	if comment.CreatedAt, err = node.field("createdAt").str(); err != nil {
		return comment, err
	}
	if comment.ID, err = node.field("id").str(); err != nil {
		return comment, err
	}
	return comment, nil
}

// withGraphQLErrors adds the first GraphQL error message, if any, to a
// shape error so a missing repository explains itself.
func withGraphQLErrors(err error, data github.ReviewData) error {
	var shapeErr *models.DataShapeError
	if !errors.As(err, &shapeErr) {
		return err
	}
	errs, ok := data["errors"].([]interface{})
	if !ok || len(errs) == 0 {
		return err
	}
	first, ok := errs[0].(map[string]interface{})
	if !ok {
		return err
	}
	if msg, ok := first["message"].(string); ok && msg != "" {
		return models.NewDataShapeError(shapeErr.Path, fmt.Sprintf("%s (graphql: %s)", shapeErr.Reason, msg))
	}
	return err
}

// shape walks decoded JSON and remembers where it is for error messages.
// The first failure sticks, so calls can be chained.
type shape struct {
	path  string
	value interface{}
	err   error
}

func (s shape) field(key string) shape {
	next := shape{path: s.path + "." + key}
	if s.err != nil {
		next.err = s.err
		return next
	}
	obj, ok := s.value.(map[string]interface{})
	if !ok {
		next.err = models.NewDataShapeError(s.path, fmt.Sprintf("expected an object, got %s", describe(s.value)))
		return next
	}
	v, ok := obj[key]
	if !ok {
		next.err = models.NewDataShapeError(next.path, "missing key")
		return next
	}
	next.value = v
	return next
}

func (s shape) list() ([]shape, error) {
	if s.err != nil {
		return nil, s.err
	}
	items, ok := s.value.([]interface{})
	if !ok {
		return nil, models.NewDataShapeError(s.path, fmt.Sprintf("expected an array, got %s", describe(s.value)))
	}
	out := make([]shape, len(items))
	for i, item := range items {
		out[i] = shape{path: fmt.Sprintf("%s[%d]", s.path, i), value: item}
	}
	return out, nil
}

func (s shape) boolean() (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	b, ok := s.value.(bool)
	if !ok {
		return false, models.NewDataShapeError(s.path, fmt.Sprintf("expected a boolean, got %s", describe(s.value)))
	}
	return b, nil
}

func (s shape) str() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	str, ok := s.value.(string)
	if !ok {
		return "", models.NewDataShapeError(s.path, fmt.Sprintf("expected a string, got %s", describe(s.value)))
	}
	return str, nil
}

// optionalString accepts null as ""
func (s shape) optionalString() (string, error) {
	if s.err == nil && s.value == nil {
		return "", nil
	}
	return s.str()
}

func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
