package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/ryo246912/gh-unresolved-comments/internal/models"
)

const (
	DefaultHost       = "github.com"
	DefaultGraphQLURL = "https://api.github.com/graphql"
	DefaultRESTURL    = "https://api.github.com"
)

// ErrTokenRequired is returned by CreateIssue when the client has no token
var ErrTokenRequired = errors.New("a GitHub token is required to create issues")

// Options configures a Client. Zero values fall back to github.com.
type Options struct {
	Token      string
	Host       string
	GraphQLURL string
	RESTURL    string
	Timeout    time.Duration
	Transport  http.RoundTripper
	// HTTPLog receives go-gh's request/response trace when set
	HTTPLog io.Writer
	Logger  *slog.Logger
}

// Client wraps GitHub API clients
type Client struct {
	http       *http.Client
	rest       *api.RESTClient
	token      string
	graphQLURL string
	restURL    string
	logger     *slog.Logger
}

func NewClient(opts Options) (*Client, error) {
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.GraphQLURL == "" {
		opts.GraphQLURL = DefaultGraphQLURL
	}
	if opts.RESTURL == "" {
		opts.RESTURL = DefaultRESTURL
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Client{
		token:      opts.Token,
		graphQLURL: opts.GraphQLURL,
		restURL:    strings.TrimRight(opts.RESTURL, "/"),
		logger:     opts.Logger,
	}

	// go-gh resolves credentials on its own when no token is given,
	// so anonymous requests go through a plain client.
	if opts.Token == "" {
		c.http = &http.Client{Transport: opts.Transport, Timeout: opts.Timeout}
		return c, nil
	}

	clientOpts := api.ClientOptions{
		Host:      opts.Host,
		AuthToken: opts.Token,
		Transport: opts.Transport,
		Timeout:   opts.Timeout,
		Log:       opts.HTTPLog,
	}

	httpClient, err := api.NewHTTPClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	restClient, err := api.NewRESTClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	c.http = httpClient
	c.rest = restClient
	return c, nil
}

// FetchReviewThreads runs the review threads query for a pull request and
// returns the decoded response body.
func (c *Client) FetchReviewThreads(ctx context.Context, ref models.PullRequestRef, limit int) (ReviewData, error) {
	if limit <= 0 {
		return nil, models.NewInvalidInputError(strconv.Itoa(limit), "comment limit must be positive")
	}

	payload, err := json.Marshal(graphQLRequest{
		Query:     reviewThreadsQuery(limit),
		Variables: reviewThreadsVariables(ref),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphQLURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "bearer "+c.token)
	}

	c.logger.Debug("github graphql query", "pr", ref.String(), "limit", limit, "authenticated", c.token != "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review threads: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &models.TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var data ReviewData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, models.NewDataShapeError("$", fmt.Sprintf("response is not a JSON object: %v", err))
	}
	if data == nil {
		return nil, models.NewDataShapeError("$", "response is null")
	}

	c.logger.Debug("github graphql response", "pr", ref.String(), "status", resp.StatusCode, "bytes", len(body))
	return data, nil
}

// CreateIssue opens an issue and returns it. Anything other than
// 201 Created is reported as a PublishFailure.
func (c *Client) CreateIssue(ctx context.Context, repo repository.Repository, issue models.IssueRequest) (*models.Issue, error) {
	if c.rest == nil {
		return nil, ErrTokenRequired
	}

	path := fmt.Sprintf("%s/repos/%s/%s/issues", c.restURL, repo.Owner, repo.Name)

	jsonBody, err := json.Marshal(issue)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	resp, err := c.rest.RequestWithContext(ctx, http.MethodPost, path, bytes.NewReader(jsonBody))
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &models.PublishFailure{StatusCode: httpErr.StatusCode, Message: httpErr.Message}
		}
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return nil, &models.PublishFailure{StatusCode: resp.StatusCode}
	}

	var created models.Issue
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode created issue: %w", err)
	}

	c.logger.Debug("github issue created", "repo", repo.Owner+"/"+repo.Name, "number", created.Number)
	return &created, nil
}
