package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"devpulse/internal/errs"
)

const (
	searchPath     = "/rest/api/3/search"
	pageSize       = 50
	requestTimeout = 30 * time.Second
)

// Credentials carry Jira Cloud basic-auth material.
type Credentials struct {
	BaseURL  string
	Email    string
	APIToken string
}

// CredentialsFromEnv reads the data-source env map written by `sources
// sync`.
func CredentialsFromEnv(env map[string]string) Credentials {
	return Credentials{
		BaseURL:  env["JIRA_BASE_URL"],
		Email:    env["JIRA_EMAIL"],
		APIToken: env["JIRA_API_TOKEN"],
	}
}

// Client is a thin paginated wrapper around the Jira REST search API.
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
}

func NewClient(creds Credentials) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(creds.BaseURL), "/")
	if base == "" {
		return nil, errors.New("jira base url is required")
	}

	return &Client{
		baseURL:    base,
		email:      creds.Email,
		apiToken:   creds.APIToken,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

// ForEachIssuePage feeds issue pages to fn, paging by startAt offset
// until the search is exhausted or fn returns an error.
func (c *Client) ForEachIssuePage(ctx context.Context, projectKey string, updatedSince time.Time, fn func(page []Issue) error) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if strings.TrimSpace(projectKey) == "" {
		return errors.New("project key is required")
	}

	jql := fmt.Sprintf(
		"project = %q AND updated >= %q ORDER BY updated ASC",
		projectKey,
		updatedSince.UTC().Format("2006-01-02 15:04"),
	)

	startAt := 0
	for {
		page, total, err := c.searchPage(ctx, jql, startAt)
		if err != nil {
			return errs.Wrapf(err, "search issues for project %s", projectKey)
		}
		if len(page) > 0 {
			if err := fn(page); err != nil {
				return err
			}
		}

		startAt += len(page)
		if len(page) == 0 || startAt >= total {
			return nil
		}
	}
}

func (c *Client) searchPage(ctx context.Context, jql string, startAt int) ([]Issue, int, error) {
	query := url.Values{}
	query.Set("jql", jql)
	query.Set("startAt", strconv.Itoa(startAt))
	query.Set("maxResults", strconv.Itoa(pageSize))
	query.Set("fields", "summary,description,issuetype,status,priority,assignee,reporter,created,updated,resolutiondate,customfield_10016,customfield_10020")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, 0, errs.Wrap(err, "build search request")
	}
	req.Header.Set("Accept", "application/json")
	if c.email != "" || c.apiToken != "" {
		req.SetBasicAuth(c.email, c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errs.Wrap(err, "execute search request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, 0, errs.Wrap(err, "read search response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("jira search returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, 0, errs.Wrap(err, "decode search response")
	}
	return decoded.Issues, decoded.Total, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
