package github

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gogithub "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"devpulse/internal/errs"
)

const pageSize = 100

// Credentials select one of three auth modes: GitHub App (when the app
// triple is set), personal access token, or anonymous.
type Credentials struct {
	Token          string
	BaseURL        string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

// CredentialsFromEnv reads the data-source env map written by `sources
// sync`. Missing keys leave the zero value.
func CredentialsFromEnv(env map[string]string) Credentials {
	creds := Credentials{
		Token:          env["GITHUB_TOKEN"],
		BaseURL:        env["GITHUB_BASE_URL"],
		PrivateKeyPath: env["GITHUB_APP_PRIVATE_KEY_PATH"],
	}
	if raw := strings.TrimSpace(env["GITHUB_APP_ID"]); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			creds.AppID = id
		}
	}
	if raw := strings.TrimSpace(env["GITHUB_APP_INSTALLATION_ID"]); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			creds.InstallationID = id
		}
	}
	return creds
}

// Client is a thin paginated wrapper around the GitHub REST API.
type Client struct {
	gh *gogithub.Client
}

func NewClient(ctx context.Context, creds Credentials) (*Client, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	httpClient := http.DefaultClient
	switch {
	case creds.AppID != 0 && creds.InstallationID != 0 && creds.PrivateKeyPath != "":
		transport, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, creds.AppID, creds.InstallationID, creds.PrivateKeyPath)
		if err != nil {
			return nil, errs.Wrap(err, "build github app transport")
		}
		httpClient = &http.Client{Transport: transport}
	case strings.TrimSpace(creds.Token) != "":
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token}))
	}

	gh := gogithub.NewClient(httpClient)
	if base := strings.TrimSpace(creds.BaseURL); base != "" {
		enterprise, err := gh.WithEnterpriseURLs(base, base)
		if err != nil {
			return nil, errs.Wrap(err, "set github base url")
		}
		gh = enterprise
	}

	return &Client{gh: gh}, nil
}

// ForEachIssuePage feeds issue pages to fn until the listing is
// exhausted or fn returns an error. The listing includes pull requests;
// callers filter those out.
func (c *Client) ForEachIssuePage(ctx context.Context, owner, repo string, since time.Time, fn func(page []*gogithub.Issue) error) error {
	opts := &gogithub.IssueListByRepoOptions{
		State:       "all",
		Since:       since,
		Sort:        "updated",
		Direction:   "asc",
		ListOptions: gogithub.ListOptions{PerPage: pageSize},
	}

	for {
		page, resp, err := c.gh.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return errs.Wrapf(err, "list issues for %s/%s", owner, repo)
		}
		if len(page) > 0 {
			if err := fn(page); err != nil {
				return err
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return nil
		}
		opts.Page = resp.NextPage
	}
}

// ForEachCommitPage feeds commit pages to fn. Listing omits per-commit
// stats, so each commit is hydrated with a detail fetch; a failed
// hydration keeps the listed record.
func (c *Client) ForEachCommitPage(ctx context.Context, owner, repo string, since, until time.Time, fn func(page []*gogithub.RepositoryCommit) error) error {
	opts := &gogithub.CommitsListOptions{
		Since:       since,
		Until:       until,
		ListOptions: gogithub.ListOptions{PerPage: pageSize},
	}

	for {
		page, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return errs.Wrapf(err, "list commits for %s/%s", owner, repo)
		}

		for i, commit := range page {
			detail, _, detailErr := c.gh.Repositories.GetCommit(ctx, owner, repo, commit.GetSHA(), nil)
			if detailErr == nil && detail != nil {
				page[i] = detail
			}
		}

		if len(page) > 0 {
			if err := fn(page); err != nil {
				return err
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return nil
		}
		opts.Page = resp.NextPage
	}
}

// ForEachPullPage feeds pull request pages to fn, hydrating each entry
// so additions/deletions are populated.
func (c *Client) ForEachPullPage(ctx context.Context, owner, repo string, fn func(page []*gogithub.PullRequest) error) error {
	opts := &gogithub.PullRequestListOptions{
		State:       "all",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gogithub.ListOptions{PerPage: pageSize},
	}

	for {
		page, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return errs.Wrapf(err, "list pull requests for %s/%s", owner, repo)
		}

		for i, pull := range page {
			detail, _, detailErr := c.gh.PullRequests.Get(ctx, owner, repo, pull.GetNumber())
			if detailErr == nil && detail != nil {
				page[i] = detail
			}
		}

		if len(page) > 0 {
			if err := fn(page); err != nil {
				return err
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return nil
		}
		opts.Page = resp.NextPage
	}
}

// ListReviews returns every review submitted on a pull request.
func (c *Client) ListReviews(ctx context.Context, owner, repo string, number int) ([]*gogithub.PullRequestReview, error) {
	opts := &gogithub.ListOptions{PerPage: pageSize}

	var all []*gogithub.PullRequestReview
	for {
		page, resp, err := c.gh.PullRequests.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, errs.Wrapf(err, "list reviews for %s/%s#%d", owner, repo, number)
		}
		all = append(all, page...)
		if resp == nil || resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}
