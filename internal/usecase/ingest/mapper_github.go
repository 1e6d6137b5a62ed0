package ingest

import (
	"fmt"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v68/github"

	"devpulse/internal/domain/tracker"
	"devpulse/internal/ports"
)

// Pure field mapping from GitHub payloads to the canonical shapes.
// Nothing in this file performs I/O.

func githubIssueKey(fullName string, number int) string {
	return fmt.Sprintf("%s#%d", fullName, number)
}

func githubPullKey(fullName string, number int) string {
	return fmt.Sprintf("%s!%d", fullName, number)
}

// githubUser extracts identity fields. GitHub rarely exposes an email
// on these payloads, so the login-derived synthetic address is the
// usual contributor key.
func githubUser(u *gogithub.User) *tracker.ProviderUser {
	if u == nil {
		return nil
	}
	return &tracker.ProviderUser{
		Email:     u.GetEmail(),
		Login:     u.GetLogin(),
		Name:      u.GetName(),
		AvatarURL: u.GetAvatarURL(),
	}
}

// githubCommitAuthor prefers the linked GitHub account and falls back
// to the git signature, which always carries a name/email pair.
func githubCommitAuthor(commit *gogithub.RepositoryCommit) *tracker.ProviderUser {
	if commit == nil {
		return nil
	}
	if user := githubUser(commit.Author); user != nil && user.Login != "" {
		if sig := commit.GetCommit().GetAuthor(); sig != nil && user.Email == "" {
			user.Email = sig.GetEmail()
		}
		return user
	}
	if sig := commit.GetCommit().GetAuthor(); sig != nil {
		return &tracker.ProviderUser{
			Email: sig.GetEmail(),
			Name:  sig.GetName(),
		}
	}
	return nil
}

func mapGitHubIssue(fullName string, raw *gogithub.Issue, projectID uint64, reporterID, assigneeID *uint64) ports.IssueRecord {
	labels := make([]string, 0, len(raw.Labels))
	for _, label := range raw.Labels {
		labels = append(labels, label.GetName())
	}

	status := tracker.InferIssueStatus("", raw.GetState())
	var resolvedAt *time.Time
	if status.Closed() && raw.ClosedAt != nil {
		closed := raw.ClosedAt.Time
		resolvedAt = &closed
	}

	var description *string
	if body := raw.GetBody(); body != "" {
		description = &body
	}

	return ports.IssueRecord{
		Key:         githubIssueKey(fullName, raw.GetNumber()),
		ProjectID:   projectID,
		Title:       raw.GetTitle(),
		Description: description,
		Type:        tracker.InferIssueType(labels...),
		Status:      status,
		Priority:    githubPriority(labels),
		ReporterID:  reporterID,
		AssigneeID:  assigneeID,
		CreatedAt:   raw.GetCreatedAt().Time,
		UpdatedAt:   raw.GetUpdatedAt().Time,
		ResolvedAt:  resolvedAt,
	}
}

// githubPriority scans labels in order and takes the first that maps
// away from the MEDIUM default.
func githubPriority(labels []string) tracker.IssuePriority {
	for _, label := range labels {
		if priority := tracker.InferIssuePriority(label); priority != tracker.IssuePriorityMedium {
			return priority
		}
	}
	return tracker.IssuePriorityMedium
}

func mapGitHubPull(fullName string, raw *gogithub.PullRequest, repositoryID uint64, authorID *uint64, iterations int) ports.PullRequestRecord {
	state := tracker.PullRequestOpen
	switch {
	case raw.MergedAt != nil:
		state = tracker.PullRequestMerged
	case strings.EqualFold(raw.GetState(), "closed"):
		state = tracker.PullRequestClosed
	}

	record := ports.PullRequestRecord{
		Key:          githubPullKey(fullName, raw.GetNumber()),
		RepositoryID: repositoryID,
		Number:       raw.GetNumber(),
		Title:        raw.GetTitle(),
		AuthorID:     authorID,
		State:        state,
		Iterations:   iterations,
		Additions:    raw.GetAdditions(),
		Deletions:    raw.GetDeletions(),
		CreatedAt:    raw.GetCreatedAt().Time,
	}
	if raw.MergedAt != nil {
		merged := raw.MergedAt.Time
		record.MergedAt = &merged
	}
	if raw.ClosedAt != nil {
		closed := raw.ClosedAt.Time
		record.ClosedAt = &closed
	}
	return record
}

// reviewIterations counts review rounds that requested changes.
func reviewIterations(reviews []*gogithub.PullRequestReview) int {
	iterations := 0
	for _, review := range reviews {
		if strings.EqualFold(review.GetState(), "CHANGES_REQUESTED") {
			iterations++
		}
	}
	return iterations
}
