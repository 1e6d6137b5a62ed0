package ingest

import (
	"testing"
	"time"

	gogithub "github.com/google/go-github/v68/github"

	"devpulse/internal/domain/tracker"
)

func TestMapGitHubIssue(t *testing.T) {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	updated := created.AddDate(0, 0, 3)
	closed := updated

	raw := &gogithub.Issue{
		Number: gogithub.Ptr(123),
		Title:  gogithub.Ptr("Widget crashes on save"),
		Body:   gogithub.Ptr("steps to reproduce"),
		State:  gogithub.Ptr("closed"),
		Labels: []*gogithub.Label{
			{Name: gogithub.Ptr("bug")},
			{Name: gogithub.Ptr("priority:high")},
		},
		CreatedAt: &gogithub.Timestamp{Time: created},
		UpdatedAt: &gogithub.Timestamp{Time: updated},
		ClosedAt:  &gogithub.Timestamp{Time: closed},
	}

	reporterID := uint64(7)
	record := mapGitHubIssue("acme/widgets", raw, 42, &reporterID, nil)

	if record.Key != "acme/widgets#123" {
		t.Fatalf("Key = %q", record.Key)
	}
	if record.ProjectID != 42 {
		t.Fatalf("ProjectID = %d", record.ProjectID)
	}
	if record.Type != tracker.IssueTypeBug {
		t.Fatalf("Type = %s", record.Type)
	}
	if record.Status != tracker.IssueStatusDone {
		t.Fatalf("Status = %s", record.Status)
	}
	if record.Priority != tracker.IssuePriorityHigh {
		t.Fatalf("Priority = %s", record.Priority)
	}
	if record.Description == nil || *record.Description != "steps to reproduce" {
		t.Fatalf("Description = %v", record.Description)
	}
	if record.ResolvedAt == nil || !record.ResolvedAt.Equal(closed) {
		t.Fatalf("ResolvedAt = %v", record.ResolvedAt)
	}
	if record.ReporterID == nil || *record.ReporterID != 7 {
		t.Fatalf("ReporterID = %v", record.ReporterID)
	}
	if record.AssigneeID != nil {
		t.Fatalf("AssigneeID = %v", record.AssigneeID)
	}
}

func TestMapGitHubIssueOpenWithoutBody(t *testing.T) {
	raw := &gogithub.Issue{
		Number:    gogithub.Ptr(5),
		Title:     gogithub.Ptr("open one"),
		State:     gogithub.Ptr("open"),
		CreatedAt: &gogithub.Timestamp{Time: time.Now()},
		UpdatedAt: &gogithub.Timestamp{Time: time.Now()},
	}

	record := mapGitHubIssue("acme/widgets", raw, 1, nil, nil)
	if record.Status != tracker.IssueStatusTodo {
		t.Fatalf("Status = %s", record.Status)
	}
	if record.Description != nil {
		t.Fatalf("Description = %v", record.Description)
	}
	if record.ResolvedAt != nil {
		t.Fatalf("ResolvedAt = %v", record.ResolvedAt)
	}
	if record.Priority != tracker.IssuePriorityMedium {
		t.Fatalf("Priority = %s", record.Priority)
	}
}

func TestMapGitHubPullStates(t *testing.T) {
	now := time.Now().UTC()

	merged := mapGitHubPull("acme/widgets", &gogithub.PullRequest{
		Number:    gogithub.Ptr(9),
		State:     gogithub.Ptr("closed"),
		MergedAt:  &gogithub.Timestamp{Time: now},
		ClosedAt:  &gogithub.Timestamp{Time: now},
		CreatedAt: &gogithub.Timestamp{Time: now.AddDate(0, 0, -1)},
	}, 3, nil, 2)
	if merged.State != tracker.PullRequestMerged {
		t.Fatalf("merged State = %s", merged.State)
	}
	if merged.Key != "acme/widgets!9" {
		t.Fatalf("Key = %q", merged.Key)
	}
	if merged.Iterations != 2 {
		t.Fatalf("Iterations = %d", merged.Iterations)
	}
	if merged.MergedAt == nil || merged.ClosedAt == nil {
		t.Fatal("expected merged/closed timestamps")
	}

	closedOnly := mapGitHubPull("acme/widgets", &gogithub.PullRequest{
		Number:    gogithub.Ptr(10),
		State:     gogithub.Ptr("closed"),
		ClosedAt:  &gogithub.Timestamp{Time: now},
		CreatedAt: &gogithub.Timestamp{Time: now},
	}, 3, nil, 0)
	if closedOnly.State != tracker.PullRequestClosed {
		t.Fatalf("closed State = %s", closedOnly.State)
	}

	open := mapGitHubPull("acme/widgets", &gogithub.PullRequest{
		Number:    gogithub.Ptr(11),
		State:     gogithub.Ptr("open"),
		CreatedAt: &gogithub.Timestamp{Time: now},
	}, 3, nil, 0)
	if open.State != tracker.PullRequestOpen {
		t.Fatalf("open State = %s", open.State)
	}
}

func TestReviewIterations(t *testing.T) {
	reviews := []*gogithub.PullRequestReview{
		{State: gogithub.Ptr("APPROVED")},
		{State: gogithub.Ptr("CHANGES_REQUESTED")},
		{State: gogithub.Ptr("changes_requested")},
		{State: gogithub.Ptr("COMMENTED")},
	}
	if got := reviewIterations(reviews); got != 2 {
		t.Fatalf("reviewIterations() = %d", got)
	}
	if got := reviewIterations(nil); got != 0 {
		t.Fatalf("reviewIterations(nil) = %d", got)
	}
}

func TestGitHubCommitAuthorFallback(t *testing.T) {
	withAccount := &gogithub.RepositoryCommit{
		Author: &gogithub.User{Login: gogithub.Ptr("octocat")},
		Commit: &gogithub.Commit{
			Author: &gogithub.CommitAuthor{
				Name:  gogithub.Ptr("Octo Cat"),
				Email: gogithub.Ptr("octo@example.com"),
			},
		},
	}
	user := githubCommitAuthor(withAccount)
	if user == nil || user.Login != "octocat" {
		t.Fatalf("githubCommitAuthor() = %+v", user)
	}
	if user.Email != "octo@example.com" {
		t.Fatalf("Email = %q", user.Email)
	}

	signatureOnly := &gogithub.RepositoryCommit{
		Commit: &gogithub.Commit{
			Author: &gogithub.CommitAuthor{
				Name:  gogithub.Ptr("Anon"),
				Email: gogithub.Ptr("anon@example.com"),
			},
		},
	}
	user = githubCommitAuthor(signatureOnly)
	if user == nil || user.Email != "anon@example.com" || user.Name != "Anon" {
		t.Fatalf("githubCommitAuthor() = %+v", user)
	}

	if githubCommitAuthor(nil) != nil {
		t.Fatal("nil commit should map to nil user")
	}
}
