package tracker

import "testing"

func TestInferIssueType(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       IssueType
	}{
		{name: "bug label", candidates: []string{"bug"}, want: IssueTypeBug},
		{name: "defect keyword", candidates: []string{"defect-report"}, want: IssueTypeBug},
		{name: "enhancement label", candidates: []string{"enhancement"}, want: IssueTypeFeature},
		{name: "feature keyword", candidates: []string{"new feature"}, want: IssueTypeFeature},
		{name: "story", candidates: []string{"Story"}, want: IssueTypeStory},
		{name: "epic", candidates: []string{"Epic"}, want: IssueTypeEpic},
		{name: "subtask beats task", candidates: []string{"Sub-task"}, want: IssueTypeSubtask},
		{name: "jira subtask spelling", candidates: []string{"Subtask"}, want: IssueTypeSubtask},
		{name: "explicit task", candidates: []string{"Task"}, want: IssueTypeTask},
		{name: "bug wins over feature by rule order", candidates: []string{"feature", "bug"}, want: IssueTypeBug},
		{name: "unknown defaults to task", candidates: []string{"question"}, want: IssueTypeTask},
		{name: "no candidates defaults to task", candidates: nil, want: IssueTypeTask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferIssueType(tt.candidates...); got != tt.want {
				t.Fatalf("InferIssueType(%v) = %s, want %s", tt.candidates, got, tt.want)
			}
		})
	}
}

func TestInferIssueStatus(t *testing.T) {
	tests := []struct {
		name        string
		categoryKey string
		statusName  string
		want        IssueStatus
	}{
		{name: "done category", categoryKey: "done", statusName: "Finished", want: IssueStatusDone},
		{name: "done category but cancelled name", categoryKey: "done", statusName: "Cancelled", want: IssueStatusCancelled},
		{name: "new category", categoryKey: "new", statusName: "Backlog", want: IssueStatusTodo},
		{name: "indeterminate with review name", categoryKey: "indeterminate", statusName: "In Review", want: IssueStatusInReview},
		{name: "indeterminate without match", categoryKey: "indeterminate", statusName: "Working", want: IssueStatusInProgress},
		{name: "no category closed name", categoryKey: "", statusName: "Closed", want: IssueStatusDone},
		{name: "no category resolved name", categoryKey: "", statusName: "Resolved", want: IssueStatusDone},
		{name: "progress substring", categoryKey: "", statusName: "In Progress", want: IssueStatusInProgress},
		{name: "testing maps to review", categoryKey: "", statusName: "Testing", want: IssueStatusInReview},
		{name: "blocked", categoryKey: "", statusName: "Blocked", want: IssueStatusBlocked},
		{name: "cancel substring", categoryKey: "", statusName: "Canceled", want: IssueStatusCancelled},
		{name: "unknown defaults to todo", categoryKey: "", statusName: "Strange", want: IssueStatusTodo},
		{name: "empty defaults to todo", categoryKey: "", statusName: "", want: IssueStatusTodo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferIssueStatus(tt.categoryKey, tt.statusName); got != tt.want {
				t.Fatalf("InferIssueStatus(%q, %q) = %s, want %s", tt.categoryKey, tt.statusName, got, tt.want)
			}
		})
	}
}

func TestIssueStatusClosed(t *testing.T) {
	if !IssueStatusDone.Closed() {
		t.Fatal("DONE should be closed")
	}
	if !IssueStatusCancelled.Closed() {
		t.Fatal("CANCELLED should be closed")
	}
	if IssueStatusInProgress.Closed() {
		t.Fatal("IN_PROGRESS should not be closed")
	}
}

func TestInferIssuePriority(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  IssuePriority
	}{
		{name: "highest", label: "Highest", want: IssuePriorityCritical},
		{name: "critical", label: "critical", want: IssuePriorityCritical},
		{name: "blocker", label: "Blocker", want: IssuePriorityCritical},
		{name: "high", label: "High", want: IssuePriorityHigh},
		{name: "low", label: "Low", want: IssuePriorityLow},
		{name: "low substring wins over trivial", label: "trivially-low", want: IssuePriorityLow},
		{name: "trivial", label: "Trivial", want: IssuePriorityTrivial},
		{name: "medium explicit", label: "Medium", want: IssuePriorityMedium},
		{name: "unknown defaults to medium", label: "whatever", want: IssuePriorityMedium},
		{name: "absent defaults to medium", label: "", want: IssuePriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferIssuePriority(tt.label); got != tt.want {
				t.Fatalf("InferIssuePriority(%q) = %s, want %s", tt.label, got, tt.want)
			}
		})
	}
}
