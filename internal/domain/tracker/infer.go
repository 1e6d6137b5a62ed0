package tracker

import "strings"

// typeRules map keywords found in labels or provider type names to the
// canonical issue type. Rules are ordered; the first rule matching any
// candidate wins. "subtask" precedes "task" so compound names resolve to
// the more specific type.
var typeRules = []struct {
	keyword string
	issue   IssueType
}{
	{"subtask", IssueTypeSubtask},
	{"sub-task", IssueTypeSubtask},
	{"bug", IssueTypeBug},
	{"defect", IssueTypeBug},
	{"enhancement", IssueTypeFeature},
	{"feature", IssueTypeFeature},
	{"story", IssueTypeStory},
	{"epic", IssueTypeEpic},
	{"task", IssueTypeTask},
}

// InferIssueType classifies an issue from label names or a provider
// issue-type name. Defaults to TASK when nothing matches.
func InferIssueType(candidates ...string) IssueType {
	for _, rule := range typeRules {
		for _, candidate := range candidates {
			if strings.Contains(strings.ToLower(candidate), rule.keyword) {
				return rule.issue
			}
		}
	}
	return IssueTypeTask
}

// InferIssueStatus maps a provider status to the canonical status.
// The explicit status-category key is preferred when present; the display
// name is the fallback signal.
func InferIssueStatus(categoryKey, statusName string) IssueStatus {
	name := strings.ToLower(statusName)

	switch strings.ToLower(strings.TrimSpace(categoryKey)) {
	case "done":
		if strings.Contains(name, "cancel") {
			return IssueStatusCancelled
		}
		return IssueStatusDone
	case "new":
		return IssueStatusTodo
	case "indeterminate":
		if status, ok := statusFromName(name); ok && status != IssueStatusTodo {
			return status
		}
		return IssueStatusInProgress
	}

	if status, ok := statusFromName(name); ok {
		return status
	}
	return IssueStatusTodo
}

func statusFromName(name string) (IssueStatus, bool) {
	switch {
	case strings.Contains(name, "done"), strings.Contains(name, "closed"), strings.Contains(name, "resolved"):
		return IssueStatusDone, true
	case strings.Contains(name, "progress"):
		return IssueStatusInProgress, true
	case strings.Contains(name, "review"), strings.Contains(name, "testing"):
		return IssueStatusInReview, true
	case strings.Contains(name, "blocked"):
		return IssueStatusBlocked, true
	case strings.Contains(name, "cancel"):
		return IssueStatusCancelled, true
	}
	return IssueStatusTodo, false
}

// InferIssuePriority maps a provider priority label to the canonical
// priority. Checks are ordered substring matches; "low" is checked before
// "trivial" so a label containing "low" resolves to LOW. Absent labels
// default to MEDIUM.
func InferIssuePriority(label string) IssuePriority {
	name := strings.ToLower(strings.TrimSpace(label))
	if name == "" {
		return IssuePriorityMedium
	}

	switch {
	case strings.Contains(name, "highest"), strings.Contains(name, "critical"), strings.Contains(name, "blocker"):
		return IssuePriorityCritical
	case strings.Contains(name, "high"):
		return IssuePriorityHigh
	case strings.Contains(name, "low"):
		return IssuePriorityLow
	case strings.Contains(name, "trivial"):
		return IssuePriorityTrivial
	}
	return IssuePriorityMedium
}
