package tracker

// Provider identifies an external system a data source connects to.
type Provider string

const (
	ProviderGitHub Provider = "GITHUB"
	ProviderJira   Provider = "JIRA"
	ProviderGitLab Provider = "GITLAB"
)

// IssueType is the canonical work-item classification.
type IssueType string

const (
	IssueTypeBug     IssueType = "BUG"
	IssueTypeFeature IssueType = "FEATURE"
	IssueTypeTask    IssueType = "TASK"
	IssueTypeStory   IssueType = "STORY"
	IssueTypeEpic    IssueType = "EPIC"
	IssueTypeSubtask IssueType = "SUBTASK"
)

type IssueStatus string

const (
	IssueStatusTodo       IssueStatus = "TODO"
	IssueStatusInProgress IssueStatus = "IN_PROGRESS"
	IssueStatusInReview   IssueStatus = "IN_REVIEW"
	IssueStatusBlocked    IssueStatus = "BLOCKED"
	IssueStatusDone       IssueStatus = "DONE"
	IssueStatusCancelled  IssueStatus = "CANCELLED"
)

// Closed reports whether the status terminates the issue lifecycle.
// Closed statuses carry a resolution timestamp.
func (s IssueStatus) Closed() bool {
	return s == IssueStatusDone || s == IssueStatusCancelled
}

type IssuePriority string

const (
	IssuePriorityTrivial  IssuePriority = "TRIVIAL"
	IssuePriorityLow      IssuePriority = "LOW"
	IssuePriorityMedium   IssuePriority = "MEDIUM"
	IssuePriorityHigh     IssuePriority = "HIGH"
	IssuePriorityCritical IssuePriority = "CRITICAL"
)

type PullRequestState string

const (
	PullRequestOpen   PullRequestState = "OPEN"
	PullRequestMerged PullRequestState = "MERGED"
	PullRequestClosed PullRequestState = "CLOSED"
)

type PipelineStatus string

const (
	PipelineSuccess   PipelineStatus = "SUCCESS"
	PipelineFailed    PipelineStatus = "FAILED"
	PipelineCancelled PipelineStatus = "CANCELLED"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

type LogLevel string

const (
	LogLevelInfo  LogLevel = "INFO"
	LogLevelError LogLevel = "ERROR"
)
