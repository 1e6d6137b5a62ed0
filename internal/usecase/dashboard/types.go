package dashboard

// The structs in this file are the data contract served to presentation
// layers (HTTP API, terminal console). Field names and nullability are
// part of the contract; pointer fields serialize as JSON null when no
// value can be computed.

type TrendType string

const (
	TrendPositive TrendType = "positive"
	TrendNegative TrendType = "negative"
	TrendNeutral  TrendType = "neutral"
)

// Trend is the percentage change of a metric between the current window
// and the immediately preceding window of equal length.
type Trend struct {
	Value float64   `json:"value"`
	Type  TrendType `json:"type"`
}

// TimeSeriesPoint is one day of a gap-free daily series.
type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type CommitMetrics struct {
	Total         int               `json:"total"`
	Additions     int               `json:"additions"`
	Deletions     int               `json:"deletions"`
	DailyActivity []TimeSeriesPoint `json:"dailyActivity"`
	Trend         Trend             `json:"trend"`
}

type PullRequestMetrics struct {
	Created int `json:"created"`
	Merged  int `json:"merged"`
	// MergeRate is merged/created as a percentage rounded to one
	// decimal, null when no pull request was created in the window.
	MergeRate     *float64 `json:"mergeRate"`
	AvgIterations *float64 `json:"avgIterations"`
	Trend         Trend    `json:"trend"`
}

type ReviewMetrics struct {
	Total            int   `json:"total"`
	Approved         int   `json:"approved"`
	ChangesRequested int   `json:"changesRequested"`
	Trend            Trend `json:"trend"`
}

type StreakData struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type HeatmapDay struct {
	Date       string `json:"date"`
	Count      int    `json:"count"`
	DayOfWeek  int    `json:"dayOfWeek"`
	WeekNumber int    `json:"weekNumber"`
}

type DistributionEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Distributions struct {
	// Repositories is truncated to the ten busiest; Languages is not.
	Repositories []DistributionEntry `json:"repositories"`
	Languages    []DistributionEntry `json:"languages"`
}

// OverviewMetrics is the organization-wide headline block.
type OverviewMetrics struct {
	Commits             int   `json:"commits"`
	PullRequestsCreated int   `json:"pullRequestsCreated"`
	PullRequestsMerged  int   `json:"pullRequestsMerged"`
	Reviews             int   `json:"reviews"`
	IssuesResolved      int   `json:"issuesResolved"`
	CommitTrend         Trend `json:"commitTrend"`
	PullRequestTrend    Trend `json:"pullRequestTrend"`
}

// DeliveryMetrics aggregates issue throughput for the window.
type DeliveryMetrics struct {
	IssuesCreated        int      `json:"issuesCreated"`
	IssuesResolved       int      `json:"issuesResolved"`
	StoryPointsDelivered float64  `json:"storyPointsDelivered"`
	AvgResolutionDays    *float64 `json:"avgResolutionDays"`
	ResolvedByType       []DistributionEntry `json:"resolvedByType"`
}

// OperationalMetrics aggregates CI pipeline runs for the window.
type OperationalMetrics struct {
	PipelineRuns       int      `json:"pipelineRuns"`
	FailedRuns         int      `json:"failedRuns"`
	SuccessRate        *float64 `json:"successRate"`
	AvgDurationSeconds *float64 `json:"avgDurationSeconds"`
}

// QualityMetrics aggregates the latest scan per repository plus open
// vulnerabilities as of the window end.
type QualityMetrics struct {
	Coverage        *float64 `json:"coverage"`
	NewCodeCoverage *float64 `json:"newCodeCoverage"`
	Bugs            int      `json:"bugs"`
	CodeSmells      int      `json:"codeSmells"`
	OpenVulnerabilities VulnerabilityCounts `json:"openVulnerabilities"`
}

type VulnerabilityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

// ContributorDashboard is the full per-person response.
type ContributorDashboard struct {
	ContributorID uint64             `json:"contributorId"`
	Name          string             `json:"name"`
	AvatarURL     string             `json:"avatarUrl"`
	Commits       CommitMetrics      `json:"commits"`
	PullRequests  PullRequestMetrics `json:"pullRequests"`
	Reviews       ReviewMetrics      `json:"reviews"`
	Streak        StreakData         `json:"streak"`
	Achievements  []Achievement      `json:"achievements"`
	Heatmap       []HeatmapDay       `json:"heatmap"`
	Distributions Distributions      `json:"distributions"`
}

// OrgDashboard is the organization-wide response.
type OrgDashboard struct {
	Overview    OverviewMetrics    `json:"overview"`
	Delivery    DeliveryMetrics    `json:"delivery"`
	Operational OperationalMetrics `json:"operational"`
	Quality     QualityMetrics     `json:"quality"`
}
