package dashboard

import (
	"testing"

	"devpulse/internal/domain/tracker"
	"devpulse/internal/ports"
)

func floatPtr(v float64) *float64 { return &v }

func TestPullRequestMetrics(t *testing.T) {
	current := []ports.PullRequestFact{
		{State: tracker.PullRequestMerged, Iterations: 2},
		{State: tracker.PullRequestMerged, Iterations: 0},
		{State: tracker.PullRequestOpen, Iterations: 1},
		{State: tracker.PullRequestClosed, Iterations: 0},
	}

	metrics := pullRequestMetrics(current, nil)

	if metrics.Created != 4 || metrics.Merged != 2 {
		t.Fatalf("created/merged = %d/%d", metrics.Created, metrics.Merged)
	}
	if metrics.MergeRate == nil || *metrics.MergeRate != 50 {
		t.Fatalf("MergeRate = %v, want 50", metrics.MergeRate)
	}
	if metrics.AvgIterations == nil || *metrics.AvgIterations != 0.8 {
		t.Fatalf("AvgIterations = %v, want 0.8", metrics.AvgIterations)
	}
	if metrics.Trend.Type != TrendPositive {
		t.Fatalf("Trend.Type = %v", metrics.Trend.Type)
	}
}

func TestPullRequestMetricsEmpty(t *testing.T) {
	metrics := pullRequestMetrics(nil, nil)
	if metrics.Created != 0 || metrics.Merged != 0 {
		t.Fatalf("metrics = %+v", metrics)
	}
	if metrics.MergeRate != nil || metrics.AvgIterations != nil {
		t.Fatal("rates should be null without pull requests")
	}
	if metrics.Trend.Type != TrendNeutral {
		t.Fatalf("Trend.Type = %v", metrics.Trend.Type)
	}
}

func TestReviewMetricsStateCounts(t *testing.T) {
	current := []ports.ReviewFact{
		{State: "APPROVED"},
		{State: "APPROVED"},
		{State: "CHANGES_REQUESTED"},
		{State: "COMMENTED"},
	}

	metrics := reviewMetrics(current, nil)
	if metrics.Total != 4 {
		t.Fatalf("Total = %d", metrics.Total)
	}
	if metrics.Approved != 2 || metrics.ChangesRequested != 1 {
		t.Fatalf("approved/changes = %d/%d", metrics.Approved, metrics.ChangesRequested)
	}
}

func TestCommitMetricsDailyActivity(t *testing.T) {
	from, to := day("2025-03-01"), day("2025-03-03")
	current := []ports.CommitFact{
		{Additions: 10, Deletions: 2, AuthoredAt: day("2025-03-01")},
		{Additions: 5, Deletions: 1, AuthoredAt: day("2025-03-03")},
	}

	metrics := commitMetrics(current, nil, from, to)
	if metrics.Total != 2 || metrics.Additions != 15 || metrics.Deletions != 3 {
		t.Fatalf("metrics = %+v", metrics)
	}
	if len(metrics.DailyActivity) != 3 {
		t.Fatalf("len(DailyActivity) = %d, want a point per day", len(metrics.DailyActivity))
	}
	if metrics.DailyActivity[1].Count != 0 {
		t.Fatalf("middle day count = %d, want 0", metrics.DailyActivity[1].Count)
	}
}

func TestDeliveryMetrics(t *testing.T) {
	created := day("2025-03-01")
	resolvedFast := day("2025-03-02")
	resolvedSlow := day("2025-03-04")

	current := []ports.IssueFact{
		{Type: tracker.IssueTypeBug, CreatedAt: created, ResolvedAt: &resolvedFast, StoryPoints: floatPtr(3)},
		{Type: tracker.IssueTypeStory, CreatedAt: created, ResolvedAt: &resolvedSlow, StoryPoints: floatPtr(5)},
		{Type: tracker.IssueTypeTask, CreatedAt: created},
	}

	metrics := deliveryMetrics(current)
	if metrics.IssuesCreated != 3 || metrics.IssuesResolved != 2 {
		t.Fatalf("created/resolved = %d/%d", metrics.IssuesCreated, metrics.IssuesResolved)
	}
	if metrics.StoryPointsDelivered != 8 {
		t.Fatalf("StoryPointsDelivered = %v, unresolved points must not count", metrics.StoryPointsDelivered)
	}
	if metrics.AvgResolutionDays == nil || *metrics.AvgResolutionDays != 2 {
		t.Fatalf("AvgResolutionDays = %v, want 2", metrics.AvgResolutionDays)
	}
	if len(metrics.ResolvedByType) != 2 {
		t.Fatalf("ResolvedByType = %v", metrics.ResolvedByType)
	}
}

func TestDeliveryMetricsEmpty(t *testing.T) {
	metrics := deliveryMetrics(nil)
	if metrics.AvgResolutionDays != nil {
		t.Fatal("AvgResolutionDays should be null without resolved issues")
	}
	if metrics.ResolvedByType == nil {
		t.Fatal("ResolvedByType should be an empty slice, not null")
	}
}

func TestOperationalMetrics(t *testing.T) {
	runs := []ports.PipelineFact{
		{Status: tracker.PipelineSuccess, DurationSeconds: 100},
		{Status: tracker.PipelineSuccess, DurationSeconds: 200},
		{Status: tracker.PipelineFailed, DurationSeconds: 60},
		{Status: tracker.PipelineCancelled, DurationSeconds: 40},
	}

	metrics := operationalMetrics(runs)
	if metrics.PipelineRuns != 4 || metrics.FailedRuns != 1 {
		t.Fatalf("runs/failed = %d/%d", metrics.PipelineRuns, metrics.FailedRuns)
	}
	if metrics.SuccessRate == nil || *metrics.SuccessRate != 50 {
		t.Fatalf("SuccessRate = %v, want 50 (cancelled runs count against it)", metrics.SuccessRate)
	}
	if metrics.AvgDurationSeconds == nil || *metrics.AvgDurationSeconds != 100 {
		t.Fatalf("AvgDurationSeconds = %v, want 100", metrics.AvgDurationSeconds)
	}
}

func TestOperationalMetricsEmpty(t *testing.T) {
	metrics := operationalMetrics(nil)
	if metrics.SuccessRate != nil || metrics.AvgDurationSeconds != nil {
		t.Fatalf("metrics = %+v, rates should be null without runs", metrics)
	}
}

func TestQualityMetrics(t *testing.T) {
	scans := []ports.ScanFact{
		{Coverage: floatPtr(80), NewCodeCoverage: floatPtr(90), Bugs: 3, CodeSmells: 10},
		{Coverage: floatPtr(60), Bugs: 1, CodeSmells: 5},
		{Bugs: 0, CodeSmells: 2},
	}
	vulns := []ports.VulnerabilityFact{
		{Severity: tracker.SeverityCritical},
		{Severity: tracker.SeverityHigh},
		{Severity: tracker.SeverityHigh},
		{Severity: tracker.SeverityLow},
	}

	metrics := qualityMetrics(scans, vulns)
	if metrics.Bugs != 4 || metrics.CodeSmells != 17 {
		t.Fatalf("bugs/smells = %d/%d", metrics.Bugs, metrics.CodeSmells)
	}
	// Averaged over the two scans that report coverage, not all three.
	if metrics.Coverage == nil || *metrics.Coverage != 70 {
		t.Fatalf("Coverage = %v, want 70", metrics.Coverage)
	}
	if metrics.NewCodeCoverage == nil || *metrics.NewCodeCoverage != 90 {
		t.Fatalf("NewCodeCoverage = %v, want 90", metrics.NewCodeCoverage)
	}

	wantVulns := VulnerabilityCounts{Critical: 1, High: 2, Low: 1, Total: 4}
	if metrics.OpenVulnerabilities != wantVulns {
		t.Fatalf("OpenVulnerabilities = %+v, want %+v", metrics.OpenVulnerabilities, wantVulns)
	}
}

func TestQualityMetricsNoScans(t *testing.T) {
	metrics := qualityMetrics(nil, nil)
	if metrics.Coverage != nil || metrics.NewCodeCoverage != nil {
		t.Fatal("coverage should be null without scans")
	}
	if metrics.OpenVulnerabilities.Total != 0 {
		t.Fatalf("OpenVulnerabilities = %+v", metrics.OpenVulnerabilities)
	}
}

func TestOverviewMetrics(t *testing.T) {
	resolved := day("2025-03-02")
	metrics := overviewMetrics(
		make([]ports.CommitFact, 10), make([]ports.CommitFact, 5),
		[]ports.PullRequestFact{{State: tracker.PullRequestMerged}, {State: tracker.PullRequestOpen}},
		nil,
		make([]ports.ReviewFact, 3),
		[]ports.IssueFact{{ResolvedAt: &resolved}, {}},
	)

	if metrics.Commits != 10 || metrics.PullRequestsCreated != 2 || metrics.PullRequestsMerged != 1 {
		t.Fatalf("metrics = %+v", metrics)
	}
	if metrics.Reviews != 3 || metrics.IssuesResolved != 1 {
		t.Fatalf("metrics = %+v", metrics)
	}
	if metrics.CommitTrend.Value != 100 || metrics.CommitTrend.Type != TrendPositive {
		t.Fatalf("CommitTrend = %+v", metrics.CommitTrend)
	}
	if metrics.PullRequestTrend.Type != TrendPositive {
		t.Fatalf("PullRequestTrend = %+v", metrics.PullRequestTrend)
	}
}
