package dashboard

import (
	"time"

	"devpulse/internal/domain/tracker"
	"devpulse/internal/ports"
)

// The functions in this file are pure aggregations over fact slices.
// Empty input always produces zeros and nulls, never an error.

func commitMetrics(current, previous []ports.CommitFact, from, to time.Time) CommitMetrics {
	metrics := CommitMetrics{
		Total: len(current),
		Trend: computeTrend(float64(len(current)), float64(len(previous))),
	}

	timestamps := make([]time.Time, 0, len(current))
	for _, commit := range current {
		metrics.Additions += commit.Additions
		metrics.Deletions += commit.Deletions
		timestamps = append(timestamps, commit.AuthoredAt)
	}
	metrics.DailyActivity = dailySeries(from, to, timestamps)
	return metrics
}

func pullRequestMetrics(current, previous []ports.PullRequestFact) PullRequestMetrics {
	metrics := PullRequestMetrics{
		Created: len(current),
		Trend:   computeTrend(float64(len(current)), float64(len(previous))),
	}

	iterations := 0
	for _, pr := range current {
		if pr.State == tracker.PullRequestMerged {
			metrics.Merged++
		}
		iterations += pr.Iterations
	}

	if metrics.Created > 0 {
		rate := round1(float64(metrics.Merged) / float64(metrics.Created) * 100)
		metrics.MergeRate = &rate
		avg := round1(float64(iterations) / float64(metrics.Created))
		metrics.AvgIterations = &avg
	}
	return metrics
}

func reviewMetrics(current, previous []ports.ReviewFact) ReviewMetrics {
	metrics := ReviewMetrics{
		Total: len(current),
		Trend: computeTrend(float64(len(current)), float64(len(previous))),
	}
	for _, review := range current {
		switch review.State {
		case "APPROVED":
			metrics.Approved++
		case "CHANGES_REQUESTED":
			metrics.ChangesRequested++
		}
	}
	return metrics
}

func deliveryMetrics(current []ports.IssueFact) DeliveryMetrics {
	metrics := DeliveryMetrics{
		ResolvedByType: []DistributionEntry{},
	}

	byType := make(map[string]int)
	var resolutionDays float64
	for _, issue := range current {
		metrics.IssuesCreated++
		if issue.ResolvedAt == nil {
			continue
		}
		metrics.IssuesResolved++
		byType[string(issue.Type)]++
		resolutionDays += issue.ResolvedAt.Sub(issue.CreatedAt).Hours() / 24
		if issue.StoryPoints != nil {
			metrics.StoryPointsDelivered += *issue.StoryPoints
		}
	}

	if metrics.IssuesResolved > 0 {
		avg := round1(resolutionDays / float64(metrics.IssuesResolved))
		metrics.AvgResolutionDays = &avg
		metrics.ResolvedByType = sortedEntries(byType)
	}
	return metrics
}

func operationalMetrics(runs []ports.PipelineFact) OperationalMetrics {
	metrics := OperationalMetrics{PipelineRuns: len(runs)}
	if len(runs) == 0 {
		return metrics
	}

	succeeded := 0
	duration := 0
	for _, run := range runs {
		switch run.Status {
		case tracker.PipelineSuccess:
			succeeded++
		case tracker.PipelineFailed:
			metrics.FailedRuns++
		}
		duration += run.DurationSeconds
	}

	rate := round1(float64(succeeded) / float64(len(runs)) * 100)
	metrics.SuccessRate = &rate
	avg := round1(float64(duration) / float64(len(runs)))
	metrics.AvgDurationSeconds = &avg
	return metrics
}

// qualityMetrics averages the latest scan per repository. Coverage and
// new-code coverage are averaged only over scans that carry the value;
// when no scan does, the field stays null.
func qualityMetrics(scans []ports.ScanFact, vulnerabilities []ports.VulnerabilityFact) QualityMetrics {
	var metrics QualityMetrics

	var coverageSum, newCoverageSum float64
	coverageN, newCoverageN := 0, 0
	for _, scan := range scans {
		metrics.Bugs += scan.Bugs
		metrics.CodeSmells += scan.CodeSmells
		if scan.Coverage != nil {
			coverageSum += *scan.Coverage
			coverageN++
		}
		if scan.NewCodeCoverage != nil {
			newCoverageSum += *scan.NewCodeCoverage
			newCoverageN++
		}
	}
	if coverageN > 0 {
		avg := round1(coverageSum / float64(coverageN))
		metrics.Coverage = &avg
	}
	if newCoverageN > 0 {
		avg := round1(newCoverageSum / float64(newCoverageN))
		metrics.NewCodeCoverage = &avg
	}

	for _, vuln := range vulnerabilities {
		metrics.OpenVulnerabilities.Total++
		switch vuln.Severity {
		case tracker.SeverityCritical:
			metrics.OpenVulnerabilities.Critical++
		case tracker.SeverityHigh:
			metrics.OpenVulnerabilities.High++
		case tracker.SeverityMedium:
			metrics.OpenVulnerabilities.Medium++
		case tracker.SeverityLow:
			metrics.OpenVulnerabilities.Low++
		}
	}
	return metrics
}

func overviewMetrics(
	commits, prevCommits []ports.CommitFact,
	pulls, prevPulls []ports.PullRequestFact,
	reviews []ports.ReviewFact,
	issues []ports.IssueFact,
) OverviewMetrics {
	metrics := OverviewMetrics{
		Commits:             len(commits),
		PullRequestsCreated: len(pulls),
		Reviews:             len(reviews),
		CommitTrend:         computeTrend(float64(len(commits)), float64(len(prevCommits))),
		PullRequestTrend:    computeTrend(float64(len(pulls)), float64(len(prevPulls))),
	}
	for _, pr := range pulls {
		if pr.State == tracker.PullRequestMerged {
			metrics.PullRequestsMerged++
		}
	}
	for _, issue := range issues {
		if issue.ResolvedAt != nil {
			metrics.IssuesResolved++
		}
	}
	return metrics
}
