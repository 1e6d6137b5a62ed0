package dashboard

// achievementStats is the input every achievement rule sees.
type achievementStats struct {
	TotalCommits         int
	TotalReviews         int
	HasMergedPullRequest bool
	LongestStreak        int
}

type achievementRule struct {
	Achievement
	earned func(achievementStats) bool
}

// achievementRules is evaluated in order, each rule independently. The
// tiers are deliberately not mutually exclusive: a contributor with 600
// commits earns every commit tier at once.
var achievementRules = []achievementRule{
	{
		Achievement: Achievement{ID: "first-commit", Name: "First Commit", Description: "Made your first commit"},
		earned:      func(s achievementStats) bool { return s.TotalCommits >= 1 },
	},
	{
		Achievement: Achievement{ID: "commits-100", Name: "Century", Description: "Made 100 commits"},
		earned:      func(s achievementStats) bool { return s.TotalCommits >= 100 },
	},
	{
		Achievement: Achievement{ID: "commits-500", Name: "Commit Machine", Description: "Made 500 commits"},
		earned:      func(s achievementStats) bool { return s.TotalCommits >= 500 },
	},
	{
		Achievement: Achievement{ID: "first-merge", Name: "Shipped", Description: "Got a pull request merged"},
		earned:      func(s achievementStats) bool { return s.HasMergedPullRequest },
	},
	{
		Achievement: Achievement{ID: "reviews-50", Name: "Gatekeeper", Description: "Reviewed 50 pull requests"},
		earned:      func(s achievementStats) bool { return s.TotalReviews >= 50 },
	},
	{
		Achievement: Achievement{ID: "streak-7", Name: "On a Roll", Description: "Contributed 7 days in a row"},
		earned:      func(s achievementStats) bool { return s.LongestStreak >= 7 },
	},
	{
		Achievement: Achievement{ID: "streak-30", Name: "Unstoppable", Description: "Contributed 30 days in a row"},
		earned:      func(s achievementStats) bool { return s.LongestStreak >= 30 },
	},
}

// earnedAchievements evaluates every rule and returns the earned ones
// in table order. No data earns nothing; the result is never nil.
func earnedAchievements(stats achievementStats) []Achievement {
	earned := make([]Achievement, 0, len(achievementRules))
	for _, rule := range achievementRules {
		if rule.earned(stats) {
			earned = append(earned, rule.Achievement)
		}
	}
	return earned
}
