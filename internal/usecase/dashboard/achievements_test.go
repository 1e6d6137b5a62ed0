package dashboard

import "testing"

func achievementIDs(earned []Achievement) []string {
	ids := make([]string, len(earned))
	for i, a := range earned {
		ids[i] = a.ID
	}
	return ids
}

func TestEarnedAchievements(t *testing.T) {
	tests := []struct {
		name  string
		stats achievementStats
		want  []string
	}{
		{
			name:  "nothing earned",
			stats: achievementStats{},
			want:  []string{},
		},
		{
			name:  "single commit",
			stats: achievementStats{TotalCommits: 1},
			want:  []string{"first-commit"},
		},
		{
			name:  "commit tiers stack",
			stats: achievementStats{TotalCommits: 600},
			want:  []string{"first-commit", "commits-100", "commits-500"},
		},
		{
			name:  "merge without commits",
			stats: achievementStats{HasMergedPullRequest: true},
			want:  []string{"first-merge"},
		},
		{
			name:  "long streak earns both streak tiers",
			stats: achievementStats{LongestStreak: 31},
			want:  []string{"streak-7", "streak-30"},
		},
		{
			name: "everything at once",
			stats: achievementStats{
				TotalCommits:         500,
				TotalReviews:         50,
				HasMergedPullRequest: true,
				LongestStreak:        30,
			},
			want: []string{
				"first-commit", "commits-100", "commits-500",
				"first-merge", "reviews-50", "streak-7", "streak-30",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			earned := earnedAchievements(tt.stats)
			if earned == nil {
				t.Fatal("earnedAchievements() = nil, want empty slice")
			}
			got := achievementIDs(earned)
			if len(got) != len(tt.want) {
				t.Fatalf("earned = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("earned = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
