package dashboard

import "time"

// calcStreaks computes the current and longest contribution streaks
// from distinct contribution days sorted descending. The current streak
// only counts when the newest day is today or yesterday relative to
// now; anything older means the streak is broken.
func calcStreaks(dates []time.Time, now time.Time) StreakData {
	if len(dates) == 0 {
		return StreakData{}
	}

	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = utcDay(d)
	}

	var data StreakData

	today := utcDay(now)
	yesterday := today.AddDate(0, 0, -1)
	if days[0].Equal(today) || days[0].Equal(yesterday) {
		data.CurrentStreak = 1
		for i := 1; i < len(days); i++ {
			if !days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
				break
			}
			data.CurrentStreak++
		}
	}

	run := 1
	data.LongestStreak = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > data.LongestStreak {
			data.LongestStreak = run
		}
	}
	return data
}
