package dashboard

import "time"

const dayLayout = "2006-01-02"

// utcDay truncates a timestamp to its UTC calendar day.
func utcDay(ts time.Time) time.Time {
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

// dailySeries buckets timestamps per UTC day over [start, end]. Every
// calendar day in the range is present, gap-free, even when no
// timestamp matches; an inverted range yields an empty series.
func dailySeries(start, end time.Time, timestamps []time.Time) []TimeSeriesPoint {
	startDay, endDay := utcDay(start), utcDay(end)
	if endDay.Before(startDay) {
		return []TimeSeriesPoint{}
	}

	counts := make(map[string]int, len(timestamps))
	for _, ts := range timestamps {
		counts[utcDay(ts).Format(dayLayout)]++
	}

	points := make([]TimeSeriesPoint, 0, int(endDay.Sub(startDay).Hours()/24)+1)
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		date := day.Format(dayLayout)
		points = append(points, TimeSeriesPoint{Date: date, Count: counts[date]})
	}
	return points
}

// heatmap renders the daily series with weekday and week-row metadata
// for a calendar grid. weekNumber starts at 0 and increments whenever
// the weekday decreases relative to the previous day, which marks a
// week boundary regardless of which weekday the range starts on.
func heatmap(start, end time.Time, timestamps []time.Time) []HeatmapDay {
	series := dailySeries(start, end, timestamps)
	days := make([]HeatmapDay, 0, len(series))

	week := 0
	prevDayOfWeek := -1
	for _, point := range series {
		day, _ := time.Parse(dayLayout, point.Date)
		dayOfWeek := int(day.Weekday())
		if prevDayOfWeek >= 0 && dayOfWeek < prevDayOfWeek {
			week++
		}
		prevDayOfWeek = dayOfWeek

		days = append(days, HeatmapDay{
			Date:       point.Date,
			Count:      point.Count,
			DayOfWeek:  dayOfWeek,
			WeekNumber: week,
		})
	}
	return days
}
