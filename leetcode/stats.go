package leetcode

import (
	"time"

	"portfolio/api/activity"
	"portfolio/api/models"
)

type Options struct {
	TrailingDays int
	// GridColumns is the number of week columns of the heatmap grid; 0
	// leaves calendarYear out of the response.
	GridColumns int
}

// BuildStats normalizes the profile's calendar once and derives every
// series and aggregate of the stats response from it. today carries the
// caller's location, which decides the local dates used as labels.
func BuildStats(p *Profile, opts Options, today time.Time) models.LeetCodeStats {
	cal := activity.ParseCalendar(p.SubmissionCalendar)

	series := activity.BuildSeries(cal, activity.Trailing(opts.TrailingDays), today)
	ytd := activity.YearToDate(today)
	summary := activity.Summarize(cal, ytd, series)

	stats := models.LeetCodeStats{
		Username:        p.Username,
		Totals:          p.Totals,
		Denoms:          p.Denoms,
		YearSubmissions: summary.TotalSubmissions,
		ActiveDays:      summary.ActiveDayCount,
		MaxStreak:       summary.MaxStreak,
		Series:          series,
		Bars:            activity.Counts(series),
		MaxDaily:        summary.PeakDailyCount,
		MaxDailyDate:    summary.PeakDailyDate,
	}
	if opts.GridColumns > 0 {
		stats.CalendarYear = activity.BuildSeries(cal, activity.Rolling(opts.GridColumns), today)
	}
	return stats
}
