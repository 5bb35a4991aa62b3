package activity

import "time"

// Range is an inclusive span of UTC day keys.
type Range struct {
	Start int64
	End   int64
}

// NewRange aligns both ends to their UTC days.
func NewRange(start, end time.Time) Range {
	return Range{Start: DayKey(start.Unix()), End: DayKey(end.Unix())}
}

// YearToDate spans Jan 1 of today's UTC year through today's UTC day.
func YearToDate(today time.Time) Range {
	u := today.UTC()
	return NewRange(time.Date(u.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), u)
}

// SeriesRange is the range covered by a series built with BuildSeries.
func SeriesRange(points []Point) Range {
	if len(points) == 0 {
		return Range{Start: 1, End: 0}
	}
	return Range{Start: points[0].TS, End: points[len(points)-1].TS}
}

func (r Range) Empty() bool { return r.Start > r.End }

func (r Range) contains(key int64) bool { return key >= r.Start && key <= r.End }

// Summary holds the scalar statistics of a calendar over a range.
type Summary struct {
	TotalSubmissions int     `json:"totalSubmissions"`
	ActiveDayCount   int     `json:"activeDays"`
	MaxStreak        int     `json:"maxStreak"`
	PeakDailyCount   int     `json:"maxDaily"`
	PeakDailyDate    *string `json:"maxDailyDate"`
}

// Totals sums the in-range buckets and counts those with a positive count.
func Totals(cal Calendar, r Range) (total, active int) {
	if r.Empty() {
		return 0, 0
	}
	for key, count := range cal {
		if !r.contains(key) {
			continue
		}
		total += count
		if count > 0 {
			active++
		}
	}
	return total, active
}

// MaxStreak is the longest run of consecutive days in r with a positive
// count. Every day is visited so that missing buckets break a run.
func MaxStreak(cal Calendar, r Range) int {
	best, cur := 0, 0
	for key := r.Start; key <= r.End; key += SecondsPerDay {
		if cal[key] > 0 {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 0
		}
	}
	return best
}

// Peak finds the highest count in a series and the date of its first
// occurrence. An all-zero or empty series has no peak date.
func Peak(points []Point) (int, *string) {
	peak := 0
	var date *string
	for i := range points {
		if points[i].Count > peak {
			peak = points[i].Count
			d := points[i].Date
			date = &d
		}
	}
	return peak, date
}

// Summarize computes totals and streak over r and the peak over points.
func Summarize(cal Calendar, r Range, points []Point) Summary {
	total, active := Totals(cal, r)
	peak, date := Peak(points)
	return Summary{
		TotalSubmissions: total,
		ActiveDayCount:   active,
		MaxStreak:        MaxStreak(cal, r),
		PeakDailyCount:   peak,
		PeakDailyDate:    date,
	}
}
