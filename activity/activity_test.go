package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utcDay(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, int64(0), DayKey(0))
	assert.Equal(t, int64(0), DayKey(86399))
	assert.Equal(t, int64(86400), DayKey(86400))
	assert.Equal(t, int64(-86400), DayKey(-1))
}

func TestNormalize_SumsEntriesOnSameUTCDay(t *testing.T) {
	cal := Normalize(map[string]any{"100": 2, "50000": 3})

	assert.Equal(t, Calendar{0: 5}, cal)
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := map[string]any{"100": 2, "50000": 3, "90000": "4", "200000": 1.0}

	assert.Equal(t, Normalize(raw), Normalize(raw))
}

func TestNormalize_MalformedDegradesToZero(t *testing.T) {
	cal := Normalize(map[string]any{
		"abc":    4,
		"86400":  "x",
		"172800": "3",
		"172900": 2.7,
		"259200": -5,
		"345600": nil,
	})

	assert.Equal(t, Calendar{
		0:      4,
		86400:  0,
		172800: 5,
		259200: 0,
		345600: 0,
	}, cal)
}

func TestParseCalendar(t *testing.T) {
	day := utcDay(2023, time.November, 14)
	cal := ParseCalendar(`{"1699920000": 3, "1699923600": 1}`)
	require.Equal(t, int64(1699920000), day)
	assert.Equal(t, Calendar{day: 4}, cal)

	assert.Empty(t, ParseCalendar("not json"))
	assert.Empty(t, ParseCalendar(""))
	assert.NotNil(t, ParseCalendar("[1,2]"))
}

func TestFromEntries(t *testing.T) {
	cal := FromEntries([]Entry{
		{Timestamp: 10, Count: 1},
		{Timestamp: 20, Count: 2},
		{Timestamp: 86401, Count: -3},
	})

	assert.Equal(t, Calendar{0: 3, 86400: 0}, cal)
}

func TestBuildSeries_TrailingWindow(t *testing.T) {
	today := time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC)
	cal := Calendar{utcDay(2024, time.March, 14): 5, utcDay(2023, time.June, 1): 9}

	points := BuildSeries(cal, Trailing(72), today)

	require.Len(t, points, 72)
	assert.Equal(t, "2024-01-04", points[0].Date)
	assert.Equal(t, "2024-03-15", points[71].Date)
	assert.Equal(t, 5, points[70].Count)
	for i := 1; i < len(points); i++ {
		assert.Equal(t, SecondsPerDay, points[i].TS-points[i-1].TS)
	}
}

func TestBuildSeries_LengthInvariant(t *testing.T) {
	today := time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)
	for _, n := range []int{1, 7, 30, 72, 365, 366} {
		assert.Len(t, BuildSeries(Calendar{}, Trailing(n), today), n)
	}
	assert.Len(t, BuildSeries(Calendar{}, Rolling(53), today), 371)
}

func TestBuildSeries_RollingGrid(t *testing.T) {
	// A Friday.
	today := time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC)
	todayKey := DayKey(today.Unix())

	points := BuildSeries(Calendar{todayKey: 2}, Rolling(53), today)

	require.Len(t, points, 371)
	first, err := time.Parse(dateLayout, points[0].Date)
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, first.Weekday())
	assert.Equal(t, "2024-03-16", points[len(points)-1].Date)

	lastColumn := points[len(points)-7:]
	found := false
	for _, p := range lastColumn {
		if p.TS == todayKey {
			found = true
			assert.Equal(t, 2, p.Count)
		}
	}
	assert.True(t, found, "final column should contain today's bucket")
}

func TestBuildSeries_RollingGridOnSunday(t *testing.T) {
	today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	points := BuildSeries(Calendar{}, Rolling(2), today)

	require.Len(t, points, 14)
	assert.Equal(t, "2024-03-03", points[0].Date)
	assert.Equal(t, "2024-03-10", points[7].Date)
}

func TestBuildSeries_EmptyCalendarIsZeroFilled(t *testing.T) {
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	for _, window := range []WindowSpec{Trailing(72), Rolling(53)} {
		points := BuildSeries(Calendar{}, window, today)
		require.Len(t, points, window.Days())
		for _, p := range points {
			assert.Zero(t, p.Count)
		}
		peak, date := Peak(points)
		assert.Zero(t, peak)
		assert.Nil(t, date)
	}
}

func TestBuildSeries_NonPositiveLength(t *testing.T) {
	today := time.Now()

	assert.Empty(t, BuildSeries(Calendar{}, Trailing(0), today))
	assert.NotNil(t, BuildSeries(Calendar{}, Rolling(-1), today))
	assert.Empty(t, BuildSeries(Calendar{}, WindowSpec{Kind: "weekly", Length: 3}, today))
}

func TestBuildSeries_LocalLabelUTCKey(t *testing.T) {
	east := time.FixedZone("UTC+9", 9*3600)
	today := time.Date(2024, time.March, 15, 10, 0, 0, 0, east)
	// Local midnight of Mar 15 in UTC+9 falls on Mar 14 UTC.
	key := utcDay(2024, time.March, 14)

	points := BuildSeries(Calendar{key: 7}, Trailing(1), today)

	require.Len(t, points, 1)
	assert.Equal(t, "2024-03-15", points[0].Date)
	assert.Equal(t, key, points[0].TS)
	assert.Equal(t, 7, points[0].Count)

	west := time.FixedZone("UTC-5", -5*3600)
	today = time.Date(2024, time.March, 15, 22, 0, 0, 0, west)
	points = BuildSeries(Calendar{utcDay(2024, time.March, 15): 3}, Trailing(1), today)

	require.Len(t, points, 1)
	assert.Equal(t, "2024-03-15", points[0].Date)
	assert.Equal(t, 3, points[0].Count)
}

func TestMaxStreak_MissingDayBreaksRun(t *testing.T) {
	day0 := utcDay(2024, time.January, 1)
	cal := Calendar{
		day0:                    1,
		day0 + SecondsPerDay:    2,
		day0 + 2*SecondsPerDay:  1,
		day0 + 4*SecondsPerDay:  6,
		day0 + 40*SecondsPerDay: 1,
	}

	assert.Equal(t, 3, MaxStreak(cal, Range{Start: day0, End: day0 + 4*SecondsPerDay}))
}

func TestMaxStreak_ZeroCountBreaksRun(t *testing.T) {
	day0 := utcDay(2024, time.January, 1)
	cal := Calendar{day0: 1, day0 + SecondsPerDay: 0, day0 + 2*SecondsPerDay: 1, day0 + 3*SecondsPerDay: 1}

	assert.Equal(t, 2, MaxStreak(cal, Range{Start: day0, End: day0 + 3*SecondsPerDay}))
}

func TestTotals(t *testing.T) {
	day0 := utcDay(2024, time.January, 1)
	cal := Calendar{
		day0:                   2,
		day0 + SecondsPerDay:   0,
		day0 + 2*SecondsPerDay: 5,
		day0 + 3*SecondsPerDay: 100,
		day0 - SecondsPerDay:   100,
	}

	total, active := Totals(cal, Range{Start: day0, End: day0 + 2*SecondsPerDay})

	assert.Equal(t, 7, total)
	assert.Equal(t, 2, active)
}

func TestEmptyRange(t *testing.T) {
	cal := Calendar{0: 3, SecondsPerDay: 4}
	r := Range{Start: SecondsPerDay, End: 0}

	require.True(t, r.Empty())
	total, active := Totals(cal, r)
	assert.Zero(t, total)
	assert.Zero(t, active)
	assert.Zero(t, MaxStreak(cal, r))

	s := Summarize(cal, SeriesRange(nil), nil)
	assert.Equal(t, Summary{}, s)
}

func TestPeak_FirstMaximumWins(t *testing.T) {
	points := []Point{
		{Date: "2024-01-01", Count: 0},
		{Date: "2024-01-02", Count: 3},
		{Date: "2024-01-03", Count: 3},
		{Date: "2024-01-04", Count: 1},
	}

	peak, date := Peak(points)

	assert.Equal(t, 3, peak)
	require.NotNil(t, date)
	assert.Equal(t, "2024-01-02", *date)
}

func TestYearToDate(t *testing.T) {
	today := time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC)

	r := YearToDate(today)

	assert.Equal(t, utcDay(2024, time.January, 1), r.Start)
	assert.Equal(t, utcDay(2024, time.March, 15), r.End)
}

func TestSummarize_OverSeriesRange(t *testing.T) {
	today := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	cal := Calendar{
		utcDay(2024, time.March, 13): 4,
		utcDay(2024, time.March, 14): 1,
		utcDay(2024, time.March, 15): 4,
		utcDay(2024, time.February, 1): 50,
	}
	points := BuildSeries(cal, Trailing(7), today)

	s := Summarize(cal, SeriesRange(points), points)

	assert.Equal(t, 9, s.TotalSubmissions)
	assert.Equal(t, 3, s.ActiveDayCount)
	assert.Equal(t, 3, s.MaxStreak)
	assert.Equal(t, 4, s.PeakDailyCount)
	require.NotNil(t, s.PeakDailyDate)
	assert.Equal(t, "2024-03-13", *s.PeakDailyDate)
	assert.Equal(t, []int{0, 0, 0, 0, 4, 1, 4}, Counts(points))
}
