// Package activity turns sparse day->count submission calendars into dense
// day series and scalar summaries (totals, active days, streaks, peaks).
//
// Every function here is pure: callers build a Calendar once per request and
// hand it to BuildSeries and the aggregate helpers, none of which mutate it.
package activity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const SecondsPerDay int64 = 86400

// Calendar maps the epoch second of a UTC midnight to the number of
// submissions recorded on that UTC day.
type Calendar map[int64]int

// Entry is a single raw (timestamp, count) pair as received from upstream.
// Timestamps need not be midnight aligned.
type Entry struct {
	Timestamp int64
	Count     int
}

// DayKey aligns an epoch second to the start of its UTC day.
func DayKey(sec int64) int64 {
	day := sec / SecondsPerDay
	if sec%SecondsPerDay < 0 {
		day--
	}
	return day * SecondsPerDay
}

// Normalize collapses a raw calendar keyed by epoch seconds into UTC day
// buckets. Keys or values that fail numeric coercion count as 0, and counts
// landing on the same UTC day are summed.
func Normalize(raw map[string]any) Calendar {
	cal := make(Calendar, len(raw))
	for k, v := range raw {
		cal[DayKey(coerceSeconds(k))] += coerceCount(v)
	}
	return cal
}

// ParseCalendar decodes the JSON-object-in-a-string form used by the upstream
// submission calendar. Malformed input yields an empty Calendar.
func ParseCalendar(s string) Calendar {
	s = strings.TrimSpace(s)
	if s == "" {
		return Calendar{}
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Calendar{}
	}
	return Normalize(raw)
}

// FromEntries is Normalize for already typed entries.
func FromEntries(entries []Entry) Calendar {
	cal := make(Calendar, len(entries))
	for _, e := range entries {
		count := e.Count
		if count < 0 {
			count = 0
		}
		cal[DayKey(e.Timestamp)] += count
	}
	return cal
}

func coerceSeconds(k string) int64 {
	k = strings.TrimSpace(k)
	if n, err := strconv.ParseInt(k, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(k, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64/2 {
		return 0
	}
	return int64(math.Trunc(f))
}

func coerceCount(v any) int {
	var f float64
	switch t := v.(type) {
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case float32:
		f = float64(t)
	case float64:
		f = t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			f = float64(n)
		} else if x, err := t.Float64(); err == nil {
			f = x
		}
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = x
	default:
		return 0
	}
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
