package activity

import "time"

const dateLayout = "2006-01-02"

type WindowKind string

const (
	// WindowTrailing covers Length consecutive days ending today.
	WindowTrailing WindowKind = "trailing"
	// WindowRolling covers Length week columns, Sunday first, the last of
	// which contains today.
	WindowRolling WindowKind = "rolling"
)

// WindowSpec selects the shape of a series. Length is a day count for
// trailing windows and a column count for rolling grids.
type WindowSpec struct {
	Kind   WindowKind
	Length int
}

func Trailing(days int) WindowSpec { return WindowSpec{Kind: WindowTrailing, Length: days} }

func Rolling(columns int) WindowSpec { return WindowSpec{Kind: WindowRolling, Length: columns} }

// Days is the number of points BuildSeries returns for w.
func (w WindowSpec) Days() int {
	if w.Length <= 0 {
		return 0
	}
	switch w.Kind {
	case WindowTrailing:
		return w.Length
	case WindowRolling:
		return w.Length * 7
	default:
		return 0
	}
}

// Point is one day of a dense series.
type Point struct {
	TS    int64  `json:"ts"`
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// BuildSeries projects cal onto window, oldest first,
// zero-filling days that have no bucket.
//
// Days are walked in today's location: the label is the local calendar
// date, while the lookup key is the UTC day containing that local midnight.
// The upstream calendar is UTC keyed and the labels are meant for display,
// so the two intentionally differ outside UTC.
func BuildSeries(cal Calendar, window WindowSpec, today time.Time) []Point {
	n := window.Days()
	if n == 0 {
		return []Point{}
	}

	y, m, d := today.Date()
	loc := today.Location()
	first := d - (n - 1)
	if window.Kind == WindowRolling {
		first = d - int(today.Weekday()) - (window.Length-1)*7
	}

	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		day := time.Date(y, m, first+i, 0, 0, 0, 0, loc)
		key := DayKey(day.Unix())
		points = append(points, Point{
			TS:    key,
			Date:  day.Format(dateLayout),
			Count: cal[key],
		})
	}
	return points
}

// Counts returns the bare counts of a series, in order.
func Counts(points []Point) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.Count
	}
	return out
}
