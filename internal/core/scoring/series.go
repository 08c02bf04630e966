package scoring

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

const (
	DefaultDayWindow   = 30
	DefaultBucketLimit = 12
)

type SeriesInput struct {
	// Scores maps a day-stamp to the number of habits completed that day.
	Scores      map[string]int
	Mode        domain.BucketMode
	Today       time.Time
	TotalHabits int
	// DayWindow is the length of the day series; 0 means DefaultDayWindow.
	DayWindow int
	// BucketLimit keeps only the most recent week/month buckets; 0 means DefaultBucketLimit.
	BucketLimit int
}

type bucketing struct {
	start func(time.Time) time.Time
	label func(time.Time) string
	days  func(time.Time) int
}

var (
	weekly = bucketing{
		start: StartOfWeek,
		label: dayLabel,
		days:  func(time.Time) int { return 7 },
	}
	monthly = bucketing{
		start: StartOfMonth,
		label: monthLabel,
		days:  DaysInMonth,
	}
)

// BuildSeries returns the points of the requested mode in ascending key order.
func BuildSeries(in SeriesInput) []domain.SeriesPoint {
	switch in.Mode {
	case domain.BucketDay:
		return daySeries(in)
	case domain.BucketWeek:
		return bucketSeries(in, weekly)
	case domain.BucketMonth:
		return bucketSeries(in, monthly)
	default:
		return []domain.SeriesPoint{}
	}
}

func daySeries(in SeriesInput) []domain.SeriesPoint {
	window := in.DayWindow
	if window <= 0 {
		window = DefaultDayWindow
	}

	today := startOfDay(in.Today)
	points := make([]domain.SeriesPoint, 0, window)

	for i := window - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		key := domain.FormatDay(d)
		score := in.Scores[key]

		points = append(points, domain.SeriesPoint{
			Key:     key,
			Label:   dayLabel(d),
			Score:   score,
			Percent: Percent(score, in.TotalHabits),
		})
	}

	return points
}

func bucketSeries(in SeriesInput, b bucketing) []domain.SeriesPoint {
	limit := in.BucketLimit
	if limit <= 0 {
		limit = DefaultBucketLimit
	}

	sums := make(map[string]int)
	starts := make(map[string]time.Time)

	for day, score := range in.Scores {
		// a zero entry must fold exactly like a missing one
		if score == 0 {
			continue
		}
		d, err := domain.ParseDay(day)
		if err != nil {
			continue
		}
		start := b.start(d)
		key := domain.FormatDay(start)
		sums[key] += score
		starts[key] = start
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}

	points := make([]domain.SeriesPoint, 0, len(keys))
	for _, k := range keys {
		start := starts[k]
		points = append(points, domain.SeriesPoint{
			Key:     k,
			Label:   b.label(start),
			Score:   sums[k],
			Percent: Percent(sums[k], in.TotalHabits*b.days(start)),
		})
	}

	return points
}

// CountActiveDays counts the distinct days with a positive score from the
// start of today's week (Monday) and of today's month up to today inclusive.
func CountActiveDays(scores map[string]int, today time.Time) (week, month int) {
	today = startOfDay(today)

	for d := StartOfWeek(today); !d.After(today); d = d.AddDate(0, 0, 1) {
		if scores[domain.FormatDay(d)] > 0 {
			week++
		}
	}

	for d := StartOfMonth(today); !d.After(today); d = d.AddDate(0, 0, 1) {
		if scores[domain.FormatDay(d)] > 0 {
			month++
		}
	}

	return week, month
}
