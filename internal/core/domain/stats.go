package domain

import (
	"fmt"
	"time"
)

// BucketMode selects how a series groups days.
type BucketMode string

const (
	BucketDay   BucketMode = "day"
	BucketWeek  BucketMode = "week"
	BucketMonth BucketMode = "month"
)

func ParseBucketMode(s string) (BucketMode, error) {
	switch m := BucketMode(s); m {
	case BucketDay, BucketWeek, BucketMonth:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode %q (must be day, week or month)", s)
	}
}

type DayScore struct {
	Day       string `json:"day,omitempty"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
	Pass      bool   `json:"pass"`
	Threshold int    `json:"threshold"`
}

type SeriesPoint struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Score   int    `json:"score"`
	Percent int    `json:"percent"`
}

type Charts struct {
	Today               string        `json:"today"`
	TotalHabits         int           `json:"total_habits"`
	ActiveDaysThisWeek  int           `json:"active_days_this_week"`
	ActiveDaysThisMonth int           `json:"active_days_this_month"`
	DaySeries           []SeriesPoint `json:"day_series"`
	WeekSeries          []SeriesPoint `json:"week_series"`
	MonthSeries         []SeriesPoint `json:"month_series"`
}

type TrackerDay struct {
	Day               string   `json:"day"`
	Habits            []*Habit `json:"habits"`
	CompletedHabitIDs []string `json:"completed_habit_ids"`
	Score             DayScore `json:"score"`
}

type ChartsInput struct {
	UserID string
	Today  time.Time
}
