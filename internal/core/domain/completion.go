package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidDay        = errors.New("invalid day (expected YYYY-MM-DD)")
	ErrInvalidCompletion = errors.New("invalid completion data")
)

// DayLayout is the canonical day-stamp layout.
const DayLayout = "2006-01-02"

var dayRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Completion records that a habit was done on a given day.
// The store keeps at most one row per (user, habit, day).
type Completion struct {
	UserID    string    `json:"user_id" db:"user_id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	Day       string    `json:"day" db:"day"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewCompletion(userID, habitID, day string) (*Completion, error) {
	c := &Completion{
		UserID:    userID,
		HabitID:   habitID,
		Day:       day,
		Completed: true,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Completion) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return errors.Join(ErrInvalidCompletion, errors.New("user_id is required"))
	}
	if strings.TrimSpace(c.HabitID) == "" {
		return errors.Join(ErrInvalidCompletion, errors.New("habit_id is required"))
	}
	if _, err := ParseDay(c.Day); err != nil {
		return err
	}
	return nil
}

// ParseDay validates a YYYY-MM-DD day-stamp and returns it as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	if !dayRegex.MatchString(s) {
		return time.Time{}, ErrInvalidDay
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDay
	}
	return t, nil
}

// FormatDay renders the calendar date of t as a day-stamp, ignoring its time of day.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}
