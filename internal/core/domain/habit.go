package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 80 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrHabitArchived      = errors.New("habit is archived")
	ErrInvalidSortOrder   = errors.New("sort order cannot be negative")
)

const MaxHabitNameLen = 80

type Habit struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Archived  bool      `json:"archived" db:"archived"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func normalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxHabitNameLen {
		return "", ErrHabitNameTooLong
	}
	return trimmed, nil
}

func NewHabit(userID, name string) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	cleanName, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      cleanName,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (h *Habit) Rename(name string) error {
	if h.Archived {
		return ErrHabitArchived
	}

	cleanName, err := normalizeName(name)
	if err != nil {
		return err
	}

	h.Name = cleanName
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) ChangePosition(newOrder int) error {
	if h.Archived {
		return ErrHabitArchived
	}
	if newOrder < 0 {
		return ErrInvalidSortOrder
	}

	h.SortOrder = newOrder
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) Archive() {
	if h.Archived {
		return
	}
	h.Archived = true
	h.UpdatedAt = time.Now().UTC()
}

func (h *Habit) Restore() {
	if !h.Archived {
		return
	}
	h.Archived = false
	h.UpdatedAt = time.Now().UTC()
}

// ActiveHabitIDs returns the set of ids of the habits that are not archived.
func ActiveHabitIDs(habits []*Habit) map[string]struct{} {
	ids := make(map[string]struct{}, len(habits))
	for _, h := range habits {
		if h == nil || h.Archived {
			continue
		}
		ids[h.ID] = struct{}{}
	}
	return ids
}

// NameKey is the case-insensitive key used to detect duplicate habit names.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
