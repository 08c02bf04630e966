package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrUnauthorized  = errors.New("unauthorized access to resource")
)

type HabitRepository interface {
	// Create persists a new habit.
	Create(ctx context.Context, habit *Habit) error

	// CreateMany persists several habits of the same user atomically.
	CreateMany(ctx context.Context, habits []*Habit) error

	// GetByID retrieves a habit, archived or not.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListActiveByUserID returns the non-archived habits of a user,
	// ordered by sort_order then creation time.
	ListActiveByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update saves name, position and archival flag.
	Update(ctx context.Context, habit *Habit) error
}

type CompletionRepository interface {
	// Upsert records a completion, replacing any row for the same (user, habit, day).
	Upsert(ctx context.Context, c *Completion) error

	// Delete removes the row for (user, habit, day). Deleting a missing row is not an error.
	Delete(ctx context.Context, userID, habitID, day string) error

	// ListByDay returns the completed rows of a user for one day.
	ListByDay(ctx context.Context, userID, day string) ([]*Completion, error)

	// ListBetween returns the completed rows of a user with since <= day <= until.
	ListBetween(ctx context.Context, userID, since, until string) ([]*Completion, error)
}

type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when the user never saved settings.
	Get(ctx context.Context, userID string) (*Settings, error)

	// Upsert inserts or replaces the settings row of a user.
	Upsert(ctx context.Context, s *Settings) error

	// CreateIfAbsent inserts the row only when the user has none. An existing row is kept.
	CreateIfAbsent(ctx context.Context, s *Settings) error
}

var ErrSettingsNotFound = errors.New("settings not found")

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
