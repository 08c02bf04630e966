package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

var (
	_ domain.HabitRepository      = (*InMemoryHabitRepository)(nil)
	_ domain.CompletionRepository = (*InMemoryCompletionRepository)(nil)
	_ domain.SettingsRepository   = (*InMemorySettingsRepository)(nil)
	_ domain.UserRepository       = (*InMemoryUserRepository)(nil)
)

// In-memory stores return copies so callers cannot mutate stored rows.

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) CreateMany(ctx context.Context, habits []*domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range habits {
		clone := *h
		r.store[h.ID] = &clone
	}
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) ListActiveByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := []*domain.Habit{}
	for _, h := range r.store {
		if h.UserID == userID && !h.Archived {
			clone := *h
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].SortOrder != habits[j].SortOrder {
			return habits[i].SortOrder < habits[j].SortOrder
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

type completionKey struct {
	userID, habitID, day string
}

type InMemoryCompletionRepository struct {
	store map[completionKey]*domain.Completion

	mu sync.RWMutex
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[completionKey]*domain.Completion),
	}
}

func (r *InMemoryCompletionRepository) Upsert(ctx context.Context, c *domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *c
	r.store[completionKey{c.UserID, c.HabitID, c.Day}] = &clone
	return nil
}

func (r *InMemoryCompletionRepository) Delete(ctx context.Context, userID, habitID, day string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, completionKey{userID, habitID, day})
	return nil
}

func (r *InMemoryCompletionRepository) ListByDay(ctx context.Context, userID, day string) ([]*domain.Completion, error) {
	return r.list(func(c *domain.Completion) bool {
		return c.UserID == userID && c.Day == day
	}), nil
}

func (r *InMemoryCompletionRepository) ListBetween(ctx context.Context, userID, since, until string) ([]*domain.Completion, error) {
	return r.list(func(c *domain.Completion) bool {
		// day-stamps order lexically like the calendar
		return c.UserID == userID && c.Day >= since && c.Day <= until
	}), nil
}

func (r *InMemoryCompletionRepository) list(match func(*domain.Completion) bool) []*domain.Completion {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Completion{}
	for _, c := range r.store {
		if c.Completed && match(c) {
			clone := *c
			out = append(out, &clone)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].HabitID < out[j].HabitID
	})
	return out
}

type InMemorySettingsRepository struct {
	store map[string]domain.Settings

	mu sync.RWMutex
}

func NewInMemorySettingsRepository() *InMemorySettingsRepository {
	return &InMemorySettingsRepository{
		store: make(map[string]domain.Settings),
	}
}

func (r *InMemorySettingsRepository) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}
	return &s, nil
}

func (r *InMemorySettingsRepository) Upsert(ctx context.Context, s *domain.Settings) error {
	if err := domain.ValidatePassPercentage(s.PassPercentage); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[s.UserID] = *s
	return nil
}

func (r *InMemorySettingsRepository) CreateIfAbsent(ctx context.Context, s *domain.Settings) error {
	if err := domain.ValidatePassPercentage(s.PassPercentage); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[s.UserID]; !ok {
		r.store[s.UserID] = *s
	}
	return nil
}

type InMemoryUserRepository struct {
	byID map[string]domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID: make(map[string]domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.byID[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}
