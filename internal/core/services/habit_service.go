package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

type HabitService struct {
	repo domain.HabitRepository
}

func NewHabitService(repo domain.HabitRepository) *HabitService {
	return &HabitService{
		repo: repo,
	}
}

type CreateHabitInput struct {
	UserID string
	Name   string
}

type UpdateHabitInput struct {
	ID        string
	UserID    string
	Name      *string
	SortOrder *int
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Name)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListActiveByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	habit.SortOrder = len(existing)

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) ListActive(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListActiveByUserID(ctx, userID)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.owned(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := habit.Rename(*input.Name); err != nil {
			return nil, err
		}
	}

	if input.SortOrder != nil {
		if err := habit.ChangePosition(*input.SortOrder); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Archive(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	habit.Archive()

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) Restore(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	habit.Restore()

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// ApplyTemplate adds the given habit names, skipping names that match an
// active habit (case-insensitive) or an earlier name of the same selection.
func (s *HabitService) ApplyTemplate(ctx context.Context, userID string, names []string) ([]*domain.Habit, error) {
	existing, err := s.repo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(existing)+len(names))
	for _, h := range existing {
		seen[domain.NameKey(h.Name)] = true
	}

	toCreate := make([]*domain.Habit, 0, len(names))
	for _, name := range names {
		habit, err := domain.NewHabit(userID, name)
		if err != nil {
			return nil, fmt.Errorf("template habit %q: %w", name, err)
		}

		key := domain.NameKey(habit.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		habit.SortOrder = len(existing) + len(toCreate)
		toCreate = append(toCreate, habit)
	}

	if len(toCreate) == 0 {
		return toCreate, nil
	}

	if err := s.repo.CreateMany(ctx, toCreate); err != nil {
		return nil, err
	}

	return toCreate, nil
}

func (s *HabitService) owned(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}
