package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

type CompletionService struct {
	repo      domain.CompletionRepository
	habitRepo domain.HabitRepository
}

func NewCompletionService(repo domain.CompletionRepository, habitRepo domain.HabitRepository) *CompletionService {
	return &CompletionService{
		repo:      repo,
		habitRepo: habitRepo,
	}
}

type SetCompletionInput struct {
	UserID    string
	HabitID   string
	Day       string
	Completed bool
}

// SetCompletion marks a habit done for a day, or clears the mark.
// Clearing a day that was never marked is a no-op.
func (s *CompletionService) SetCompletion(ctx context.Context, input SetCompletionInput) error {
	completion, err := domain.NewCompletion(input.UserID, input.HabitID, input.Day)
	if err != nil {
		return err
	}

	habit, err := s.habitRepo.GetByID(ctx, input.HabitID)
	if err != nil {
		return err
	}
	if habit.UserID != input.UserID {
		return domain.ErrUnauthorized
	}

	if !input.Completed {
		return s.repo.Delete(ctx, input.UserID, input.HabitID, input.Day)
	}

	if habit.Archived {
		return domain.ErrHabitArchived
	}

	return s.repo.Upsert(ctx, completion)
}

func (s *CompletionService) ListByDay(ctx context.Context, userID, day string) ([]*domain.Completion, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return nil, err
	}
	return s.repo.ListByDay(ctx, userID, day)
}
