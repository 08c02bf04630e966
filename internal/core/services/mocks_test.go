package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

func (m *MockHabitRepo) CreateMany(ctx context.Context, habits []*domain.Habit) error {
	return m.Called(ctx, habits).Error(0)
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) ListActiveByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) Update(ctx context.Context, habit *domain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

type MockCompletionRepo struct {
	mock.Mock
}

func (m *MockCompletionRepo) Upsert(ctx context.Context, c *domain.Completion) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompletionRepo) Delete(ctx context.Context, userID, habitID, day string) error {
	return m.Called(ctx, userID, habitID, day).Error(0)
}

func (m *MockCompletionRepo) ListByDay(ctx context.Context, userID, day string) ([]*domain.Completion, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Completion), args.Error(1)
}

func (m *MockCompletionRepo) ListBetween(ctx context.Context, userID, since, until string) ([]*domain.Completion, error) {
	args := m.Called(ctx, userID, since, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Completion), args.Error(1)
}

type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepo) Upsert(ctx context.Context, s *domain.Settings) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSettingsRepo) CreateIfAbsent(ctx context.Context, s *domain.Settings) error {
	return m.Called(ctx, s).Error(0)
}

func done(userID, habitID, day string) *domain.Completion {
	return &domain.Completion{UserID: userID, HabitID: habitID, Day: day, Completed: true}
}
