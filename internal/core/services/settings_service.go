package services

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

type SettingsService struct {
	repo domain.SettingsRepository
}

func NewSettingsService(repo domain.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// EnsureSettings returns the user's settings, persisting the defaults on first access.
// A row saved concurrently wins over the defaults.
func (s *SettingsService) EnsureSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrSettingsNotFound) {
		return nil, err
	}

	if err := s.repo.CreateIfAbsent(ctx, domain.DefaultSettings(userID)); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *SettingsService) SetPassPercentage(ctx context.Context, userID string, passPercentage int) (*domain.Settings, error) {
	settings, err := domain.NewSettings(userID, passPercentage)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
