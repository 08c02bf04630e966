package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

var _ domain.SettingsRepository = (*PostgresSettingsRepository)(nil)

type PostgresSettingsRepository struct {
	db *sqlx.DB
}

func NewPostgresSettingsRepository(db *sqlx.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

func (r *PostgresSettingsRepository) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	var s domain.Settings

	query := `SELECT user_id, pass_percentage, updated_at FROM user_settings WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &s, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

func (r *PostgresSettingsRepository) Upsert(ctx context.Context, s *domain.Settings) error {
	query := `
		INSERT INTO user_settings (user_id, pass_percentage, updated_at)
		VALUES (:user_id, :pass_percentage, :updated_at)
		ON CONFLICT (user_id)
		DO UPDATE SET pass_percentage = EXCLUDED.pass_percentage,
		              updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		switch pgCode(err) {
		case codeCheckViolation:
			return domain.ErrInvalidPassPercentage
		case codeForeignKeyViolation:
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

func (r *PostgresSettingsRepository) CreateIfAbsent(ctx context.Context, s *domain.Settings) error {
	query := `
		INSERT INTO user_settings (user_id, pass_percentage, updated_at)
		VALUES (:user_id, :pass_percentage, :updated_at)
		ON CONFLICT (user_id) DO NOTHING`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		switch pgCode(err) {
		case codeCheckViolation:
			return domain.ErrInvalidPassPercentage
		case codeForeignKeyViolation:
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("create settings: %w", err)
	}
	return nil
}
