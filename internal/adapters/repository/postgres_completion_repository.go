package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

var _ domain.CompletionRepository = (*PostgresCompletionRepository)(nil)

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

const completionColumns = `user_id, habit_id, to_char(day, 'YYYY-MM-DD') AS day, completed, created_at`

func (r *PostgresCompletionRepository) Upsert(ctx context.Context, c *domain.Completion) error {
	query := `
		INSERT INTO habit_completions (user_id, habit_id, day, completed, created_at)
		VALUES ($1, $2, $3::date, $4, $5)
		ON CONFLICT (user_id, habit_id, day)
		DO UPDATE SET completed = EXCLUDED.completed`

	_, err := r.db.ExecContext(ctx, query, c.UserID, c.HabitID, c.Day, c.Completed, c.CreatedAt)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("upsert completion: %w", err)
	}
	return nil
}

func (r *PostgresCompletionRepository) Delete(ctx context.Context, userID, habitID, day string) error {
	query := `
		DELETE FROM habit_completions
		WHERE user_id = $1 AND habit_id = $2 AND day = $3::date`

	if _, err := r.db.ExecContext(ctx, query, userID, habitID, day); err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}
	return nil
}

func (r *PostgresCompletionRepository) ListByDay(ctx context.Context, userID, day string) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}

	query := `SELECT ` + completionColumns + `
		FROM habit_completions
		WHERE user_id = $1 AND day = $2::date AND completed = TRUE`

	if err := r.db.SelectContext(ctx, &completions, query, userID, day); err != nil {
		return nil, fmt.Errorf("list completions by day: %w", err)
	}
	return completions, nil
}

func (r *PostgresCompletionRepository) ListBetween(ctx context.Context, userID, since, until string) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}

	query := `SELECT ` + completionColumns + `
		FROM habit_completions
		WHERE user_id = $1 AND day BETWEEN $2::date AND $3::date AND completed = TRUE
		ORDER BY day ASC`

	if err := r.db.SelectContext(ctx, &completions, query, userID, since, until); err != nil {
		return nil, fmt.Errorf("list completions %s..%s: %w", since, until, err)
	}
	return completions, nil
}
