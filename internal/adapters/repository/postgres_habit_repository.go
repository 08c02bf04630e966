package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

var _ domain.HabitRepository = (*PostgresHabitRepository)(nil)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

const insertHabitQuery = `
	INSERT INTO habits (id, user_id, name, archived, sort_order, created_at, updated_at)
	VALUES (:id, :user_id, :name, :archived, :sort_order, :created_at, :updated_at)`

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	if _, err := r.db.NamedExecContext(ctx, insertHabitQuery, h); err != nil {
		return translateHabitError(err)
	}
	return nil
}

func (r *PostgresHabitRepository) CreateMany(ctx context.Context, habits []*domain.Habit) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, h := range habits {
		if _, err := tx.NamedExecContext(ctx, insertHabitQuery, h); err != nil {
			return translateHabitError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit habits: %w", err)
	}
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var h domain.Habit

	err := r.db.GetContext(ctx, &h, `SELECT * FROM habits WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return &h, nil
}

func (r *PostgresHabitRepository) ListActiveByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}

	query := `
		SELECT * FROM habits
		WHERE user_id = $1 AND archived = FALSE
		ORDER BY sort_order ASC, created_at ASC`

	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return habits, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	h.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE habits
		SET name = :name,
		    archived = :archived,
		    sort_order = :sort_order,
		    updated_at = :updated_at
		WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, h)
	if err != nil {
		return translateHabitError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}

func translateHabitError(err error) error {
	switch pgCode(err) {
	case codeForeignKeyViolation:
		return domain.ErrUserNotFound
	case codeCheckViolation:
		return domain.ErrHabitNameTooLong
	}
	return fmt.Errorf("habit query failed: %w", err)
}
