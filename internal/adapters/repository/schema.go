package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the tables used by the Postgres repositories.
// Safe to call on every start: every statement is IF NOT EXISTS.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS habits (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name       TEXT NOT NULL CHECK (char_length(name) BETWEEN 1 AND 80),
    archived   BOOLEAN NOT NULL DEFAULT FALSE,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_habits_user_active ON habits(user_id) WHERE archived = FALSE;

CREATE TABLE IF NOT EXISTS habit_completions (
    user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    habit_id   TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
    day        DATE NOT NULL,
    completed  BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, habit_id, day)
);

CREATE INDEX IF NOT EXISTS idx_habit_completions_user_day ON habit_completions(user_id, day);

CREATE TABLE IF NOT EXISTS user_settings (
    user_id         TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    pass_percentage INTEGER NOT NULL DEFAULT 80 CHECK (pass_percentage BETWEEN 0 AND 100),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
