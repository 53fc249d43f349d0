package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/db"
)

// PostgresStore persists profiles in the profiles table.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile

	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, COALESCE(name, ''), COALESCE(avatar_url, ''), created_at
		FROM profiles
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Email, &p.Name, &p.AvatarURL, &p.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile lookup: %w", err)
	}

	return &p, nil
}

func (s *PostgresStore) Insert(ctx context.Context, p Profile) error {
	// ON CONFLICT DO NOTHING makes the insert a no-op when another
	// request already provisioned this user, which is what keeps
	// duplicate concurrent callbacks from creating two profiles.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, name, avatar_url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (id) DO NOTHING
	`, p.ID, p.Email, p.Name, p.AvatarURL)

	if err != nil {
		return fmt.Errorf("profile insert: %w", err)
	}

	return nil
}
