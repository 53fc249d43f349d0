package resolver

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/db"
)

// DBResolver resolves identities using the database.
type DBResolver struct {
	db *db.DB
}

func NewDBResolver(db *db.DB) *DBResolver {
	return &DBResolver{db: db}
}

func (r *DBResolver) Resolve(
	ctx context.Context,
	identity *auth.ExternalIdentity,
) (uuid.UUID, error) {

	if identity == nil {
		return uuid.Nil, errors.New("identity is nil")
	}

	// 1. Try identity lookup (provider + provider_user_id)
	var userID uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM identities
		WHERE provider = $1
		  AND provider_user_id = $2
	`,
		identity.Provider,
		identity.ProviderUserID,
	).Scan(&userID)

	if err == nil {
		return userID, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, err
	}

	// 2. Try email-based linking (existing user, new provider)
	err = r.db.QueryRowContext(ctx, `
		SELECT id
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`,
		identity.Email,
	).Scan(&userID)

	if err == nil {
		if err := r.linkIdentity(ctx, userID, identity); err != nil {
			return uuid.Nil, err
		}
		return userID, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, err
	}

	// 3. Create new user carrying the provider's display attributes
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, email_verified, full_name, avatar_url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		RETURNING id
	`,
		identity.Email,
		identity.EmailVerified,
		identity.FullName,
		identity.AvatarURL,
	).Scan(&userID)

	if err != nil {
		return uuid.Nil, err
	}

	// 4. Create identity mapping
	if err := r.linkIdentity(ctx, userID, identity); err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

func (r *DBResolver) linkIdentity(
	ctx context.Context,
	userID uuid.UUID,
	identity *auth.ExternalIdentity,
) error {
	// ON CONFLICT keeps a concurrent duplicate callback from failing
	// the later of the two inserts.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO identities (user_id, provider, provider_user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT identities_provider_unique DO NOTHING
	`,
		userID,
		identity.Provider,
		identity.ProviderUserID,
	)
	return err
}

func (r *DBResolver) UserByID(
	ctx context.Context,
	id uuid.UUID,
) (*auth.Identity, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(avatar_url, '')
		FROM users
		WHERE id = $1
	`, id))
}

func (r *DBResolver) UserByEmail(
	ctx context.Context,
	email string,
) (*auth.Identity, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(avatar_url, '')
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email))
}

func (r *DBResolver) scanUser(row *sql.Row) (*auth.Identity, error) {
	var (
		id        uuid.UUID
		email     string
		fullName  string
		avatarURL string
	)

	err := row.Scan(&id, &email, &fullName, &avatarURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // absent user is not an error
	}
	if err != nil {
		return nil, err
	}

	return &auth.Identity{
		ID:    id,
		Email: email,
		Metadata: auth.Metadata{
			FullName:  fullName,
			AvatarURL: avatarURL,
		},
	}, nil
}
