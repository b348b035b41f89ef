package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// ============================================================================
// USERS
// ============================================================================

// CreateUser inserts a new user account
func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (email, password_hash, name, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.Pool.QueryRow(
		ctx, query,
		user.Email, user.PasswordHash, user.Name, user.IsAdmin,
	).Scan(&user.ID, &user.CreatedAt)
}

// GetUserByEmail retrieves a user by email address
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, password_hash, name, is_admin, created_at, last_login_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.Pool.QueryRow(ctx, query, email))
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, email, password_hash, name, is_admin, created_at, last_login_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.Pool.QueryRow(ctx, query, id))
}

// UpdateLastLogin records a successful login time
func (r *Repository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, userID, at)
	return err
}

func (r *Repository) scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.IsAdmin, &user.CreatedAt, &user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ============================================================================
// SESSIONS
// ============================================================================

// CreateSession stores a refresh-token session
func (r *Repository) CreateSession(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO sessions (user_id, refresh_token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.Pool.QueryRow(
		ctx, query,
		session.UserID, session.RefreshToken, session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt)
}

// GetSessionByToken retrieves an active (non-revoked) session by token
func (r *Repository) GetSessionByToken(ctx context.Context, refreshToken string) (*Session, error) {
	query := `
		SELECT id, user_id, refresh_token, expires_at, revoked, created_at
		FROM sessions
		WHERE refresh_token = $1 AND revoked = FALSE
	`
	session := &Session{}
	err := r.db.Pool.QueryRow(ctx, query, refreshToken).Scan(
		&session.ID, &session.UserID, &session.RefreshToken,
		&session.ExpiresAt, &session.Revoked, &session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

// RevokeSession marks a session as revoked
func (r *Repository) RevokeSession(ctx context.Context, sessionID string) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE sessions SET revoked = TRUE WHERE id = $1`, sessionID)
	return err
}

// RevokeUserSessions revokes every session belonging to a user
func (r *Repository) RevokeUserSessions(ctx context.Context, userID string) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE sessions SET revoked = TRUE WHERE user_id = $1`, userID)
	return err
}

// DeleteExpiredSessions removes sessions past their expiry
func (r *Repository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// EnsureDefaultUser creates the fixed single-user account used when
// authentication is disabled. Idempotent.
func (r *Repository) EnsureDefaultUser(ctx context.Context, id string) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, is_admin)
		VALUES ($1, 'local@localhost', '', 'Local User', TRUE)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.Pool.Exec(ctx, query, id)
	return err
}
