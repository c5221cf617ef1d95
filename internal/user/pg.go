package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"auth-api/internal/db"

	"github.com/google/uuid"
)

// PGStore is the canonical user store, backed by Postgres.
type PGStore struct {
	db *db.DB
}

func NewPGStore(db *db.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, email, passwordHash string) (User, error) {

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE LOWER(email) = LOWER($1)
		)
	`, email).Scan(&exists)

	if err != nil {
		return User{}, fmt.Errorf("user: lookup failed: %w", err)
	}

	if exists {
		return User{}, ErrAlreadyRegistered
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`, u.ID, u.Email, u.PasswordHash).Scan(&u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		return User{}, fmt.Errorf("user: insert failed: %w", err)
	}

	return u, nil
}

func (s *PGStore) FindBy(ctx context.Context, p Predicate) ([]User, error) {

	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if p.ID != "" {
		args = append(args, p.ID)
		where = append(where, fmt.Sprintf("id = $%d", len(args)))
	}
	if p.Email != "" {
		args = append(args, p.Email)
		where = append(where, fmt.Sprintf("LOWER(email) = LOWER($%d)", len(args)))
	}
	if p.SessionID != "" {
		args = append(args, p.SessionID)
		where = append(where, fmt.Sprintf("session_id = $%d", len(args)))
	}
	if p.ResetToken != "" {
		args = append(args, p.ResetToken)
		where = append(where, fmt.Sprintf("reset_token = $%d", len(args)))
	}

	if len(where) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, email, password_hash, session_id, reset_token,
		       created_at, updated_at
		FROM users
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("user: query failed: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var (
			u          User
			sessionID  sql.NullString
			resetToken sql.NullString
		)
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash,
			&sessionID, &resetToken,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("user: scan failed: %w", err)
		}
		u.SessionID = sessionID.String
		u.ResetToken = resetToken.String
		out = append(out, u)
	}

	return out, rows.Err()
}

func (s *PGStore) Update(ctx context.Context, userID string, f Fields) error {

	set := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if f.PasswordHash != nil {
		args = append(args, *f.PasswordHash)
		set = append(set, fmt.Sprintf("password_hash = $%d", len(args)))
	}
	if f.SessionID != nil {
		args = append(args, nullable(*f.SessionID))
		set = append(set, fmt.Sprintf("session_id = $%d", len(args)))
	}
	if f.ResetToken != nil {
		args = append(args, nullable(*f.ResetToken))
		set = append(set, fmt.Sprintf("reset_token = $%d", len(args)))
	}

	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, userID)

	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args),
	)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("user: update failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("user: update failed: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
