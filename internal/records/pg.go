package records

import (
	"context"
	"fmt"

	"auth-api/internal/db"
)

// PGStore persists session records in the user_sessions table.
type PGStore struct {
	db *db.DB
}

func NewPGStore(db *db.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Save(ctx context.Context, rec SessionRecord) error {
	if rec.SessionID == "" || rec.UserID == "" {
		return fmt.Errorf("records: missing session_id or user_id")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_sessions (session_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    created_at = EXCLUDED.created_at
	`, rec.SessionID, rec.UserID, rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("records: save failed: %w", err)
	}
	return nil
}

func (s *PGStore) Search(ctx context.Context, sessionID string) ([]SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, user_id, created_at
		FROM user_sessions
		WHERE session_id = $1
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("records: search failed: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.SessionID, &rec.UserID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("records: scan failed: %w", err)
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

func (s *PGStore) Remove(ctx context.Context, rec SessionRecord) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM user_sessions WHERE session_id = $1
	`, rec.SessionID)

	if err != nil {
		return false, fmt.Errorf("records: remove failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("records: remove failed: %w", err)
	}
	return affected > 0, nil
}
