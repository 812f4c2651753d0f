package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driven"
)

// grantStore implements driven.GrantStore.
type grantStore struct {
	store *Store
}

var _ driven.GrantStore = (*grantStore)(nil)

// Save stores or replaces the grant for an account. The id and creation
// time of an existing grant are kept.
func (s *grantStore) Save(ctx context.Context, grant domain.Grant) error {
	if grant.ID == "" || grant.Email == "" {
		return domain.ErrInvalidInput
	}

	scopesJSON, err := json.Marshal(grant.Scopes)
	if err != nil {
		return fmt.Errorf("marshalling scopes: %w", err)
	}

	now := time.Now().UTC()
	if grant.CreatedAt.IsZero() {
		grant.CreatedAt = now
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO grants (id, email, refresh_token, scopes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			refresh_token = excluded.refresh_token,
			scopes = excluded.scopes,
			updated_at = excluded.updated_at
	`, grant.ID, grant.Email, grant.RefreshToken, string(scopesJSON), grant.CreatedAt, now)
	if err != nil {
		return fmt.Errorf("saving grant: %w", err)
	}
	return nil
}

// GetByEmail retrieves the grant for an account.
func (s *grantStore) GetByEmail(ctx context.Context, email string) (*domain.Grant, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, email, refresh_token, scopes, created_at, updated_at
		FROM grants WHERE email = ?
	`, email)
	return scanGrant(row)
}

// List returns all grants ordered by creation time.
func (s *grantStore) List(ctx context.Context) ([]domain.Grant, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, email, refresh_token, scopes, created_at, updated_at
		FROM grants ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing grants: %w", err)
	}
	defer rows.Close()

	var grants []domain.Grant
	for rows.Next() {
		grant, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		grants = append(grants, *grant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating grants: %w", err)
	}
	return grants, nil
}

// Delete removes the grant for an account.
func (s *grantStore) Delete(ctx context.Context, email string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM grants WHERE email = ?", email); err != nil {
		return fmt.Errorf("deleting grant: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanGrant scans a single grant row.
func scanGrant(row rowScanner) (*domain.Grant, error) {
	var grant domain.Grant
	var scopesJSON sql.NullString

	if err := row.Scan(&grant.ID, &grant.Email, &grant.RefreshToken,
		&scopesJSON, &grant.CreatedAt, &grant.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning grant: %w", err)
	}

	if scopesJSON.Valid && scopesJSON.String != jsonNull {
		if err := json.Unmarshal([]byte(scopesJSON.String), &grant.Scopes); err != nil {
			return nil, fmt.Errorf("unmarshalling scopes: %w", err)
		}
	}

	return &grant, nil
}
