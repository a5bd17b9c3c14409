// Package postgres implements the account store over PostgreSQL.
// Uniqueness (email, federated ID) is enforced by the database indexes;
// a concurrent duplicate insert surfaces as account.ErrConflict.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"identity-service/internal/account"
	"identity-service/internal/db"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, COALESCE(password_hash, ''), COALESCE(federated_id, ''),
		       created_at, updated_at
		FROM accounts
		WHERE LOWER(email) = LOWER($1)
	`, email)

	return scanAccount(row)
}

func (s *Store) FindByEmailOrFederatedID(ctx context.Context, email, federatedID string) (*account.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, COALESCE(password_hash, ''), COALESCE(federated_id, ''),
		       created_at, updated_at
		FROM accounts
		WHERE LOWER(email) = LOWER($1)
		   OR federated_id = $2
	`, email, federatedID)

	return scanAccount(row)
}

func (s *Store) Insert(ctx context.Context, a *account.Account) (*account.Account, error) {
	stored := *a
	stored.Email = account.NormalizeEmail(a.Email)

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (name, email, password_hash, federated_id)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		RETURNING id, created_at, updated_at
	`,
		stored.Name,
		stored.Email,
		stored.PasswordHash,
		stored.FederatedID,
	).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, account.ErrConflict
		}
		return nil, err
	}

	return &stored, nil
}

// LinkFederatedID attaches federatedID only while the row is still
// unlinked or already carries the same ID. Zero rows affected on an
// existing account means a concurrent link to a different identity won
// the race; that is a conflict, never a silent relink.
func (s *Store) LinkFederatedID(ctx context.Context, accountID, federatedID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET federated_id = $2, updated_at = NOW()
		WHERE id = $1
		  AND (federated_id IS NULL OR federated_id = $2)
	`, accountID, federatedID)

	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrConflict
		}
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)
	`, accountID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return account.ErrNotFound
	}
	return account.ErrConflict
}

func scanAccount(row *sql.Row) (*account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.PasswordHash,
		&a.FederatedID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, account.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
