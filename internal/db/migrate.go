package db

import (
	"context"
	"database/sql"
)

const bootstrapMigration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS accounts (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    name text NOT NULL,
    email text NOT NULL,
    password_hash text,
    federated_id text,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT accounts_credential_present
        CHECK (password_hash IS NOT NULL OR federated_id IS NOT NULL)
);

CREATE UNIQUE INDEX IF NOT EXISTS accounts_email_lower_unique
ON accounts (LOWER(email));

CREATE UNIQUE INDEX IF NOT EXISTS accounts_federated_id_unique
ON accounts (federated_id)
WHERE federated_id IS NOT NULL;
`

// RunBootstrapMigration creates the accounts schema. The unique indexes
// and CHECK constraint are the storage-level enforcement of the account
// invariants: email unique case-insensitively, federated ID unique when
// present, at least one credential always present.
func RunBootstrapMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, bootstrapMigration)
	return err
}
