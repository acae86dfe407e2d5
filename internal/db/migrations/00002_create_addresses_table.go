package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpAddressesTable, DownAddressesTable)
}

func UpAddressesTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE addresses
(
    id         BIGSERIAL PRIMARY KEY,
    user_id    BIGINT REFERENCES users (id),
    label      VARCHAR(64)  NOT NULL DEFAULT 'Home',
    line1      VARCHAR(255) NOT NULL,
    line2      VARCHAR(255) NOT NULL DEFAULT '',
    city       VARCHAR(128) NOT NULL,
    state      VARCHAR(128) NOT NULL,
    pincode    VARCHAR(16)  NOT NULL,
    phone      VARCHAR(32)  NOT NULL,
    created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);`)
	return err
}

func DownAddressesTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE addresses;")
	return err
}
