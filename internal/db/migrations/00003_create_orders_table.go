package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpOrdersTable, DownOrdersTable)
}

func UpOrdersTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE orders
(
    id                  BIGSERIAL PRIMARY KEY,
    order_number        VARCHAR(32)    NOT NULL UNIQUE,
    user_id             BIGINT REFERENCES users (id),
    guest_name          VARCHAR(255),
    guest_phone         VARCHAR(32),
    address_id          BIGINT         NOT NULL REFERENCES addresses (id),
    total_amount        NUMERIC(10, 2) NOT NULL,
    payment_method      VARCHAR(16)    NOT NULL DEFAULT 'CASH',
    payment_status      VARCHAR(16)    NOT NULL DEFAULT 'PENDING',
    razorpay_order_id   VARCHAR(64),
    razorpay_payment_id VARCHAR(64),
    status              VARCHAR(32)    NOT NULL DEFAULT 'PENDING',
    created_at          TIMESTAMPTZ    NOT NULL DEFAULT NOW(),
    updated_at          TIMESTAMPTZ    NOT NULL DEFAULT NOW(),
    CONSTRAINT orders_identity_check CHECK (
        (user_id IS NOT NULL AND guest_name IS NULL AND guest_phone IS NULL)
            OR
        (user_id IS NULL AND guest_name IS NOT NULL AND guest_phone IS NOT NULL)
        )
);
CREATE INDEX idx_orders_user_id ON orders (user_id);
CREATE INDEX idx_orders_status ON orders (status);`)
	return err
}

func DownOrdersTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE orders;")
	return err
}
