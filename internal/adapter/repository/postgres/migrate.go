package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

// SeatClassWidth is the VARCHAR width of bookings.seat_class. Booking
// requests must not accept longer class names.
const SeatClassWidth = 32

//go:embed schema.sql
var schema string

// Migrate creates the tables and indexes when they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
