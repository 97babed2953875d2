package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS predictions (
		id BIGSERIAL PRIMARY KEY,
		product_id TEXT NOT NULL,
		current_stock INTEGER NOT NULL,
		safety_stock INTEGER NOT NULL,
		history_days INTEGER NOT NULL,
		predicted_monthly_demand INTEGER NOT NULL,
		average_daily_sales DOUBLE PRECISION NOT NULL,
		trend TEXT NOT NULL,
		reorder_quantity INTEGER NOT NULL,
		risk_level TEXT NOT NULL,
		days_of_cover DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_product_created
		ON predictions (product_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_risk_level
		ON predictions (risk_level)`,
}

// Migrate creates the prediction log schema if it does not exist.
func Migrate(ctx context.Context, db *DB) error {
	return db.WithTx(ctx, func(tx *sql.Tx) error {
		for i, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration step %d: %w", i+1, err)
			}
		}
		log.Info().Int("statements", len(schema)).Msg("prediction schema ready")
		return nil
	})
}
