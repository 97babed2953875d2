package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/repository/postgres"
	"github.com/lib/pq"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// PredictionRepository stores the outcome of each prediction.
type PredictionRepository interface {
	SavePrediction(ctx context.Context, record *domain.PredictionRecord) error
	ListPredictions(ctx context.Context, filter domain.PredictionFilter) ([]domain.PredictionRecord, error)
}

type predictionRepository struct {
	db *postgres.DB
}

func NewPredictionRepository(db *postgres.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) SavePrediction(ctx context.Context, record *domain.PredictionRecord) error {
	query := `
		INSERT INTO predictions (
			product_id, current_stock, safety_stock, history_days,
			predicted_monthly_demand, average_daily_sales, trend,
			reorder_quantity, risk_level, days_of_cover
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			record.ProductID, record.CurrentStock, record.SafetyStock, record.HistoryDays,
			record.PredictedMonthlyDemand, record.AverageDailySales, record.Trend,
			record.ReorderQuantity, record.RiskLevel, record.DaysOfCover,
		).Scan(&record.ID, &record.CreatedAt)
		if err != nil {
			return fmt.Errorf("error saving prediction: %w", err)
		}
		return nil
	})
}

func (r *predictionRepository) ListPredictions(ctx context.Context, filter domain.PredictionFilter) ([]domain.PredictionRecord, error) {
	query := `
		SELECT
			id, product_id, current_stock, safety_stock, history_days,
			predicted_monthly_demand, average_daily_sales, trend,
			reorder_quantity, risk_level, days_of_cover, created_at
		FROM predictions
		WHERE 1=1
	`

	var args []interface{}
	var conditions []string
	argCounter := 1

	if filter.ProductID != "" {
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", argCounter))
		args = append(args, filter.ProductID)
		argCounter++
	}

	if len(filter.RiskLevels) > 0 {
		conditions = append(conditions, fmt.Sprintf("risk_level = ANY($%d::text[])", argCounter))
		args = append(args, pq.Array(filter.RiskLevels))
		argCounter++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", argCounter)
	args = append(args, clampLimit(filter.Limit))

	records := []domain.PredictionRecord{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("error listing predictions: %w", err)
	}

	return records, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}

type noopPredictionRepository struct{}

// NewNoopPredictionRepository returns a repository that keeps nothing, used
// when the prediction log is disabled.
func NewNoopPredictionRepository() PredictionRepository {
	return noopPredictionRepository{}
}

func (noopPredictionRepository) SavePrediction(ctx context.Context, record *domain.PredictionRecord) error {
	return nil
}

func (noopPredictionRepository) ListPredictions(ctx context.Context, filter domain.PredictionFilter) ([]domain.PredictionRecord, error) {
	return []domain.PredictionRecord{}, nil
}
