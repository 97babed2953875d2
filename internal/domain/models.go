// backend-go/internal/domain/models.go
package domain

import "time"

// SalesRecord is a single day of sales as sent by clients
type SalesRecord struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

// PredictionRequest is the input for a demand prediction
type PredictionRequest struct {
	ProductID    string        `json:"productId"`
	CurrentStock int           `json:"currentStock"`
	SafetyStock  int           `json:"safetyStock"`
	SalesHistory []SalesRecord `json:"salesHistory"`
}

// PredictionResponse is the outcome of a demand prediction
type PredictionResponse struct {
	ProductID              string    `json:"productId"`
	PredictedMonthlyDemand int       `json:"predictedMonthlyDemand"`
	AverageDailySales      float64   `json:"averageDailySales"`
	Trend                  string    `json:"trend"`
	ReorderQuantity        int       `json:"reorderQuantity"`
	RiskLevel              string    `json:"riskLevel"`
	ForecastGraph          []float64 `json:"forecastGraph,omitempty"`
}

// PredictionRecord is a logged prediction. Only inputs that shape the
// outcome are kept; the sales history itself is never stored.
type PredictionRecord struct {
	ID                     int64     `json:"id" db:"id"`
	ProductID              string    `json:"productId" db:"product_id"`
	CurrentStock           int       `json:"currentStock" db:"current_stock"`
	SafetyStock            int       `json:"safetyStock" db:"safety_stock"`
	HistoryDays            int       `json:"historyDays" db:"history_days"`
	PredictedMonthlyDemand int       `json:"predictedMonthlyDemand" db:"predicted_monthly_demand"`
	AverageDailySales      float64   `json:"averageDailySales" db:"average_daily_sales"`
	Trend                  string    `json:"trend" db:"trend"`
	ReorderQuantity        int       `json:"reorderQuantity" db:"reorder_quantity"`
	RiskLevel              string    `json:"riskLevel" db:"risk_level"`
	DaysOfCover            float64   `json:"daysOfCover" db:"days_of_cover"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`

	// RiskLabel is filled on read for display.
	RiskLabel string `json:"riskLabel" db:"-"`
}

// PredictionFilter narrows prediction log queries
type PredictionFilter struct {
	ProductID  string   `json:"product_id"`
	RiskLevels []string `json:"risk_levels"`
	Limit      int      `json:"limit"`
}
