package forecast

import "time"

// Trend classifies the slope of the fitted sales line.
type Trend string

const (
	TrendIncreasing       Trend = "increasing"
	TrendDecreasing       Trend = "decreasing"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// RiskLevel classifies stock on hand against the daily sales rate.
type RiskLevel string

const (
	RiskCritical  RiskLevel = "critical"
	RiskLowStock  RiskLevel = "low_stock"
	RiskSafe      RiskLevel = "safe"
	RiskOverstock RiskLevel = "overstock"
	RiskUnknown   RiskLevel = "unknown"
)

// Observation is the quantity sold on a single calendar day.
type Observation struct {
	Date     time.Time
	Quantity int
}

// Result is the outcome of a single forecast.
type Result struct {
	PredictedMonthlyDemand int       `json:"predicted_monthly_demand"`
	AverageDailySales      float64   `json:"average_daily_sales"`
	Trend                  Trend     `json:"trend"`
	ReorderQuantity        int       `json:"reorder_quantity"`
	RiskLevel              RiskLevel `json:"risk_level"`
	ForecastGraph          []float64 `json:"forecast_graph"`

	// Diagnostics, not part of the public response.
	DaysOfCover float64 `json:"days_of_cover"`
	Slope       float64 `json:"slope"`
	HistoryDays int     `json:"history_days"`
}

func emptyResult() Result {
	return Result{
		Trend:         TrendInsufficientData,
		RiskLevel:     RiskUnknown,
		ForecastGraph: []float64{},
	}
}
