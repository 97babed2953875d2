package forecast

import (
	"math"
)

// Forecaster projects monthly demand from a daily sales history.
// It holds no mutable state and is safe for concurrent use.
type Forecaster struct {
	thresholds Thresholds
}

// New creates a forecaster. Non-positive thresholds fall back to defaults.
func New(thresholds Thresholds) *Forecaster {
	return &Forecaster{thresholds: thresholds.withDefaults()}
}

var defaultForecaster = New(DefaultThresholds())

// PredictDemand runs a forecast with the default thresholds.
func PredictDemand(observations []Observation, currentStock, safetyStock int) (Result, error) {
	return defaultForecaster.Predict(observations, currentStock, safetyStock)
}

// Thresholds returns the constants this forecaster classifies with.
func (f *Forecaster) Thresholds() Thresholds {
	return f.thresholds
}

// Predict computes demand, trend, reorder quantity and risk for one product.
// An empty history is not an error; it yields an insufficient_data result.
func (f *Forecaster) Predict(observations []Observation, currentStock, safetyStock int) (Result, error) {
	if len(observations) == 0 {
		return emptyResult(), nil
	}

	// 1. Densify so gaps count as zero-sale days
	series, err := Densify(observations, f.thresholds.MaxSpanDays)
	if err != nil {
		return Result{}, err
	}

	// 2. Average daily sales over the full span
	avg := series.Mean()

	// 3. Trend from the least squares slope over ordinal days
	fit := fitLine(series.Quantities)
	trend := f.thresholds.classifyTrend(fit.Slope)

	// 4. Project the horizon following the last observed day
	graph, total := f.project(fit, series.Len()-1)
	demand := int(total)
	if demand <= 0 {
		demand = int(avg * float64(f.thresholds.HorizonDays))
	}

	// 5. Reorder enough to cover demand plus safety stock
	reorder := demand + safetyStock - currentStock
	if reorder < 0 {
		reorder = 0
	}

	// 6. Days of cover and risk
	daysOfCover := f.thresholds.NoSalesCoverDays
	if avg > 0 {
		daysOfCover = float64(currentStock) / avg
	}

	return Result{
		PredictedMonthlyDemand: demand,
		AverageDailySales:      roundFloat(avg, 2),
		Trend:                  trend,
		ReorderQuantity:        reorder,
		RiskLevel:              f.thresholds.classifyRisk(daysOfCover),
		ForecastGraph:          graph,
		DaysOfCover:            daysOfCover,
		Slope:                  fit.Slope,
		HistoryDays:            series.Len(),
	}, nil
}

// project evaluates the line at the horizon days after lastOrdinal, clamping
// negative values to zero, and returns the values and their sum.
func (f *Forecaster) project(fit line, lastOrdinal int) ([]float64, float64) {
	graph := make([]float64, f.thresholds.HorizonDays)
	var total float64
	for i := range graph {
		v := math.Max(0, fit.At(float64(lastOrdinal+i+1)))
		graph[i] = v
		total += v
	}
	return graph, total
}

func roundFloat(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
