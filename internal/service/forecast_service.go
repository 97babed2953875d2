package service

import (
	"context"
	"fmt"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/cache"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/forecast"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// PredictOptions tune what a prediction returns.
type PredictOptions struct {
	IncludeGraph bool
}

type ForecastService struct {
	forecaster *forecast.Forecaster
	repo       repository.PredictionRepository
	cache      cache.PredictionCache
}

func NewForecastService(forecaster *forecast.Forecaster, repo repository.PredictionRepository, cacheImpl cache.PredictionCache) *ForecastService {
	if forecaster == nil {
		forecaster = forecast.New(forecast.DefaultThresholds())
	}
	if repo == nil {
		repo = repository.NewNoopPredictionRepository()
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopPredictionCache()
	}
	return &ForecastService{forecaster: forecaster, repo: repo, cache: cacheImpl}
}

// Predict forecasts demand for the product in req. Cache and prediction log
// failures are logged and never fail the prediction. Only computed forecasts
// are logged; a cache hit is served without a new log entry.
func (s *ForecastService) Predict(ctx context.Context, req domain.PredictionRequest, opts PredictOptions) (*domain.PredictionResponse, error) {
	key := cache.BuildPredictionKey(req, s.forecaster.Thresholds())
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		log.Debug().Str("product_id", req.ProductID).Msg("forecast: cache hit")
		return shape(cached, opts), nil
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast: cache get failed")
	}

	observations, err := ToObservations(req.SalesHistory)
	if err != nil {
		return nil, err
	}

	result, err := s.forecaster.Predict(observations, req.CurrentStock, req.SafetyStock)
	if err != nil {
		return nil, fmt.Errorf("forecast %s: %w", req.ProductID, err)
	}

	resp := &domain.PredictionResponse{
		ProductID:              req.ProductID,
		PredictedMonthlyDemand: result.PredictedMonthlyDemand,
		AverageDailySales:      result.AverageDailySales,
		Trend:                  string(result.Trend),
		ReorderQuantity:        result.ReorderQuantity,
		RiskLevel:              string(result.RiskLevel),
		ForecastGraph:          result.ForecastGraph,
	}

	log.Info().
		Str("product_id", req.ProductID).
		Int("days", result.HistoryDays).
		Str("trend", resp.Trend).
		Str("risk_level", resp.RiskLevel).
		Int("predicted_monthly_demand", resp.PredictedMonthlyDemand).
		Msg("forecast computed")

	if err := s.cache.Set(ctx, key, resp); err != nil {
		log.Warn().Err(err).Msg("forecast: cache set failed")
	}

	record := &domain.PredictionRecord{
		ProductID:              req.ProductID,
		CurrentStock:           req.CurrentStock,
		SafetyStock:            req.SafetyStock,
		HistoryDays:            result.HistoryDays,
		PredictedMonthlyDemand: result.PredictedMonthlyDemand,
		AverageDailySales:      result.AverageDailySales,
		Trend:                  string(result.Trend),
		ReorderQuantity:        result.ReorderQuantity,
		RiskLevel:              string(result.RiskLevel),
		DaysOfCover:            result.DaysOfCover,
	}
	if err := s.repo.SavePrediction(ctx, record); err != nil {
		log.Warn().Err(err).Str("product_id", req.ProductID).Msg("forecast: save prediction failed")
	}

	return shape(resp, opts), nil
}

// History lists logged predictions, newest first, with display labels.
func (s *ForecastService) History(ctx context.Context, filter domain.PredictionFilter) ([]domain.PredictionRecord, error) {
	records, err := s.repo.ListPredictions(ctx, filter)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = make([]domain.PredictionRecord, 0)
	}
	for i := range records {
		records[i].RiskLabel = domain.RiskLevelLabel(records[i].RiskLevel)
	}
	return records, nil
}

// ToObservations parses client sales records into forecast observations.
func ToObservations(records []domain.SalesRecord) ([]forecast.Observation, error) {
	observations := make([]forecast.Observation, 0, len(records))
	for i, rec := range records {
		date, err := forecast.ParseDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("salesHistory[%d]: %w", i, err)
		}
		observations = append(observations, forecast.Observation{Date: date, Quantity: rec.Quantity})
	}
	return observations, nil
}

// shape returns a copy of resp without the graph unless it was requested.
func shape(resp *domain.PredictionResponse, opts PredictOptions) *domain.PredictionResponse {
	out := *resp
	if !opts.IncludeGraph {
		out.ForecastGraph = nil
	} else if out.ForecastGraph == nil {
		out.ForecastGraph = []float64{}
	}
	return &out
}
