package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// Predict handles POST /predict
func (h *ForecastHandler) Predict(c *gin.Context) {
	var req domain.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	opts := service.PredictOptions{IncludeGraph: queryBool(c, "include_graph")}
	resp, err := h.service.Predict(c.Request.Context(), req, opts)
	if err != nil {
		log.Error().Err(err).Str("product_id", req.ProductID).Msg("prediction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPredictions handles GET /api/v1/predictions
func (h *ForecastHandler) GetPredictions(c *gin.Context) {
	filter := domain.PredictionFilter{
		ProductID: strings.TrimSpace(c.Query("product_id")),
	}

	riskLevels, err := domain.ParseRiskLevels(c.Query("risk_level"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid risk_level", "details": err.Error()})
		return
	}
	filter.RiskLevels = riskLevels

	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	records, err := h.service.History(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch predictions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": records,
		"total": len(records),
	})
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && v
}
