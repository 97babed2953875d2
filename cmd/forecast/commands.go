package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/cache"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/config"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/drive"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/forecast"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/repository"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/salesdata"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/service"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/storage"
	"github.com/andresuchdata/inventory-predictor/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

var errSourceRequired = errors.New("exactly one of --file, --object, --drive-file-id or --drive-path is required")

// sourceFlags holds the mutually exclusive sales history locations.
type sourceFlags struct {
	File        string
	Object      string
	DriveFileID string
	DrivePath   string
}

func sourceFlagsFrom(c *cli.Context) sourceFlags {
	return sourceFlags{
		File:        strings.TrimSpace(c.String("file")),
		Object:      strings.TrimSpace(c.String("object")),
		DriveFileID: strings.TrimSpace(c.String("drive-file-id")),
		DrivePath:   strings.TrimSpace(c.String("drive-path")),
	}
}

func (f sourceFlags) validate() error {
	set := 0
	for _, v := range []string{f.File, f.Object, f.DriveFileID, f.DrivePath} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return errSourceRequired
	}
	return nil
}

func (f sourceFlags) needsDrive() bool {
	return f.DriveFileID != "" || f.DrivePath != ""
}

// buildSource resolves the flags to a salesdata.Source. Remote clients are
// created only for the location in use.
func buildSource(ctx context.Context, f sourceFlags, objects storage.ObjectStorage, files *drive.Service) (salesdata.Source, error) {
	switch {
	case f.File != "":
		return salesdata.FileSource{Path: f.File}, nil
	case f.Object != "":
		return salesdata.ObjectSource{Storage: objects, Key: f.Object}, nil
	case f.DriveFileID != "":
		return salesdata.DriveSource{Drive: files, FileID: f.DriveFileID}, nil
	case f.DrivePath != "":
		id, err := files.FindFileByPath(ctx, f.DrivePath)
		if err != nil {
			return nil, err
		}
		return salesdata.DriveSource{Drive: files, FileID: id}, nil
	}
	return nil, errSourceRequired
}

func archiveKey(productID string, at time.Time) string {
	id := strings.TrimSpace(productID)
	if id == "" {
		id = "unknown"
	}
	return fmt.Sprintf("forecasts/%s/%s.json", id, at.UTC().Format("20060102T150405Z"))
}

func runPredict(c *cli.Context, cfg *config.Config) error {
	ctx := c.Context
	flags := sourceFlagsFrom(c)
	if err := flags.validate(); err != nil {
		return err
	}

	var objects storage.ObjectStorage
	if flags.Object != "" || c.Bool("archive") {
		client, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		objects = client
	}

	var files *drive.Service
	if flags.needsDrive() {
		svc, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
		if err != nil {
			return fmt.Errorf("failed to initialize drive client: %w", err)
		}
		files = svc
	}

	src, err := buildSource(ctx, flags, objects, files)
	if err != nil {
		return err
	}
	history, err := salesdata.Load(ctx, src)
	if err != nil {
		return err
	}
	logger.Log.Debug().Str("source", src.String()).Int("records", len(history)).Msg("Loaded sales history")

	repo := repository.NewNoopPredictionRepository()
	if c.Bool("record") {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = repository.NewPredictionRepository(db)
	}

	svc := service.NewForecastService(forecast.New(cfg.Forecast), repo, nil)
	resp, err := svc.Predict(ctx, domain.PredictionRequest{
		ProductID:    c.String("product-id"),
		CurrentStock: c.Int("current-stock"),
		SafetyStock:  c.Int("safety-stock"),
		SalesHistory: history,
	}, service.PredictOptions{IncludeGraph: c.Bool("include-graph")})
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	body, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}

	if c.Bool("archive") {
		key := archiveKey(resp.ProductID, time.Now())
		if err := objects.UploadObject(ctx, key, body, "application/json"); err != nil {
			return fmt.Errorf("failed to archive prediction: %w", err)
		}
		logger.Log.Info().Str("key", key).Msg("Archived prediction")
	}

	return writeLine(c.App.Writer, body)
}

func runMigrate(c *cli.Context, cfg *config.Config) error {
	db, err := openDB(c.Context, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(c.Context, db); err != nil {
		return err
	}
	logger.Log.Info().Msg("Prediction log schema is up to date")
	return nil
}

func runHistory(c *cli.Context, cfg *config.Config) error {
	riskLevels, err := domain.ParseRiskLevels(c.String("risk-level"))
	if err != nil {
		return err
	}

	db, err := openDB(c.Context, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewForecastService(nil, repository.NewPredictionRepository(db), nil)
	records, err := svc.History(c.Context, domain.PredictionFilter{
		ProductID:  c.String("product-id"),
		RiskLevels: riskLevels,
		Limit:      c.Int("limit"),
	})
	if err != nil {
		return err
	}

	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return writeLine(c.App.Writer, body)
}

func runSources(c *cli.Context, cfg *config.Config) error {
	objects, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	return listSources(c.Context, objects, c.String("prefix"), c.App.Writer)
}

// listSources prints the CSV objects under prefix, one "key<TAB>size" per line.
func listSources(ctx context.Context, objects storage.ObjectStorage, prefix string, w io.Writer) error {
	infos, err := objects.ListObjects(ctx, strings.TrimSpace(prefix))
	if err != nil {
		return err
	}
	for _, info := range infos {
		if !strings.EqualFold(path.Ext(info.Key), ".csv") {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\n", info.Key, info.Size); err != nil {
			return err
		}
	}
	return nil
}

func runCacheClear(c *cli.Context, cfg *config.Config) error {
	predictionCache, err := cache.NewPredictionCache(cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to connect to cache: %w", err)
	}
	if err := predictionCache.InvalidateAll(c.Context); err != nil {
		return err
	}
	logger.Log.Info().Bool("enabled", cfg.Cache.Enabled).Msg("Prediction cache cleared")
	return nil
}

func openDB(ctx context.Context, cfg *config.Config) (*postgres.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := postgres.NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func writeLine(w io.Writer, body []byte) error {
	_, err := fmt.Fprintf(w, "%s\n", body)
	return err
}
