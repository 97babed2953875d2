package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/config"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/salesdata"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/storage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFlags_Validate(t *testing.T) {
	tests := []struct {
		name    string
		flags   sourceFlags
		wantErr bool
	}{
		{name: "none", flags: sourceFlags{}, wantErr: true},
		{name: "file", flags: sourceFlags{File: "sales.csv"}},
		{name: "object", flags: sourceFlags{Object: "exports/sku-1.csv"}},
		{name: "drive id", flags: sourceFlags{DriveFileID: "abc"}},
		{name: "drive path", flags: sourceFlags{DrivePath: "exports/sku-1.csv"}},
		{name: "two", flags: sourceFlags{File: "sales.csv", DriveFileID: "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.flags.validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, errSourceRequired)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuildSource_File(t *testing.T) {
	src, err := buildSource(context.Background(), sourceFlags{File: "sales.csv"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, salesdata.FileSource{Path: "sales.csv"}, src)

	_, err = buildSource(context.Background(), sourceFlags{}, nil, nil)
	assert.ErrorIs(t, err, errSourceRequired)
}

func TestArchiveKey(t *testing.T) {
	at := time.Date(2024, 3, 15, 8, 30, 0, 0, time.FixedZone("UTC+7", 7*3600))
	assert.Equal(t, "forecasts/SKU-1/20240315T013000Z.json", archiveKey(" SKU-1 ", at))
	assert.Equal(t, "forecasts/unknown/20240315T013000Z.json", archiveKey("", at))
}

func TestPredictCommand_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,quantity\n2024-01-01,5\n2024-01-02,5\n"), 0o600))

	var out bytes.Buffer
	app := newApp(config.New(viper.New()))
	app.Writer = &out

	err := app.Run([]string{
		"forecast", "predict",
		"--product-id", "SKU-1",
		"--current-stock", "100",
		"--safety-stock", "10",
		"--file", path,
	})
	require.NoError(t, err)

	var resp domain.PredictionResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "SKU-1", resp.ProductID)
	assert.Equal(t, 150, resp.PredictedMonthlyDemand)
	assert.Equal(t, 5.0, resp.AverageDailySales)
	assert.Equal(t, "stable", resp.Trend)
	assert.Equal(t, 60, resp.ReorderQuantity)
	assert.Equal(t, "safe", resp.RiskLevel)
	assert.Empty(t, resp.ForecastGraph)
}

func TestPredictCommand_RequiresOneSource(t *testing.T) {
	app := newApp(config.New(viper.New()))
	app.Writer = &bytes.Buffer{}

	err := app.Run([]string{"forecast", "predict", "--product-id", "SKU-1"})
	assert.ErrorIs(t, err, errSourceRequired)
}

type listingStorage struct {
	objects []storage.ObjectInfo
	prefix  string
	err     error
}

func (s *listingStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	s.prefix = prefix
	return s.objects, s.err
}

func (s *listingStorage) OpenObject(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (s *listingStorage) UploadObject(ctx context.Context, key string, data []byte, contentType string) error {
	return errors.New("not implemented")
}

func TestListSources_OnlyCSV(t *testing.T) {
	objects := &listingStorage{objects: []storage.ObjectInfo{
		{Key: "exports/sku-1.csv", Size: 120},
		{Key: "exports/readme.txt", Size: 10},
		{Key: "exports/SKU-2.CSV", Size: 64},
		{Key: "forecasts/SKU-1/20240101T000000Z.json", Size: 300},
	}}

	var out bytes.Buffer
	require.NoError(t, listSources(context.Background(), objects, " exports/ ", &out))

	assert.Equal(t, "exports/", objects.prefix)
	assert.Equal(t, "exports/sku-1.csv\t120\nexports/SKU-2.CSV\t64\n", out.String())
}

func TestListSources_Error(t *testing.T) {
	objects := &listingStorage{err: errors.New("bucket missing")}
	err := listSources(context.Background(), objects, "", &bytes.Buffer{})
	assert.EqualError(t, err, "bucket missing")
}

func TestCacheClearCommand_DisabledCache(t *testing.T) {
	app := newApp(config.New(viper.New()))
	app.Writer = &bytes.Buffer{}

	assert.NoError(t, app.Run([]string{"forecast", "cache-clear"}))
}

func TestHistoryCommand_UnknownRiskLevel(t *testing.T) {
	app := newApp(config.New(viper.New()))
	app.Writer = &bytes.Buffer{}

	err := app.Run([]string{"forecast", "history", "--product-id", "SKU-1", "--risk-level", "dangerous"})
	assert.ErrorIs(t, err, domain.ErrUnknownRiskLevel)
}
