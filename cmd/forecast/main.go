package main

import (
	"os"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/config"
	"github.com/andresuchdata/inventory-predictor/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.App.LogLevel)

	app := newApp(cfg)
	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("forecast command failed")
	}
}

func newApp(cfg *config.Config) *cli.App {
	return &cli.App{
		Name:  "forecast",
		Usage: "Forecast product demand from a daily sales history",
		Commands: []*cli.Command{
			{
				Name:  "predict",
				Usage: "Predict monthly demand and reorder quantity for one product",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "product-id",
						Usage:    "Product identifier echoed in the result",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "current-stock",
						Usage: "Units currently on hand",
					},
					&cli.IntFlag{
						Name:  "safety-stock",
						Usage: "Units to keep in reserve",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Local sales history CSV",
					},
					&cli.StringFlag{
						Name:  "object",
						Usage: "Object key of a sales history CSV in the storage bucket",
					},
					&cli.StringFlag{
						Name:  "drive-file-id",
						Usage: "Google Drive file ID of a sales history CSV",
					},
					&cli.StringFlag{
						Name:  "drive-path",
						Usage: "Google Drive path of a sales history CSV, e.g. exports/sales/sku-1.csv",
					},
					&cli.BoolFlag{
						Name:  "include-graph",
						Usage: "Include the 30 day projection in the output",
					},
					&cli.BoolFlag{
						Name:  "archive",
						Usage: "Upload the result to the storage bucket",
					},
					&cli.BoolFlag{
						Name:    "record",
						Usage:   "Log the prediction in Postgres",
						EnvVars: []string{"DB_ENABLED"},
					},
				},
				Action: func(c *cli.Context) error {
					return runPredict(c, cfg)
				},
			},
			{
				Name:  "migrate",
				Usage: "Create the prediction log schema",
				Action: func(c *cli.Context) error {
					return runMigrate(c, cfg)
				},
			},
			{
				Name:  "sources",
				Usage: "List sales history CSV objects in the storage bucket",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Only list keys under this prefix",
					},
				},
				Action: func(c *cli.Context) error {
					return runSources(c, cfg)
				},
			},
			{
				Name:  "cache-clear",
				Usage: "Drop every cached prediction",
				Action: func(c *cli.Context) error {
					return runCacheClear(c, cfg)
				},
			},
			{
				Name:  "history",
				Usage: "Print logged predictions for a product",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "product-id",
						Usage:    "Product identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "risk-level",
						Usage: "Comma separated risk levels to keep",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of predictions",
						Value: 20,
					},
				},
				Action: func(c *cli.Context) error {
					return runHistory(c, cfg)
				},
			},
		},
	}
}
