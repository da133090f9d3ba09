// cmd/report/main.go
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/estoquelab/stocklens/internal/engine"
	"github.com/estoquelab/stocklens/internal/snapshot"
	"github.com/estoquelab/stocklens/pkg/logger"
)

func newInputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "input",
		Usage:    "Path to the snapshot CSV",
		Required: true,
		EnvVars:  []string{"SNAPSHOT_FILE"},
	}
}

func newOutputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "output",
		Usage: "Output path (defaults to stdout)",
	}
}

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "report",
		Usage: "Compute inventory health metrics and purchase suggestions from a snapshot CSV",
		Commands: []*cli.Command{
			{
				Name:  "metrics",
				Usage: "Compute dashboard metrics and emit them as JSON",
				Flags: []cli.Flag{
					newInputFlag(),
					newOutputFlag(),
				},
				Action: runMetrics,
			},
			{
				Name:  "suggestions",
				Usage: "Compute ranked purchase suggestions and emit them as CSV",
				Flags: []cli.Flag{
					newInputFlag(),
					newOutputFlag(),
					&cli.Float64Flag{
						Name:  "target-days",
						Usage: "Target coverage horizon in days",
						Value: engine.DefaultTargetCoverageDays,
					},
					&cli.BoolFlag{
						Name:  "extended",
						Usage: "Use the extended 60-day coverage horizon",
					},
				},
				Action: runSuggestions,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("report failed")
	}
}

func runMetrics(c *cli.Context) error {
	records, err := snapshot.ReadFile(c.String("input"))
	if err != nil {
		return err
	}

	metrics := engine.ComputeDashboardMetrics(records)
	logger.Log.Info().
		Int("total_items", metrics.TotalItems).
		Float64("inventory_value", metrics.TotalInventoryValue).
		Msg("metrics computed")

	out, err := openOutput(c.String("output"))
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(metrics)
}

func runSuggestions(c *cli.Context) error {
	records, err := snapshot.ReadFile(c.String("input"))
	if err != nil {
		return err
	}

	targetDays := c.Float64("target-days")
	if c.Bool("extended") {
		targetDays = engine.ExtendedTargetCoverageDays
	}

	suggestions := engine.GeneratePurchaseSuggestions(records, targetDays)
	logger.Log.Info().
		Int("total", len(suggestions)).
		Float64("target_days", targetDays).
		Msg("suggestions computed")

	out, err := openOutput(c.String("output"))
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{"sku_id", "description", "action", "suggested_qty", "purchase_cost", "coverage_days", "status"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range suggestions {
		rec := []string{
			s.SKUID,
			s.Description,
			s.Action,
			strconv.Itoa(s.SuggestedQty),
			strconv.FormatFloat(s.PurchaseCost, 'f', 2, 64),
			strconv.FormatFloat(s.CoverageDays, 'f', 2, 64),
			s.Status,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	return nil
}

func openOutput(path string) (*os.File, error) {
	if path == "" {
		return os.Stdout, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return f, nil
}
