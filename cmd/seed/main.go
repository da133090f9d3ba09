// cmd/seed/main.go
package main

import (
	"database/sql"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/estoquelab/stocklens/internal/ingest"
	"github.com/estoquelab/stocklens/pkg/logger"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "seed",
		Usage: "Load inventory snapshot CSVs into the analytics database",
		Commands: []*cli.Command{
			{
				Name:  "snapshot",
				Usage: "Ingest one snapshot CSV for a given date",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "input",
						Usage:    "Path to the snapshot CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "Snapshot date in YYYYMMDD format",
						Value: time.Now().Format("20060102"),
					},
				},
				Action: runSnapshot,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("seed failed")
	}
}

func runSnapshot(c *cli.Context) error {
	snapshotDate, err := time.Parse("20060102", c.String("date"))
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	processor := ingest.NewProcessor(db)

	start := time.Now()
	count, err := processor.ProcessFile(c.Context, c.String("input"), snapshotDate)
	if err != nil {
		return err
	}

	logger.Log.Info().
		Int("records", count).
		Dur("elapsed", time.Since(start)).
		Msg("snapshot seed complete")

	return nil
}
