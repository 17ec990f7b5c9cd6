package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/bakeshop-backend/internal/analytics"
	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

// Offline runner for the analytics engine. Takes an ingredient snapshot as
// JSON and emits the usage report without touching the database, which makes
// it handy for replaying exported inventories.
func main() {
	app := &cli.App{
		Name:  "report",
		Usage: "Generate a usage report from an ingredient snapshot file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "JSON file containing an array of ingredients with their usage events",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the report to this file instead of stdout",
			},
			&cli.IntFlag{
				Name:    "timeframe",
				Aliases: []string{"t"},
				Usage:   "Analysis window in days",
				Value:   30,
			},
			&cli.TimestampFlag{
				Name:   "as-of",
				Usage:  "Anchor the analysis window at this instant instead of now (RFC 3339)",
				Layout: time.RFC3339,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	data, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var ingredients []domain.Ingredient
	if err := json.Unmarshal(data, &ingredients); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}

	now := time.Now().UTC()
	if asOf := c.Timestamp("as-of"); asOf != nil && !asOf.IsZero() {
		now = asOf.UTC()
	}

	engine := analytics.NewEngine(analytics.DefaultConfig())
	report, err := engine.Generate(ingredients, c.Int("timeframe"), now)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	encoded = append(encoded, '\n')

	if output := c.String("output"); output != "" {
		if err := os.WriteFile(output, encoded, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Printf("Report written to %s", output)
		return nil
	}

	_, err = os.Stdout.Write(encoded)
	return err
}
