package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
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
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with ingredient and usage data",
		Commands: []*cli.Command{
			{
				Name:  "ingredients",
				Usage: "Seed the ingredients table from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "file",
						Usage:   "CSV file with ingredient rows",
						Value:   "./data/seeds/ingredients.csv",
						EnvVars: []string{"INGREDIENTS_FILE"},
					},
				},
				Action: func(c *cli.Context) error {
					return withTx(c, func(ctx context.Context, tx *sql.Tx) error {
						return seedIngredients(ctx, tx, c.String("file"))
					})
				},
			},
			{
				Name:  "events",
				Usage: "Seed the usage_events table from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "file",
						Usage:   "CSV file with usage event rows",
						Value:   "./data/seeds/usage_events.csv",
						EnvVars: []string{"USAGE_EVENTS_FILE"},
					},
				},
				Action: func(c *cli.Context) error {
					return withTx(c, func(ctx context.Context, tx *sql.Tx) error {
						return seedUsageEvents(ctx, tx, c.String("file"))
					})
				},
			},
			{
				Name:  "all",
				Usage: "Seed ingredients and usage events in one transaction",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "ingredients-file",
						Value:   "./data/seeds/ingredients.csv",
						EnvVars: []string{"INGREDIENTS_FILE"},
					},
					&cli.StringFlag{
						Name:    "events-file",
						Value:   "./data/seeds/usage_events.csv",
						EnvVars: []string{"USAGE_EVENTS_FILE"},
					},
				},
				Action: func(c *cli.Context) error {
					return withTx(c, func(ctx context.Context, tx *sql.Tx) error {
						if err := seedIngredients(ctx, tx, c.String("ingredients-file")); err != nil {
							return err
						}
						return seedUsageEvents(ctx, tx, c.String("events-file"))
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func withTx(c *cli.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Starting database seeding...")
	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// seedIngredients upserts rows keyed by name. Expected columns:
// name,category,quantity,unit,threshold,cost_per_unit,supplier,location
func seedIngredients(ctx context.Context, tx *sql.Tx, filePath string) error {
	log.Printf("Seeding ingredients from %s\n", filePath)

	const query = `
		INSERT INTO ingredients (name, category, quantity, unit, threshold, cost_per_unit, supplier, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET
			category = EXCLUDED.category,
			quantity = EXCLUDED.quantity,
			unit = EXCLUDED.unit,
			threshold = EXCLUDED.threshold,
			cost_per_unit = EXCLUDED.cost_per_unit,
			supplier = EXCLUDED.supplier,
			location = EXCLUDED.location,
			updated_at = NOW()
	`

	count := 0
	err := forEachRecord(filePath, func(header, record []string) error {
		quantity, err := parseFloat(field(header, record, "quantity"))
		if err != nil {
			return fmt.Errorf("invalid quantity: %w", err)
		}
		threshold, err := parseFloat(field(header, record, "threshold"))
		if err != nil {
			return fmt.Errorf("invalid threshold: %w", err)
		}
		costPerUnit, err := parseFloat(field(header, record, "cost_per_unit"))
		if err != nil {
			return fmt.Errorf("invalid cost_per_unit: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query,
			field(header, record, "name"),
			field(header, record, "category"),
			quantity,
			field(header, record, "unit"),
			threshold,
			costPerUnit,
			field(header, record, "supplier"),
			field(header, record, "location"),
		); err != nil {
			return fmt.Errorf("failed to upsert ingredient: %w", err)
		}
		count++
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Successfully seeded ingredients (%d records)\n", count)
	return nil
}

// seedUsageEvents appends events, resolving the ingredient by name. Expected
// columns: ingredient,occurred_at,kind,quantity,remaining,note with RFC 3339
// timestamps.
func seedUsageEvents(ctx context.Context, tx *sql.Tx, filePath string) error {
	log.Printf("Seeding usage events from %s\n", filePath)

	const query = `
		INSERT INTO usage_events (ingredient_id, occurred_at, kind, quantity, remaining, note)
		SELECT i.id, $2, $3, $4, $5, $6
		FROM ingredients i
		WHERE i.name = $1
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare usage event statement: %w", err)
	}
	defer stmt.Close()

	count := 0
	err = forEachRecord(filePath, func(header, record []string) error {
		name := field(header, record, "ingredient")

		occurredAt, err := time.Parse(time.RFC3339, field(header, record, "occurred_at"))
		if err != nil {
			return fmt.Errorf("invalid occurred_at for %s: %w", name, err)
		}

		kind := field(header, record, "kind")
		if kind != "deduct" && kind != "restock" {
			return fmt.Errorf("unknown event kind %q for %s", kind, name)
		}

		quantity, err := parseFloat(field(header, record, "quantity"))
		if err != nil {
			return fmt.Errorf("invalid quantity for %s: %w", name, err)
		}
		remaining, err := parseFloat(field(header, record, "remaining"))
		if err != nil {
			return fmt.Errorf("invalid remaining for %s: %w", name, err)
		}

		res, err := stmt.ExecContext(ctx, name, occurredAt, kind, quantity, remaining, field(header, record, "note"))
		if err != nil {
			return fmt.Errorf("failed to insert usage event for %s: %w", name, err)
		}
		if rows, err := res.RowsAffected(); err == nil && rows == 0 {
			return fmt.Errorf("ingredient %q not found", name)
		}

		count++
		if count%5000 == 0 {
			log.Printf("Seeded %d usage events...", count)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Successfully seeded usage_events (%d records)\n", count)
	return nil
}

func forEachRecord(filePath string, fn func(header, record []string) error) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read CSV record: %w", err)
		}
		if err := fn(header, record); err != nil {
			return err
		}
	}
}

func field(header, record []string, column string) string {
	for i, h := range header {
		if h == column && i < len(record) {
			return strings.TrimSpace(record[i])
		}
	}
	return ""
}

func parseFloat(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
}
