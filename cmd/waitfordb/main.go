// Command waitfordb blocks until the database accepts connections, then exits
// 0. It retries a trivial connectivity check forever at a fixed one-second
// interval, so it never exits non-zero on its own: the surrounding process
// supervisor decides how long to wait.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/dkorchagin/recipe-api/internal/readiness"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	dsn, err := parseConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := readiness.Wait(context.Background(), db, os.Stdout, time.Second); err != nil {
		log.Fatalf("wait interrupted: %v", err)
	}
}

// parseConfig reads the POSTGRES_* environment and returns the DSN.
func parseConfig() (string, error) {
	_ = godotenv.Load("config.env")

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	port, err := strconv.Atoi(getEnv("POSTGRES_PORT", "5432"))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		getEnv("POSTGRES_USER", "user"),
		getEnv("POSTGRES_PASSWORD", "password"),
		getEnv("POSTGRES_HOST", "localhost"),
		port,
		getEnv("POSTGRES_DB", "database"),
	), nil
}
