// Command createsuperuser creates an elevated account for the admin console.
// Email and password come from flags; the staff and superuser flags are
// always set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/dkorchagin/recipe-api/internal/repositories"
	"github.com/dkorchagin/recipe-api/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	email := flag.String("email", "", "Email of the superuser")
	password := flag.String("password", "", "Password of the superuser")
	flag.Parse()

	dsn, err := parseConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	svc := services.NewAuthService(
		repositories.NewUserReadRepository(db),
		repositories.NewUserWriteRepository(db),
		nil,
		nil,
	)

	user, err := svc.RegisterSuperuser(context.Background(), *email, *password)
	if err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}

	fmt.Printf("Superuser %s created with id %s\n", user.Email, user.UserID)
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
