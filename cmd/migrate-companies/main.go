package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/jobtrail-dev/jobtrail/db"
	"github.com/jobtrail-dev/jobtrail/internal/migrate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	conn, err := db.Connect(os.Getenv("DATABASE_URL"))

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	summary, err := migrate.MigrateCompanies(conn)

	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	failed := 0

	for _, outcome := range summary.Outcomes {
		if !outcome.OK {
			failed++
			log.Printf("FAILED %s: %s", outcome.Item, outcome.Err)
		}
	}

	if failed > 0 {
		log.Printf("Migration finished with %d failed items", failed)
		os.Exit(1)
	}
}
