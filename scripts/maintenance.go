// Command maintenance runs the offline data jobs: migrating legacy
// embedded reviews, repairing review aggregates, resetting orphaned
// ratings, and seeding an admin account.
//
// Usage:
//
//	go run ./scripts migrate-reviews
//	go run ./scripts cleanup-review-stats
//	go run ./scripts fix-zero-ratings
//	go run ./scripts create-admin -name Admin -email admin@example.com -password secret123
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cityguide/db"
	"cityguide/maintenance"

	"github.com/joho/godotenv"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: maintenance <migrate-reviews|cleanup-review-stats|fix-zero-ratings|create-admin> [flags]")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cmd := os.Args[1]

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := db.Init(ctx, os.Getenv("MONGO_URI")); err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	defer db.Close(context.Background())

	switch cmd {
	case "migrate-reviews":
		report, err := maintenance.RunMigration(ctx)
		if err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		fmt.Printf("places checked:     %d\n", report.PlacesChecked)
		fmt.Printf("places with legacy: %d\n", report.PlacesWithLegacy)
		fmt.Printf("migrated:           %d\n", report.Migrated)
		fmt.Printf("skipped duplicates: %d\n", report.Skipped)
		fmt.Printf("failed:             %d\n", report.Failed)
		if report.Failed > 0 {
			os.Exit(1)
		}

	case "cleanup-review-stats":
		report, err := maintenance.RunCleanup(ctx)
		if err != nil {
			log.Fatalf("cleanup failed: %v", err)
		}
		fmt.Printf("total places:    %d\n", report.TotalPlaces)
		fmt.Printf("already correct: %d\n", report.AlreadyCorrect)
		fmt.Printf("repaired:        %d\n", report.Updated)
		for _, repair := range report.Repairs {
			fmt.Printf("  %s: reviews %d -> %d, rating %.2f -> %.2f\n",
				repair.PlaceID, repair.OldTotal, repair.NewTotal, repair.OldAverage, repair.NewAverage)
		}

	case "fix-zero-ratings":
		report, err := maintenance.RunFixZeroRatings(ctx)
		if err != nil {
			log.Fatalf("fix-zero-ratings failed: %v", err)
		}
		fmt.Printf("found: %d\nfixed: %d\n", report.Found, report.Fixed)

	case "create-admin":
		fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
		name := fs.String("name", "Admin", "admin display name")
		email := fs.String("email", "", "admin email (required)")
		password := fs.String("password", "", "admin password (required, min 6 chars)")
		fs.Parse(os.Args[2:])

		admin, created, err := maintenance.CreateAdmin(ctx, *name, *email, *password)
		if err != nil {
			log.Fatalf("create-admin failed: %v", err)
		}
		if created {
			fmt.Printf("admin created: %s (%s)\n", admin.Email, admin.UserID)
		} else {
			fmt.Printf("user already exists: %s (%s), nothing changed\n", admin.Email, admin.UserID)
		}

	default:
		usage()
	}
}
