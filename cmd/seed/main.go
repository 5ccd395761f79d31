// Command seed runs the database seeder for Kiroku.
package main

import (
	"flag"
	"log"

	"kiroku/internal/config"
	"kiroku/internal/database"
	"kiroku/internal/seed"
)

func main() {
	clean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *clean {
		if err := seed.ClearAll(db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	} else {
		log.Println("Skipping cleanup (-clean=false); seeding on top of existing data")
	}

	if err := seed.Seed(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database now has the sample category and todos.")
}
