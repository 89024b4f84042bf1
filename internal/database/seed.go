package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"inkwell/internal/slug"
)

// starterCategories are created on first run so the site has a taxonomy
// to post into before any admin curation happens.
var starterCategories = []string{
	"Technology",
	"Lifestyle",
	"Business",
	"Travel",
	"Food",
	"Health",
}

// Seed populates the database with the starter categories. It is a
// no-op when any category already exists, so it is safe to run on
// every startup.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, name := range starterCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, slug) VALUES ($1, $2)
		`, name, slug.Generate(name))
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", name, err)
		}
	}

	slog.Info("database seeded with starter categories", "count", len(starterCategories))
	return nil
}
