// Seed integration tests run against a real PostgreSQL instance and
// are skipped when none is reachable.
package database

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// TestSeedIsIdempotent verifies repeated seeding never duplicates the
// starter categories.
func TestSeedIsIdempotent(t *testing.T) {
	db := testDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	var first int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&first); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if first == 0 {
		t.Fatal("Seed() left no categories")
	}

	if err := Seed(db); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}
	var second int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&second); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if second != first {
		t.Errorf("category count changed %d -> %d across seeds", first, second)
	}
}
