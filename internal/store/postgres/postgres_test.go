// postgres_test.go provides a shared test database helper for the
// store integration tests. Tests are skipped if PostgreSQL is not
// available.
package postgres

import (
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// testDSN returns the PostgreSQL connection string for testing.
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

// testStores opens a connection to the test database, runs migrations,
// and returns the stores. If the database is unavailable, the test is
// skipped.
func testStores(t *testing.T) (*store.Stores, *sql.DB) {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return New(db), db
}

// cleanUsers removes test users by email. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE lower(email) = lower($1)", email)
	}
}

// cleanCategories removes test categories by name. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM categories WHERE lower(name) = lower($1)", name)
	}
}

// cleanPosts removes test posts by title. Comments go with them via
// the cascade. Call in t.Cleanup().
func cleanPosts(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM posts WHERE title = $1", title)
	}
}

// TestUserStoreIntegration exercises user persistence against a real
// database: defaults, duplicate detection, and profile updates.
func TestUserStoreIntegration(t *testing.T) {
	stores, db := testStores(t)
	email := "it-user-" + uuid.NewString() + "@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	u, err := stores.Users.Create("Integration User", email, "hash")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if u.Role != models.RoleUser || u.Avatar != models.DefaultAvatar {
		t.Errorf("defaults not applied: role=%q avatar=%q", u.Role, u.Avatar)
	}

	if _, err := stores.Users.Create("Copycat", email, "hash"); !errors.Is(err, store.ErrDuplicateEmail) {
		t.Errorf("Create(duplicate) error = %v, want ErrDuplicateEmail", err)
	}

	got, err := stores.Users.FindByEmail(email)
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("FindByEmail() = %+v, %v", got, err)
	}

	got.Bio = "integration tested"
	if err := stores.Users.Update(got); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	again, err := stores.Users.FindByID(u.ID)
	if err != nil || again == nil || again.Bio != "integration tested" {
		t.Errorf("FindByID() after update = %+v, %v", again, err)
	}
}

// TestPostStoreIntegration exercises the post joins: population,
// comments, the atomic view counter, and the dangling-category read.
func TestPostStoreIntegration(t *testing.T) {
	stores, db := testStores(t)

	email := "it-author-" + uuid.NewString() + "@example.com"
	categoryName := "it-category-" + uuid.NewString()
	title := "it-post-" + uuid.NewString()
	t.Cleanup(func() {
		cleanPosts(t, db, title)
		cleanCategories(t, db, categoryName)
		cleanUsers(t, db, email)
	})

	author, err := stores.Users.Create("Author", email, "hash")
	if err != nil {
		t.Fatalf("create author: %v", err)
	}
	category, err := stores.Categories.Create(&models.Category{
		Name: categoryName, Slug: "it-cat", Color: models.DefaultCategoryColor,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	created, err := stores.Posts.Create(&models.Post{
		Title: title, Content: "integration body", CategoryID: category.ID,
		AuthorID: author.ID, Tags: []string{"it"}, FeaturedImage: "x.jpg",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.Author == nil || created.Author.ID != author.ID {
		t.Errorf("author not populated: %+v", created.Author)
	}
	if created.Category == nil || created.Category.ID != category.ID {
		t.Errorf("category not populated: %+v", created.Category)
	}
	if len(created.Tags) != 1 || created.Tags[0] != "it" {
		t.Errorf("tags = %v, want [it]", created.Tags)
	}
	if created.Comments == nil || len(created.Comments) != 0 {
		t.Errorf("comments = %v, want empty non-nil", created.Comments)
	}

	t.Run("comments", func(t *testing.T) {
		if err := stores.Posts.AddComment(created.ID, author.ID, "hello"); err != nil {
			t.Fatalf("AddComment() error: %v", err)
		}
		got, err := stores.Posts.FindByID(created.ID)
		if err != nil || got == nil {
			t.Fatalf("FindByID() = %+v, %v", got, err)
		}
		if len(got.Comments) != 1 || got.Comments[0].Content != "hello" {
			t.Fatalf("comments = %+v", got.Comments)
		}
		if got.Comments[0].User == nil || got.Comments[0].User.ID != author.ID {
			t.Errorf("comment author not populated: %+v", got.Comments[0].User)
		}

		if err := stores.Posts.AddComment(uuid.New(), author.ID, "orphan"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("AddComment(unknown) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("view counter", func(t *testing.T) {
		first, err := stores.Posts.IncrementViews(created.ID)
		if err != nil {
			t.Fatalf("IncrementViews() error: %v", err)
		}
		second, err := stores.Posts.IncrementViews(created.ID)
		if err != nil {
			t.Fatalf("IncrementViews() error: %v", err)
		}
		if second != first+1 {
			t.Errorf("counter went %d -> %d, want +1", first, second)
		}
	})

	t.Run("dangling category", func(t *testing.T) {
		if err := stores.Categories.Delete(category.ID); err != nil {
			t.Fatalf("Delete category error: %v", err)
		}
		got, err := stores.Posts.FindByID(created.ID)
		if err != nil || got == nil {
			t.Fatalf("FindByID() = %+v, %v", got, err)
		}
		if got.Category != nil {
			t.Errorf("Category = %+v, want nil after deletion", got.Category)
		}
	})

	t.Run("delete cascades comments", func(t *testing.T) {
		if err := stores.Posts.Delete(created.ID); err != nil {
			t.Fatalf("Delete() error: %v", err)
		}
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM comments WHERE post_id = $1", created.ID).Scan(&n); err != nil {
			t.Fatalf("count comments: %v", err)
		}
		if n != 0 {
			t.Errorf("comments left behind = %d, want 0", n)
		}
	})
}
