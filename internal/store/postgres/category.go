package postgres

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/store"
)

type categoryStore struct {
	db *sql.DB
}

const categoryColumns = `id, name, slug, description, color, created_at, updated_at`

// scanCategory scans a single category row.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	c := &models.Category{}
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (s *categoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

func (s *categoryStore) Create(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (name, slug, description, color)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.Color,
	)
	created, err := scanCategory(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateCategoryName
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

func (s *categoryStore) Update(c *models.Category) error {
	res, err := s.db.Exec(`
		UPDATE categories SET name = $1, slug = $2, description = $3, color = $4, updated_at = NOW()
		WHERE id = $5
	`, c.Name, c.Slug, c.Description, c.Color, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateCategoryName
		}
		return fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *categoryStore) Delete(id uuid.UUID) error {
	// No foreign key ties posts to categories; referencing posts keep
	// their dangling category id.
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}
