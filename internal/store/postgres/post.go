package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/store"
)

type postStore struct {
	db *sql.DB
}

// postJoinColumns selects a post row together with its author and
// category references. The category join is LEFT so posts survive a
// deleted category.
const postJoinColumns = `
	p.id, p.title, p.content, p.excerpt, p.category_id, p.author_id,
	p.tags, p.featured_image, p.view_count, p.is_published,
	p.created_at, p.updated_at,
	u.id, u.name, u.email, u.avatar, u.bio,
	c.id, c.name, c.slug`

const postJoinFrom = `
	FROM posts p
	LEFT JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

// scanPost scans one joined post row, decoding tags and assembling the
// populated reference shapes.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	var tagsJSON []byte
	var authorID, categoryID uuid.NullUUID
	var authorName, authorEmail, authorAvatar, authorBio sql.NullString
	var catName, catSlug sql.NullString

	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.CategoryID, &p.AuthorID,
		&tagsJSON, &p.FeaturedImage, &p.ViewCount, &p.IsPublished,
		&p.CreatedAt, &p.UpdatedAt,
		&authorID, &authorName, &authorEmail, &authorAvatar, &authorBio,
		&categoryID, &catName, &catSlug,
	)
	if err != nil {
		return nil, err
	}

	p.Tags = []string{}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	if authorID.Valid {
		p.Author = &models.UserRef{
			ID:     authorID.UUID,
			Name:   authorName.String,
			Email:  authorEmail.String,
			Avatar: authorAvatar.String,
			Bio:    authorBio.String,
		}
	}
	if categoryID.Valid {
		p.Category = &models.CategoryRef{
			ID:   categoryID.UUID,
			Name: catName.String,
			Slug: catSlug.String,
		}
	}
	p.Comments = []models.Comment{}
	return p, nil
}

func (s *postStore) ListPublished(page, limit int) ([]models.Post, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE is_published`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count published posts: %w", err)
	}

	offset := (page - 1) * limit
	rows, err := s.db.Query(`
		SELECT `+postJoinColumns+postJoinFrom+`
		WHERE p.is_published
		ORDER BY p.created_at DESC, p.id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	items := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, total, rows.Err()
}

func (s *postStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postJoinColumns+postJoinFrom+`
		WHERE p.id = $1
	`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	comments, err := s.listComments(id)
	if err != nil {
		return nil, err
	}
	p.Comments = comments
	return p, nil
}

// listComments loads a post's comments oldest first, each with its
// author populated.
func (s *postStore) listComments(postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT cm.id, cm.user_id, cm.content, cm.created_at,
		       u.id, u.name, u.avatar
		FROM comments cm
		LEFT JOIN users u ON u.id = cm.user_id
		WHERE cm.post_id = $1
		ORDER BY cm.created_at, cm.id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var cm models.Comment
		var userID uuid.NullUUID
		var userName, userAvatar sql.NullString
		if err := rows.Scan(&cm.ID, &cm.UserID, &cm.Content, &cm.CreatedAt, &userID, &userName, &userAvatar); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if userID.Valid {
			cm.User = &models.UserRef{ID: userID.UUID, Name: userName.String, Avatar: userAvatar.String}
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}

func (s *postStore) Create(p *models.Post) (*models.Post, error) {
	tagsJSON, err := json.Marshal(nonNilTags(p.Tags))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO posts (title, content, excerpt, category_id, author_id, tags, featured_image, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, p.Title, p.Content, p.Excerpt, p.CategoryID, p.AuthorID, tagsJSON, p.FeaturedImage, p.IsPublished).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(id)
}

func (s *postStore) Update(p *models.Post) (*models.Post, error) {
	tagsJSON, err := json.Marshal(nonNilTags(p.Tags))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, content = $2, excerpt = $3, category_id = $4,
			tags = $5,
			featured_image = CASE WHEN $6 <> '' THEN $6 ELSE featured_image END,
			updated_at = NOW()
		WHERE id = $7
	`, p.Title, p.Content, p.Excerpt, p.CategoryID, tagsJSON, p.FeaturedImage, p.ID)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, store.ErrNotFound
	}
	return s.FindByID(p.ID)
}

func (s *postStore) Delete(id uuid.UUID) error {
	// Comments cascade at the schema level.
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *postStore) AddComment(postID, userID uuid.UUID, content string) error {
	res, err := s.db.Exec(`
		INSERT INTO comments (post_id, user_id, content)
		SELECT $1, $2, $3 WHERE EXISTS (SELECT 1 FROM posts WHERE id = $1)
	`, postID, userID, content)
	if err != nil {
		return fmt.Errorf("add comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *postStore) IncrementViews(id uuid.UUID) (int, error) {
	// Single-statement increment so concurrent views never lose updates.
	var count int
	err := s.db.QueryRow(`
		UPDATE posts SET view_count = view_count + 1 WHERE id = $1
		RETURNING view_count
	`, id).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, store.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return count, nil
}

// nonNilTags normalizes a nil tag slice to an empty one so the column
// always holds a JSON array.
func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
