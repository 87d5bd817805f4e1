package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"Galleria/internal/core/images"
	"Galleria/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post and fills in the store-assigned fields
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (title, caption)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, post.Title, post.Caption).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by id with its image eager-loaded
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	query := `
		SELECT p.id, p.title, p.caption, p.created_at,
		       i.id, i.image_ref, i.post_id
		FROM posts p
		LEFT JOIN images i ON i.post_id = p.id
		WHERE p.id = $1
	`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}

	return post, nil
}

// List returns all posts with images attached, ordered by id
func (r *postgresPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	query := `
		SELECT p.id, p.title, p.caption, p.created_at,
		       i.id, i.image_ref, i.post_id
		FROM posts p
		LEFT JOIN images i ON i.post_id = p.id
		ORDER BY p.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var result []*posts.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, nil
}

// Count returns the number of live posts
func (r *postgresPostRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// Update persists changed title/caption for an existing post
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) error {
	query := `UPDATE posts SET title = $1, caption = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, post.Title, post.Caption, post.ID)
	if err != nil {
		return fmt.Errorf("failed to update post %d: %w", post.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of post %d: %w", post.ID, err)
	}
	if affected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

// Delete removes a post. The images.post_id foreign key carries
// ON DELETE CASCADE, so the owned image row is removed in the same
// statement.
func (r *postgresPostRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of post %d: %w", id, err)
	}
	if affected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

// RandomID picks a uniformly random post id by offset sampling: count
// the rows, draw k in [0, N), fetch the id at ordinal k ordered by id.
// Both queries run in one read-only REPEATABLE READ transaction so they
// see the same snapshot - a row deleted mid-selection cannot be chosen
// and every live row keeps probability exactly 1/N.
func (r *postgresPostRepo) RandomID(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to start selection transaction: %w", err)
	}
	defer rollback(tx, "random selection")

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts for selection: %w", err)
	}
	if count == 0 {
		return 0, posts.ErrEmptyStore
	}

	var id int64
	query := `SELECT id FROM posts ORDER BY id OFFSET $1 LIMIT 1`
	if err := tx.QueryRowContext(ctx, query, rand.IntN(count)).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to fetch post at random offset: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit selection transaction: %w", err)
	}

	return id, nil
}

// rowScanner lets scanPost serve both QueryRow and Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPost reads the post columns plus the LEFT JOINed image columns,
// attaching the image only when one exists
func scanPost(row rowScanner) (*posts.Post, error) {
	var (
		post     posts.Post
		imageID  sql.NullInt64
		imageRef sql.NullString
		postID   sql.NullInt64
	)

	err := row.Scan(
		&post.ID, &post.Title, &post.Caption, &post.CreatedAt,
		&imageID, &imageRef, &postID,
	)
	if err != nil {
		return nil, err
	}

	if imageID.Valid {
		post.Image = &images.Image{
			ID:       imageID.Int64,
			ImageRef: imageRef.String,
			PostID:   postID.Int64,
		}
	}

	return &post, nil
}
