package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"Galleria/internal/core/images"
)

type postgresImageRepo struct {
	db *sql.DB
}

// NewImageRepository creates a new PostgreSQL image repository
func NewImageRepository(db *sql.DB) images.Repository {
	return &postgresImageRepo{db: db}
}

// Create inserts a new image row. The posts.id foreign key and the
// UNIQUE constraint on post_id make the referential checks hold under
// concurrent writes; their violations are mapped to domain errors.
func (r *postgresImageRepo) Create(ctx context.Context, image *images.Image) error {
	query := `
		INSERT INTO images (image_ref, post_id)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, image.ImageRef, image.PostID).Scan(&image.ID)
	if err != nil {
		if mapped := mapImageConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert image: %w", err)
	}

	return nil
}

// GetByID retrieves an image by its identifier
func (r *postgresImageRepo) GetByID(ctx context.Context, id int64) (*images.Image, error) {
	query := `SELECT id, image_ref, post_id FROM images WHERE id = $1`

	var image images.Image
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&image.ID, &image.ImageRef, &image.PostID)
	if err == sql.ErrNoRows {
		return nil, images.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image %d: %w", id, err)
	}

	return &image, nil
}

// GetByPostID retrieves the image owned by a post
func (r *postgresImageRepo) GetByPostID(ctx context.Context, postID int64) (*images.Image, error) {
	query := `SELECT id, image_ref, post_id FROM images WHERE post_id = $1`

	var image images.Image
	err := r.db.QueryRowContext(ctx, query, postID).
		Scan(&image.ID, &image.ImageRef, &image.PostID)
	if err == sql.ErrNoRows {
		return nil, images.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image for post %d: %w", postID, err)
	}

	return &image, nil
}

// List returns all images ordered by id
func (r *postgresImageRepo) List(ctx context.Context) ([]*images.Image, error) {
	query := `SELECT id, image_ref, post_id FROM images ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var result []*images.Image
	for rows.Next() {
		var image images.Image
		if err := rows.Scan(&image.ID, &image.ImageRef, &image.PostID); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		result = append(result, &image)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}

	return result, nil
}

// Count returns the number of image rows
func (r *postgresImageRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return count, nil
}

// Update persists a changed image ref. post_id is immutable, so it is
// not part of the statement.
func (r *postgresImageRepo) Update(ctx context.Context, image *images.Image) error {
	query := `UPDATE images SET image_ref = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, image.ImageRef, image.ID)
	if err != nil {
		return fmt.Errorf("failed to update image %d: %w", image.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of image %d: %w", image.ID, err)
	}
	if affected == 0 {
		return images.ErrNotFound
	}

	return nil
}

// Delete removes an image row
func (r *postgresImageRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of image %d: %w", id, err)
	}
	if affected == 0 {
		return images.ErrNotFound
	}

	return nil
}

// mapImageConstraintError translates Postgres constraint violations on
// the images table into domain errors. Returns nil when the error is
// not a recognized constraint violation.
func mapImageConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code.Name() {
	case "foreign_key_violation":
		return images.ErrPostNotFound
	case "unique_violation":
		return images.ErrPostAlreadyHasImage
	}
	return nil
}
