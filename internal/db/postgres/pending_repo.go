package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"Galleria/internal/core/images"
	"Galleria/internal/core/moderation"
	"Galleria/internal/core/posts"
)

type postgresPendingRepo struct {
	db *sql.DB
}

// NewPendingRepository creates a new PostgreSQL pending post repository
func NewPendingRepository(db *sql.DB) moderation.Repository {
	return &postgresPendingRepo{db: db}
}

// Create inserts a new pending row; status defaults to pending
func (r *postgresPendingRepo) Create(ctx context.Context, pending *moderation.PendingPost) error {
	query := `
		INSERT INTO pending_posts (title, caption, image_ref)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRowContext(ctx, query, pending.Title, pending.Caption, pending.ImageRef).
		Scan(&pending.ID, &pending.Status, &pending.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert pending post: %w", err)
	}

	return nil
}

// GetByID retrieves a pending post by id
func (r *postgresPendingRepo) GetByID(ctx context.Context, id int64) (*moderation.PendingPost, error) {
	query := `
		SELECT id, title, caption, image_ref, status, created_at
		FROM pending_posts
		WHERE id = $1
	`

	var pending moderation.PendingPost
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pending.ID, &pending.Title, &pending.Caption,
		&pending.ImageRef, &pending.Status, &pending.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, moderation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending post %d: %w", id, err)
	}

	return &pending, nil
}

// List returns all pending posts ordered by id, terminal rows included
func (r *postgresPendingRepo) List(ctx context.Context) ([]*moderation.PendingPost, error) {
	query := `
		SELECT id, title, caption, image_ref, status, created_at
		FROM pending_posts
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending posts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var result []*moderation.PendingPost
	for rows.Next() {
		var pending moderation.PendingPost
		err := rows.Scan(
			&pending.ID, &pending.Title, &pending.Caption,
			&pending.ImageRef, &pending.Status, &pending.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending post: %w", err)
		}
		result = append(result, &pending)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending posts: %w", err)
	}

	return result, nil
}

// Count returns the number of pending post rows
func (r *postgresPendingRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending posts: %w", err)
	}
	return count, nil
}

// Update persists amended content fields under the same row lock the
// workflow transitions use, so a concurrent Publish cannot interleave
func (r *postgresPendingRepo) Update(ctx context.Context, pending *moderation.PendingPost) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction for pending post %d: %w", pending.ID, err)
	}
	defer rollback(tx, "update pending post")

	if _, err := lockPending(ctx, tx, pending.ID); err != nil {
		return err
	}

	query := `UPDATE pending_posts SET title = $1, caption = $2, image_ref = $3 WHERE id = $4`
	if _, err := tx.ExecContext(ctx, query, pending.Title, pending.Caption, pending.ImageRef, pending.ID); err != nil {
		return fmt.Errorf("failed to update pending post %d: %w", pending.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update of pending post %d: %w", pending.ID, err)
	}

	return nil
}

// Delete removes a pending row
func (r *postgresPendingRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pending_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pending post %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of pending post %d: %w", id, err)
	}
	if affected == 0 {
		return moderation.ErrNotFound
	}

	return nil
}

// Publish promotes a pending submission into a live Post+Image pair.
// Everything happens in one transaction: lock the pending row, insert
// the post, insert its image, flip the status. A failure at any step -
// including the image insert tripping its CHECK constraints - rolls the
// whole unit back, so no orphaned post can ever be observed and the
// pending row stays pending.
func (r *postgresPendingRepo) Publish(ctx context.Context, id int64) (*posts.Post, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction for pending post %d: %w", id, err)
	}
	defer rollback(tx, "publish pending post")

	pending, err := lockPending(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	post := &posts.Post{
		Title:   pending.Title,
		Caption: pending.Caption,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO posts (title, caption) VALUES ($1, $2) RETURNING id, created_at`,
		post.Title, post.Caption,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post from pending post %d: %w", id, err)
	}

	image := &images.Image{
		ImageRef: pending.ImageRef,
		PostID:   post.ID,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO images (image_ref, post_id) VALUES ($1, $2) RETURNING id`,
		image.ImageRef, image.PostID,
	).Scan(&image.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create image from pending post %d: %w", id, err)
	}
	post.Image = image

	if _, err := tx.ExecContext(ctx,
		`UPDATE pending_posts SET status = $1 WHERE id = $2`,
		moderation.StatusPublished, id,
	); err != nil {
		return nil, fmt.Errorf("failed to mark pending post %d published: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit publish of pending post %d: %w", id, err)
	}

	return post, nil
}

// Reject marks a pending row rejected; no other side effect
func (r *postgresPendingRepo) Reject(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction for pending post %d: %w", id, err)
	}
	defer rollback(tx, "reject pending post")

	if _, err := lockPending(ctx, tx, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE pending_posts SET status = $1 WHERE id = $2`,
		moderation.StatusRejected, id,
	); err != nil {
		return fmt.Errorf("failed to mark pending post %d rejected: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reject of pending post %d: %w", id, err)
	}

	return nil
}

// lockPending loads a pending row FOR UPDATE and verifies it is still
// in the pending state. Callers hold the lock until commit, so the
// state they observed cannot change under them.
func lockPending(ctx context.Context, tx *sql.Tx, id int64) (*moderation.PendingPost, error) {
	query := `
		SELECT id, title, caption, image_ref, status, created_at
		FROM pending_posts
		WHERE id = $1
		FOR UPDATE
	`

	var pending moderation.PendingPost
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&pending.ID, &pending.Title, &pending.Caption,
		&pending.ImageRef, &pending.Status, &pending.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, moderation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock pending post %d: %w", id, err)
	}

	if pending.Status != moderation.StatusPending {
		return nil, &moderation.InvalidTransitionError{ID: id, Status: pending.Status}
	}

	return &pending, nil
}

// rollback is deferred after BeginTx; once the transaction committed it
// is a no-op
func rollback(tx *sql.Tx, op string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("failed to rollback transaction",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
	}
}
