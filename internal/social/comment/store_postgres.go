// Copyright (c) 2026 Mangabay. All rights reserved.

package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/platform/database/schema"
)

// # PostgreSQL Repository

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
FindByID returns the comment with the given ID.
*/
func (repository *postgresRepository) FindByID(context context.Context, id int64) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.SocialComment.ID,
		schema.SocialComment.UserID,
		schema.SocialComment.ChapterID,
		schema.SocialComment.Body,
		schema.SocialComment.CreatedAt,
		schema.SocialComment.UpdatedAt,
		schema.SocialComment.Table,
		schema.SocialComment.ID,
	)

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.ChapterID,
		&comment.Body,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_failed: %w", err)
	}

	return comment, nil
}

/*
ListByChapter returns a chapter's comments oldest first with author usernames.
*/
func (repository *postgresRepository) ListByChapter(context context.Context, chapterID int64) ([]View, error) {
	query := fmt.Sprintf(`
		SELECT co.%s, co.%s, co.%s, co.%s, co.%s, co.%s, u.%s
		FROM %s co
		JOIN %s u ON u.%s = co.%s
		WHERE co.%s = $1
		ORDER BY co.%s ASC`,
		schema.SocialComment.ID,
		schema.SocialComment.UserID,
		schema.SocialComment.ChapterID,
		schema.SocialComment.Body,
		schema.SocialComment.CreatedAt,
		schema.SocialComment.UpdatedAt,
		schema.UsersAccount.Username,
		schema.SocialComment.Table,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.SocialComment.UserID,
		schema.SocialComment.ChapterID,
		schema.SocialComment.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		var view View
		if err := rows.Scan(
			&view.ID,
			&view.UserID,
			&view.ChapterID,
			&view.Body,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.Username,
		); err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_list_scan_failed: %w", err)
		}
		views = append(views, view)
	}

	return views, rows.Err()
}

/*
Insert persists a new comment and assigns its ID and timestamps.
*/
func (repository *postgresRepository) Insert(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING %s`,
		schema.SocialComment.Table,
		schema.SocialComment.UserID,
		schema.SocialComment.ChapterID,
		schema.SocialComment.Body,
		schema.SocialComment.CreatedAt,
		schema.SocialComment.UpdatedAt,
		schema.SocialComment.ID,
	)

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		comment.UserID,
		comment.ChapterID,
		comment.Body,
		now,
	).Scan(&comment.ID)

	if err != nil {
		return fmt.Errorf("postgres_comment_repo_insert_failed: %w", err)
	}

	return nil
}

/*
UpdateBody replaces a comment's body and refreshes its updated timestamp.
*/
func (repository *postgresRepository) UpdateBody(context context.Context, id int64, body string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.SocialComment.Table,
		schema.SocialComment.Body,
		schema.SocialComment.UpdatedAt,
		schema.SocialComment.ID,
	)

	tag, err := repository.pool.Exec(context, query, body, time.Now(), id)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

/*
Delete removes a comment row.
*/
func (repository *postgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

/*
Moderation returns comments across all chapters newest first, optionally
filtered by a case-insensitive substring over body, username, and manga title.
*/
func (repository *postgresRepository) Moderation(context context.Context, search string, limit, offset int) ([]ModerationView, int, error) {
	var builder strings.Builder
	args := []interface{}{}

	fmt.Fprintf(&builder, `
		SELECT co.%s, co.%s, co.%s, co.%s, co.%s, co.%s,
			u.%s, m.%s, m.%s, c.%s,
			COUNT(*) OVER() AS total_count
		FROM %s co
		JOIN %s u ON u.%s = co.%s
		JOIN %s c ON c.%s = co.%s
		JOIN %s m ON m.%s = c.%s`,
		schema.SocialComment.ID,
		schema.SocialComment.UserID,
		schema.SocialComment.ChapterID,
		schema.SocialComment.Body,
		schema.SocialComment.CreatedAt,
		schema.SocialComment.UpdatedAt,
		schema.UsersAccount.Username,
		schema.CoreManga.ID,
		schema.CoreManga.Title,
		schema.CoreChapter.ChapterNumber,
		schema.SocialComment.Table,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.SocialComment.UserID,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.SocialComment.ChapterID,
		schema.CoreManga.Table,
		schema.CoreManga.ID, schema.CoreChapter.MangaID,
	)

	if search != "" {
		args = append(args, "%"+search+"%")
		fmt.Fprintf(&builder, `
		WHERE co.%s ILIKE $1 OR u.%s ILIKE $1 OR m.%s ILIKE $1`,
			schema.SocialComment.Body,
			schema.UsersAccount.Username,
			schema.CoreManga.Title,
		)
	}

	fmt.Fprintf(&builder, `
		ORDER BY co.%s DESC
		LIMIT $%d OFFSET $%d`,
		schema.SocialComment.CreatedAt, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, builder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_moderation_failed: %w", err)
	}
	defer rows.Close()

	var views []ModerationView
	total := 0
	for rows.Next() {
		var view ModerationView
		if err := rows.Scan(
			&view.ID,
			&view.UserID,
			&view.ChapterID,
			&view.Body,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.Username,
			&view.MangaID,
			&view.MangaTitle,
			&view.ChapterNumber,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_moderation_scan_failed: %w", err)
		}
		views = append(views, view)
	}

	return views, total, rows.Err()
}
