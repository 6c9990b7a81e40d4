// Copyright (c) 2026 Mangabay. All rights reserved.

package bookmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/platform/database/schema"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed bookmark store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// bookmarkColumns is the canonical projection for hydrating a [Bookmark].
var bookmarkColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
	schema.LibraryBookmark.ID,
	schema.LibraryBookmark.UserID,
	schema.LibraryBookmark.MangaID,
	schema.LibraryBookmark.ChapterID,
	schema.LibraryBookmark.PageNumber,
	schema.LibraryBookmark.Note,
	schema.LibraryBookmark.CreatedAt,
)

func scanBookmark(row pgx.Row) (*Bookmark, error) {
	bookmark := &Bookmark{}
	err := row.Scan(
		&bookmark.ID,
		&bookmark.UserID,
		&bookmark.MangaID,
		&bookmark.ChapterID,
		&bookmark.PageNumber,
		&bookmark.Note,
		&bookmark.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Bookmark")
		}
		return nil, fmt.Errorf("postgres_bookmark_repo_scan_failed: %w", err)
	}
	return bookmark, nil
}

/*
FindByID returns the bookmark with the given ID.
*/
func (repository *postgresRepository) FindByID(context context.Context, id int64) (*Bookmark, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookmarkColumns, schema.LibraryBookmark.Table, schema.LibraryBookmark.ID)

	return scanBookmark(repository.pool.QueryRow(context, query, id))
}

/*
FindSeries returns the user's series-level bookmark for a manga.
*/
func (repository *postgresRepository) FindSeries(context context.Context, userID, mangaID int64) (*Bookmark, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		bookmarkColumns, schema.LibraryBookmark.Table,
		schema.LibraryBookmark.UserID,
		schema.LibraryBookmark.MangaID,
		schema.LibraryBookmark.ChapterID,
	)

	return scanBookmark(repository.pool.QueryRow(context, query, userID, mangaID))
}

/*
FindPage returns the user's page-level bookmark for a chapter.
*/
func (repository *postgresRepository) FindPage(context context.Context, userID, mangaID, chapterID int64) (*Bookmark, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3`,
		bookmarkColumns, schema.LibraryBookmark.Table,
		schema.LibraryBookmark.UserID,
		schema.LibraryBookmark.MangaID,
		schema.LibraryBookmark.ChapterID,
	)

	return scanBookmark(repository.pool.QueryRow(context, query, userID, mangaID, chapterID))
}

/*
Insert persists a new bookmark and assigns its ID.
*/
func (repository *postgresRepository) Insert(context context.Context, bookmark *Bookmark) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		schema.LibraryBookmark.Table,
		schema.LibraryBookmark.UserID,
		schema.LibraryBookmark.MangaID,
		schema.LibraryBookmark.ChapterID,
		schema.LibraryBookmark.PageNumber,
		schema.LibraryBookmark.Note,
		schema.LibraryBookmark.CreatedAt,
		schema.LibraryBookmark.ID,
	)

	if bookmark.CreatedAt.IsZero() {
		bookmark.CreatedAt = time.Now()
	}

	err := repository.pool.QueryRow(context, query,
		bookmark.UserID,
		bookmark.MangaID,
		bookmark.ChapterID,
		bookmark.PageNumber,
		bookmark.Note,
		bookmark.CreatedAt,
	).Scan(&bookmark.ID)

	if err != nil {
		return fmt.Errorf("postgres_bookmark_repo_insert_failed: %w", err)
	}

	return nil
}

/*
UpdatePage overwrites the position fields of an existing page bookmark.
*/
func (repository *postgresRepository) UpdatePage(context context.Context, id int64, pageNumber int, note string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3
		WHERE %s = $4`,
		schema.LibraryBookmark.Table,
		schema.LibraryBookmark.PageNumber,
		schema.LibraryBookmark.Note,
		schema.LibraryBookmark.CreatedAt,
		schema.LibraryBookmark.ID,
	)

	tag, err := repository.pool.Exec(context, query, pageNumber, note, time.Now(), id)
	if err != nil {
		return fmt.Errorf("postgres_bookmark_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Bookmark")
	}

	return nil
}

/*
Delete removes a bookmark row.
*/
func (repository *postgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.LibraryBookmark.Table, schema.LibraryBookmark.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_bookmark_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Bookmark")
	}

	return nil
}

/*
ListByUser returns the user's bookmarks newest first with display fields.

Description: Joins the manga title and, for page bookmarks, the chapter
number, using COUNT(*) OVER() for the total.
*/
func (repository *postgresRepository) ListByUser(context context.Context, userID int64, limit, offset int) ([]View, int, error) {
	query := fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
			m.%s, c.%s,
			COUNT(*) OVER() AS total_count
		FROM %s b
		JOIN %s m ON m.%s = b.%s
		LEFT JOIN %s c ON c.%s = b.%s
		WHERE b.%s = $1
		ORDER BY b.%s DESC
		LIMIT $2 OFFSET $3`,
		schema.LibraryBookmark.ID,
		schema.LibraryBookmark.UserID,
		schema.LibraryBookmark.MangaID,
		schema.LibraryBookmark.ChapterID,
		schema.LibraryBookmark.PageNumber,
		schema.LibraryBookmark.Note,
		schema.LibraryBookmark.CreatedAt,
		schema.CoreManga.Title,
		schema.CoreChapter.ChapterNumber,
		schema.LibraryBookmark.Table,
		schema.CoreManga.Table,
		schema.CoreManga.ID, schema.LibraryBookmark.MangaID,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.LibraryBookmark.ChapterID,
		schema.LibraryBookmark.UserID,
		schema.LibraryBookmark.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_bookmark_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var views []View
	total := 0
	for rows.Next() {
		var view View
		if err := rows.Scan(
			&view.ID,
			&view.UserID,
			&view.MangaID,
			&view.ChapterID,
			&view.PageNumber,
			&view.Note,
			&view.CreatedAt,
			&view.MangaTitle,
			&view.ChapterNumber,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_bookmark_repo_list_scan_failed: %w", err)
		}
		views = append(views, view)
	}

	return views, total, rows.Err()
}
