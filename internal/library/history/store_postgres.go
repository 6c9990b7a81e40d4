// Copyright (c) 2026 Mangabay. All rights reserved.

package history

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

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed history store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// viewQuery builds the joined history projection. extra lets callers add a
// trailing select expression, such as the COUNT(*) OVER() window.
func viewQuery(extra string) string {
	return fmt.Sprintf(`
		SELECT h.%s, h.%s, h.%s, h.%s, h.%s, h.%s, h.%s,
			m.%s, c.%s%s
		FROM %s h
		JOIN %s m ON m.%s = h.%s
		JOIN %s c ON c.%s = h.%s
		WHERE h.%s = $1
		ORDER BY h.%s DESC`,
		schema.LibraryReadingHistory.ID,
		schema.LibraryReadingHistory.UserID,
		schema.LibraryReadingHistory.MangaID,
		schema.LibraryReadingHistory.ChapterID,
		schema.LibraryReadingHistory.PageNumber,
		schema.LibraryReadingHistory.ReadDuration,
		schema.LibraryReadingHistory.ReadAt,
		schema.CoreManga.Title,
		schema.CoreChapter.ChapterNumber,
		extra,
		schema.LibraryReadingHistory.Table,
		schema.CoreManga.Table,
		schema.CoreManga.ID, schema.LibraryReadingHistory.MangaID,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.LibraryReadingHistory.ChapterID,
		schema.LibraryReadingHistory.UserID,
		schema.LibraryReadingHistory.ReadAt,
	)
}

func scanView(rows pgx.Rows, withTotal bool, total *int) (*View, error) {
	view := &View{}
	targets := []interface{}{
		&view.ID,
		&view.UserID,
		&view.MangaID,
		&view.ChapterID,
		&view.PageNumber,
		&view.ReadDuration,
		&view.ReadAt,
		&view.MangaTitle,
		&view.ChapterNumber,
	}
	if withTotal {
		targets = append(targets, total)
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("postgres_history_repo_scan_failed: %w", err)
	}
	return view, nil
}

/*
Find returns the user's history entry for a chapter.
*/
func (repository *postgresRepository) Find(context context.Context, userID, chapterID int64) (*Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		schema.LibraryReadingHistory.ID,
		schema.LibraryReadingHistory.UserID,
		schema.LibraryReadingHistory.MangaID,
		schema.LibraryReadingHistory.ChapterID,
		schema.LibraryReadingHistory.PageNumber,
		schema.LibraryReadingHistory.ReadDuration,
		schema.LibraryReadingHistory.ReadAt,
		schema.LibraryReadingHistory.Table,
		schema.LibraryReadingHistory.UserID,
		schema.LibraryReadingHistory.ChapterID,
	)

	entry := &Entry{}
	err := repository.pool.QueryRow(context, query, userID, chapterID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.MangaID,
		&entry.ChapterID,
		&entry.PageNumber,
		&entry.ReadDuration,
		&entry.ReadAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("History entry")
		}
		return nil, fmt.Errorf("postgres_history_repo_find_failed: %w", err)
	}

	return entry, nil
}

/*
Insert persists a new entry and assigns its ID.
*/
func (repository *postgresRepository) Insert(context context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		schema.LibraryReadingHistory.Table,
		schema.LibraryReadingHistory.UserID,
		schema.LibraryReadingHistory.MangaID,
		schema.LibraryReadingHistory.ChapterID,
		schema.LibraryReadingHistory.PageNumber,
		schema.LibraryReadingHistory.ReadDuration,
		schema.LibraryReadingHistory.ReadAt,
		schema.LibraryReadingHistory.ID,
	)

	if entry.ReadAt.IsZero() {
		entry.ReadAt = time.Now()
	}

	err := repository.pool.QueryRow(context, query,
		entry.UserID,
		entry.MangaID,
		entry.ChapterID,
		entry.PageNumber,
		entry.ReadDuration,
		entry.ReadAt,
	).Scan(&entry.ID)

	if err != nil {
		return fmt.Errorf("postgres_history_repo_insert_failed: %w", err)
	}

	return nil
}

/*
Touch refreshes an entry's read timestamp to now.
*/
func (repository *postgresRepository) Touch(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.LibraryReadingHistory.Table,
		schema.LibraryReadingHistory.ReadAt,
		schema.LibraryReadingHistory.ID,
	)

	tag, err := repository.pool.Exec(context, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("postgres_history_repo_touch_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("History entry")
	}

	return nil
}

/*
ListByUser returns the user's history most recent first.
*/
func (repository *postgresRepository) ListByUser(context context.Context, userID int64, limit, offset int) ([]View, int, error) {
	query := viewQuery(", COUNT(*) OVER() AS total_count") + " LIMIT $2 OFFSET $3"

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_history_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var views []View
	total := 0
	for rows.Next() {
		view, err := scanView(rows, true, &total)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}

	return views, total, rows.Err()
}

/*
Recent returns the user's n most recent entries with display fields.
*/
func (repository *postgresRepository) Recent(context context.Context, userID int64, n int) ([]View, error) {
	query := viewQuery("") + " LIMIT $2"

	rows, err := repository.pool.Query(context, query, userID, n)
	if err != nil {
		return nil, fmt.Errorf("postgres_history_repo_recent_failed: %w", err)
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		view, err := scanView(rows, false, nil)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	return views, rows.Err()
}

/*
Clear deletes all of the user's history entries.
*/
func (repository *postgresRepository) Clear(context context.Context, userID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.LibraryReadingHistory.Table,
		schema.LibraryReadingHistory.UserID,
	)

	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres_history_repo_clear_failed: %w", err)
	}

	return nil
}

/*
DistinctMangaCount returns how many distinct manga the user has read.
*/
func (repository *postgresRepository) DistinctMangaCount(context context.Context, userID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(DISTINCT %s) FROM %s WHERE %s = $1`,
		schema.LibraryReadingHistory.MangaID,
		schema.LibraryReadingHistory.Table,
		schema.LibraryReadingHistory.UserID,
	)

	count := 0
	if err := repository.pool.QueryRow(context, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_history_repo_count_failed: %w", err)
	}

	return count, nil
}
