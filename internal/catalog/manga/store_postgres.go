// Copyright (c) 2026 Mangabay. All rights reserved.

/*
Package manga provides the PostgreSQL implementation for the catalog's data access.

It keeps the discovery queries in a single round-trip where possible:
  - Window Functions: COUNT(*) OVER() returns the total result count without
    a separate COUNT query.
  - ILIKE Matching: Case-insensitive substring search across title, author,
    and description.
  - ACID Transactions: Cascade deletes remove a series and its dependents
    atomically, children first.
*/
package manga

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

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed catalog store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// mangaColumns is the canonical projection for hydrating a [Manga].
var mangaColumns = strings.Join([]string{
	schema.CoreManga.ID,
	schema.CoreManga.Title,
	schema.CoreManga.Author,
	schema.CoreManga.Description,
	schema.CoreManga.Genres,
	schema.CoreManga.CoverImageURL,
	schema.CoreManga.CreatedAt,
}, ", ")

/*
List returns a filtered, paginated slice of manga and the total count.

Description: Uses COUNT(*) OVER() so one query yields both the page and the
total. The free-text query matches title, author, and description with ILIKE;
the genre filter is a substring match against the comma-joined genres column.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Manga: Page of catalog entries ordered by title
  - int: Total count matching the filter
  - error: Database execution errors
*/
func (repository *postgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Manga, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE 1=1`, mangaColumns, schema.CoreManga.Table))

	// Free-text search across title and author, plus description unless the
	// filter narrows to the identity columns
	if filter.Query != "" {
		if filter.TitleAuthorOnly {
			queryBuilder.WriteString(fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
				schema.CoreManga.Title, argID,
				schema.CoreManga.Author, argID,
			))
		} else {
			queryBuilder.WriteString(fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
				schema.CoreManga.Title, argID,
				schema.CoreManga.Author, argID,
				schema.CoreManga.Description, argID,
			))
		}
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Genre substring filter against the comma-joined column
	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", schema.CoreManga.Genres, argID))
		args = append(args, "%"+filter.Genre+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d",
		schema.CoreManga.Title, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_manga_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var results []*Manga
	total := 0
	for rows.Next() {
		manga := &Manga{}
		if err := rows.Scan(
			&manga.ID,
			&manga.Title,
			&manga.Author,
			&manga.Description,
			&manga.Genres,
			&manga.CoverImageURL,
			&manga.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_manga_repo_list_scan_failed: %w", err)
		}
		results = append(results, manga)
	}

	return results, total, rows.Err()
}

/*
GenreColumns returns the raw genres column of every series that has one.

Parameters:
  - context: context.Context

Returns:
  - []string: Comma-joined genre strings, one per series
  - error: Database execution errors
*/
func (repository *postgresRepository) GenreColumns(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s <> ''`,
		schema.CoreManga.Genres, schema.CoreManga.Table, schema.CoreManga.Genres)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_manga_repo_genres_failed: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("postgres_manga_repo_genres_scan_failed: %w", err)
		}
		columns = append(columns, raw)
	}

	return columns, rows.Err()
}

/*
Featured returns up to n random series for the home surface.

Description: ORDER BY random() is acceptable at catalog scale; it keeps the
selection uniform without a dedicated feature table.
*/
func (repository *postgresRepository) Featured(context context.Context, n int) ([]*Manga, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY random() LIMIT $1`,
		mangaColumns, schema.CoreManga.Table)

	rows, err := repository.pool.Query(context, query, n)
	if err != nil {
		return nil, fmt.Errorf("postgres_manga_repo_featured_failed: %w", err)
	}
	defer rows.Close()

	return scanMangaRows(rows)
}

/*
FindByID returns the series with the given ID.

Returns:
  - *Manga: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *postgresRepository) FindByID(context context.Context, id int64) (*Manga, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		mangaColumns, schema.CoreManga.Table, schema.CoreManga.ID)

	manga := &Manga{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&manga.ID,
		&manga.Title,
		&manga.Author,
		&manga.Description,
		&manga.Genres,
		&manga.CoverImageURL,
		&manga.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Manga")
		}
		return nil, fmt.Errorf("postgres_manga_repo_find_failed: %w", err)
	}

	return manga, nil
}

/*
ChaptersByManga returns chapter summaries ordered by number ascending.
*/
func (repository *postgresRepository) ChaptersByManga(context context.Context, mangaID int64) ([]ChapterSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC`,
		schema.CoreChapter.ID,
		schema.CoreChapter.ChapterNumber,
		schema.CoreChapter.Title,
		schema.CoreChapter.CreatedAt,
		schema.CoreChapter.Table,
		schema.CoreChapter.MangaID,
		schema.CoreChapter.ChapterNumber,
	)

	rows, err := repository.pool.Query(context, query, mangaID)
	if err != nil {
		return nil, fmt.Errorf("postgres_manga_repo_chapters_failed: %w", err)
	}
	defer rows.Close()

	var chapters []ChapterSummary
	for rows.Next() {
		var chapter ChapterSummary
		if err := rows.Scan(&chapter.ID, &chapter.Number, &chapter.Title, &chapter.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres_manga_repo_chapters_scan_failed: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	return chapters, rows.Err()
}

/*
HasBookmark reports whether the user holds a series-level bookmark for the manga.
*/
func (repository *postgresRepository) HasBookmark(context context.Context, userID, mangaID int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND %s = $2 AND %s IS NULL
		)`,
		schema.LibraryBookmark.Table,
		schema.LibraryBookmark.UserID,
		schema.LibraryBookmark.MangaID,
		schema.LibraryBookmark.ChapterID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID, mangaID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_manga_repo_has_bookmark_failed: %w", err)
	}

	return exists, nil
}

/*
Create persists a new series and assigns its ID.
*/
func (repository *postgresRepository) Create(context context.Context, manga *Manga) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		schema.CoreManga.Table,
		schema.CoreManga.Title,
		schema.CoreManga.Author,
		schema.CoreManga.Description,
		schema.CoreManga.Genres,
		schema.CoreManga.CoverImageURL,
		schema.CoreManga.CreatedAt,
		schema.CoreManga.ID,
	)

	if manga.CreatedAt.IsZero() {
		manga.CreatedAt = time.Now()
	}

	err := repository.pool.QueryRow(context, query,
		manga.Title,
		manga.Author,
		manga.Description,
		manga.Genres,
		manga.CoverImageURL,
		manga.CreatedAt,
	).Scan(&manga.ID)

	if err != nil {
		return fmt.Errorf("postgres_manga_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update persists changes to an existing series.

Returns:
  - error: apperr.NotFound when the row is gone, or database errors
*/
func (repository *postgresRepository) Update(context context.Context, manga *Manga) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $6`,
		schema.CoreManga.Table,
		schema.CoreManga.Title,
		schema.CoreManga.Author,
		schema.CoreManga.Description,
		schema.CoreManga.Genres,
		schema.CoreManga.CoverImageURL,
		schema.CoreManga.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		manga.Title,
		manga.Author,
		manga.Description,
		manga.Genres,
		manga.CoverImageURL,
		manga.ID,
	)

	if err != nil {
		return fmt.Errorf("postgres_manga_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Manga")
	}

	return nil
}

/*
DeleteCascade removes the series and all dependent rows in one transaction.

Description: Children are deleted explicitly before the parent (comments on
the series' chapters, then pages, bookmarks, reading history, chapters, and
finally the manga row). The ON DELETE CASCADE foreign keys in the schema act
only as a backstop.

Returns:
  - error: apperr.NotFound when the series does not exist
*/
func (repository *postgresRepository) DeleteCascade(context context.Context, mangaID int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_manga_repo_delete_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	chapterIDs := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreChapter.ID, schema.CoreChapter.Table, schema.CoreChapter.MangaID)

	statements := []string{
		fmt.Sprintf(`DELETE FROM %s WHERE %s IN (%s)`,
			schema.SocialComment.Table, schema.SocialComment.ChapterID, chapterIDs),
		fmt.Sprintf(`DELETE FROM %s WHERE %s IN (%s)`,
			schema.CorePage.Table, schema.CorePage.ChapterID, chapterIDs),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.LibraryBookmark.Table, schema.LibraryBookmark.MangaID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.LibraryReadingHistory.Table, schema.LibraryReadingHistory.MangaID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CoreChapter.Table, schema.CoreChapter.MangaID),
	}

	for _, statement := range statements {
		if _, err := transaction.Exec(context, statement, mangaID); err != nil {
			return fmt.Errorf("postgres_manga_repo_delete_cascade_failed: %w", err)
		}
	}

	tag, err := transaction.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreManga.Table, schema.CoreManga.ID),
		mangaID,
	)
	if err != nil {
		return fmt.Errorf("postgres_manga_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Manga")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_manga_repo_delete_commit_failed: %w", err)
	}

	return nil
}

/*
PageImagePaths returns the stored image paths of every page under the manga,
plus its cover path. Collected before a cascade delete for best-effort file
cleanup.
*/
func (repository *postgresRepository) PageImagePaths(context context.Context, mangaID int64) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT p.%s
		FROM %s p
		JOIN %s c ON c.%s = p.%s
		WHERE c.%s = $1
		UNION ALL
		SELECT %s FROM %s WHERE %s = $1 AND %s <> ''`,
		schema.CorePage.ImageURL,
		schema.CorePage.Table,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.CorePage.ChapterID,
		schema.CoreChapter.MangaID,
		schema.CoreManga.CoverImageURL, schema.CoreManga.Table,
		schema.CoreManga.ID, schema.CoreManga.CoverImageURL,
	)

	rows, err := repository.pool.Query(context, query, mangaID)
	if err != nil {
		return nil, fmt.Errorf("postgres_manga_repo_image_paths_failed: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("postgres_manga_repo_image_paths_scan_failed: %w", err)
		}
		paths = append(paths, p)
	}

	return paths, rows.Err()
}

// scanMangaRows hydrates entities from a query over the canonical projection.
func scanMangaRows(rows pgx.Rows) ([]*Manga, error) {
	var results []*Manga
	for rows.Next() {
		manga := &Manga{}
		if err := rows.Scan(
			&manga.ID,
			&manga.Title,
			&manga.Author,
			&manga.Description,
			&manga.Genres,
			&manga.CoverImageURL,
			&manga.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_manga_repo_scan_failed: %w", err)
		}
		results = append(results, manga)
	}
	return results, rows.Err()
}
