// Copyright (c) 2026 Mangabay. All rights reserved.

package chapter

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

// NewRepository constructs a PostgreSQL backed chapter store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// chapterColumns is the canonical projection for hydrating a [Chapter].
var chapterColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
	schema.CoreChapter.ID,
	schema.CoreChapter.MangaID,
	schema.CoreChapter.ChapterNumber,
	schema.CoreChapter.Title,
	schema.CoreChapter.CreatedAt,
)

func scanChapter(row pgx.Row) (*Chapter, error) {
	chapter := &Chapter{}
	err := row.Scan(
		&chapter.ID,
		&chapter.MangaID,
		&chapter.Number,
		&chapter.Title,
		&chapter.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres_chapter_repo_scan_failed: %w", err)
	}
	return chapter, nil
}

/*
FindByID returns the chapter with the given ID.
*/
func (repository *postgresRepository) FindByID(context context.Context, id int64) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		chapterColumns, schema.CoreChapter.Table, schema.CoreChapter.ID)

	return scanChapter(repository.pool.QueryRow(context, query, id))
}

/*
FindByMangaAndNumber resolves a chapter by its exact (manga, number) pair.

Description: The comparison is exact on the double precision column; reader
URLs carry the same value that was stored, so no epsilon is needed.
*/
func (repository *postgresRepository) FindByMangaAndNumber(context context.Context, mangaID int64, number float64) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		chapterColumns, schema.CoreChapter.Table,
		schema.CoreChapter.MangaID, schema.CoreChapter.ChapterNumber)

	return scanChapter(repository.pool.QueryRow(context, query, mangaID, number))
}

/*
ListByManga returns the manga's chapters ordered by number ascending.
*/
func (repository *postgresRepository) ListByManga(context context.Context, mangaID int64) ([]*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		chapterColumns, schema.CoreChapter.Table,
		schema.CoreChapter.MangaID, schema.CoreChapter.ChapterNumber)

	rows, err := repository.pool.Query(context, query, mangaID)
	if err != nil {
		return nil, fmt.Errorf("postgres_chapter_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		chapter := &Chapter{}
		if err := rows.Scan(
			&chapter.ID,
			&chapter.MangaID,
			&chapter.Number,
			&chapter.Title,
			&chapter.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_chapter_repo_list_scan_failed: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	return chapters, rows.Err()
}

/*
Adjacent returns the neighboring chapters of the given number within a manga.

Description: Two ordered single-row lookups: the largest number strictly
below and the smallest strictly above. A missing neighbor comes back nil,
not as an error.
*/
func (repository *postgresRepository) Adjacent(context context.Context, mangaID int64, number float64) (*Ref, *Ref, error) {
	previousQuery := fmt.Sprintf(`
		SELECT %s, %s FROM %s
		WHERE %s = $1 AND %s < $2
		ORDER BY %s DESC LIMIT 1`,
		schema.CoreChapter.ID, schema.CoreChapter.ChapterNumber, schema.CoreChapter.Table,
		schema.CoreChapter.MangaID, schema.CoreChapter.ChapterNumber,
		schema.CoreChapter.ChapterNumber)

	nextQuery := fmt.Sprintf(`
		SELECT %s, %s FROM %s
		WHERE %s = $1 AND %s > $2
		ORDER BY %s ASC LIMIT 1`,
		schema.CoreChapter.ID, schema.CoreChapter.ChapterNumber, schema.CoreChapter.Table,
		schema.CoreChapter.MangaID, schema.CoreChapter.ChapterNumber,
		schema.CoreChapter.ChapterNumber)

	previous, err := repository.scanRef(context, previousQuery, mangaID, number)
	if err != nil {
		return nil, nil, err
	}

	next, err := repository.scanRef(context, nextQuery, mangaID, number)
	if err != nil {
		return nil, nil, err
	}

	return previous, next, nil
}

// scanRef runs a single-neighbor lookup, mapping no-rows to nil.
func (repository *postgresRepository) scanRef(context context.Context, query string, mangaID int64, number float64) (*Ref, error) {
	ref := &Ref{}
	err := repository.pool.QueryRow(context, query, mangaID, number).Scan(&ref.ID, &ref.Number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres_chapter_repo_adjacent_failed: %w", err)
	}
	return ref, nil
}

/*
NumberExists reports whether the manga already has a chapter with this number.
*/
func (repository *postgresRepository) NumberExists(context context.Context, mangaID int64, number float64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.CoreChapter.Table, schema.CoreChapter.MangaID, schema.CoreChapter.ChapterNumber)

	var exists bool
	if err := repository.pool.QueryRow(context, query, mangaID, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_chapter_repo_number_exists_failed: %w", err)
	}

	return exists, nil
}

/*
Create persists a new chapter and assigns its ID.
*/
func (repository *postgresRepository) Create(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`,
		schema.CoreChapter.Table,
		schema.CoreChapter.MangaID,
		schema.CoreChapter.ChapterNumber,
		schema.CoreChapter.Title,
		schema.CoreChapter.CreatedAt,
		schema.CoreChapter.ID,
	)

	if chapter.CreatedAt.IsZero() {
		chapter.CreatedAt = time.Now()
	}

	err := repository.pool.QueryRow(context, query,
		chapter.MangaID,
		chapter.Number,
		chapter.Title,
		chapter.CreatedAt,
	).Scan(&chapter.ID)

	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_create_failed: %w", err)
	}

	return nil
}

/*
DeleteCascade removes the chapter and its dependent rows in one transaction.

Description: Comments, pages, chapter-scoped bookmarks, and reading history
are deleted explicitly before the chapter row; the schema's ON DELETE CASCADE
foreign keys act only as a backstop.
*/
func (repository *postgresRepository) DeleteCascade(context context.Context, chapterID int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_delete_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	statements := []string{
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.SocialComment.Table, schema.SocialComment.ChapterID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CorePage.Table, schema.CorePage.ChapterID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.LibraryBookmark.Table, schema.LibraryBookmark.ChapterID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.LibraryReadingHistory.Table, schema.LibraryReadingHistory.ChapterID),
	}

	for _, statement := range statements {
		if _, err := transaction.Exec(context, statement, chapterID); err != nil {
			return fmt.Errorf("postgres_chapter_repo_delete_cascade_failed: %w", err)
		}
	}

	tag, err := transaction.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreChapter.Table, schema.CoreChapter.ID),
		chapterID,
	)
	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_chapter_repo_delete_commit_failed: %w", err)
	}

	return nil
}

/*
PagesByChapter returns the chapter's pages ordered by page number.
*/
func (repository *postgresRepository) PagesByChapter(context context.Context, chapterID int64) ([]Page, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC`,
		schema.CorePage.ID,
		schema.CorePage.ChapterID,
		schema.CorePage.PageNumber,
		schema.CorePage.ImageURL,
		schema.CorePage.Table,
		schema.CorePage.ChapterID,
		schema.CorePage.PageNumber,
	)

	rows, err := repository.pool.Query(context, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("postgres_chapter_repo_pages_failed: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var page Page
		if err := rows.Scan(&page.ID, &page.ChapterID, &page.PageNumber, &page.ImageURL); err != nil {
			return nil, fmt.Errorf("postgres_chapter_repo_pages_scan_failed: %w", err)
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

/*
CreatePage persists a new page row and assigns its ID.
*/
func (repository *postgresRepository) CreatePage(context context.Context, page *Page) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s`,
		schema.CorePage.Table,
		schema.CorePage.ChapterID,
		schema.CorePage.PageNumber,
		schema.CorePage.ImageURL,
		schema.CorePage.ID,
	)

	err := repository.pool.QueryRow(context, query,
		page.ChapterID,
		page.PageNumber,
		page.ImageURL,
	).Scan(&page.ID)

	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_create_page_failed: %w", err)
	}

	return nil
}

/*
FindPage returns a page row by ID.
*/
func (repository *postgresRepository) FindPage(context context.Context, pageID int64) (*Page, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CorePage.ID,
		schema.CorePage.ChapterID,
		schema.CorePage.PageNumber,
		schema.CorePage.ImageURL,
		schema.CorePage.Table,
		schema.CorePage.ID,
	)

	page := &Page{}
	err := repository.pool.QueryRow(context, query, pageID).Scan(
		&page.ID, &page.ChapterID, &page.PageNumber, &page.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Page")
		}
		return nil, fmt.Errorf("postgres_chapter_repo_find_page_failed: %w", err)
	}

	return page, nil
}

/*
DeletePage removes a page row.
*/
func (repository *postgresRepository) DeletePage(context context.Context, pageID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CorePage.Table, schema.CorePage.ID)

	tag, err := repository.pool.Exec(context, query, pageID)
	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_delete_page_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Page")
	}

	return nil
}

/*
PageImagePaths returns the stored image paths of the chapter's pages.
*/
func (repository *postgresRepository) PageImagePaths(context context.Context, chapterID int64) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CorePage.ImageURL, schema.CorePage.Table, schema.CorePage.ChapterID)

	rows, err := repository.pool.Query(context, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("postgres_chapter_repo_image_paths_failed: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("postgres_chapter_repo_image_paths_scan_failed: %w", err)
		}
		paths = append(paths, p)
	}

	return paths, rows.Err()
}
