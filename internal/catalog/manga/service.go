// Copyright (c) 2026 Mangabay. All rights reserved.

package manga

import (
	"context"
	"sort"
	"strings"

	"github.com/tranquochuy/mangabay/internal/platform/constants"
	"github.com/tranquochuy/mangabay/pkg/pagination"
	"github.com/tranquochuy/mangabay/pkg/query"
)

// # Contracts & Types

// FileRemover deletes a stored upload by its public path. Removal is best
// effort; implementations never fail on a missing file.
type FileRemover interface {
	Remove(refPath string)
}

// Service implements catalog use cases.
type Service struct {
	repository Repository
	files      FileRemover
}

// NewService constructs a new catalog [Service].
func NewService(repository Repository, files FileRemover) *Service {
	return &Service{repository: repository, files: files}
}

// # Discovery

// ListInput narrows and pages the public catalog listing.
type ListInput struct {
	Query string
	Genre string
	Page  pagination.Params
}

// ListResult is the catalog listing plus the genre filter vocabulary.
type ListResult struct {
	Manga  []*Manga        `json:"manga"`
	Genres []string        `json:"genres"`
	Meta   pagination.Meta `json:"-"`
}

/*
List returns a filtered catalog page together with the distinct genre set.

Description: The genre vocabulary is recomputed from the comma-joined genre
columns of the whole catalog, deduplicated case-sensitively and sorted, so
the filter dropdown always reflects what actually exists.

Parameters:
  - context: context.Context
  - input: ListInput

Returns:
  - *ListResult: Page of series, genre vocabulary, pagination metadata
  - err: Database failures
*/
func (service *Service) List(context context.Context, input ListInput) (*ListResult, error) {
	filter := Filter{
		Query: strings.TrimSpace(input.Query),
		Genre: strings.TrimSpace(input.Genre),
	}

	results, total, err := service.repository.List(context, filter, input.Page.Limit, input.Page.Offset())
	if err != nil {
		return nil, err
	}

	genres, err := service.genreVocabulary(context)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Manga:  results,
		Genres: genres,
		Meta:   pagination.NewMeta(input.Page.Page, input.Page.Limit, total),
	}, nil
}

// genreVocabulary tokenizes every genres column into a sorted distinct set.
func (service *Service) genreVocabulary(context context.Context) ([]string, error) {
	columns, err := service.repository.GenreColumns(context)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var genres []string
	for _, column := range columns {
		for _, token := range query.StringSlice(column) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			genres = append(genres, token)
		}
	}

	sort.Strings(genres)
	return genres, nil
}

/*
Featured returns the random home-page selection.
*/
func (service *Service) Featured(context context.Context) ([]*Manga, error) {
	return service.repository.Featured(context, constants.FeaturedMangaCount)
}

/*
Get returns the series detail view.

Description: Chapters come back ordered by number ascending. Bookmarked is
always false for anonymous requests (userID 0).

Parameters:
  - context: context.Context
  - id: int64
  - userID: int64 (0 when anonymous)

Returns:
  - *Detail: Series, chapters, bookmark state
  - err: NotFound or database failures
*/
func (service *Service) Get(context context.Context, id, userID int64) (*Detail, error) {
	entity, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	chapters, err := service.repository.ChaptersByManga(context, id)
	if err != nil {
		return nil, err
	}

	bookmarked := false
	if userID > 0 {
		bookmarked, err = service.repository.HasBookmark(context, userID, id)
		if err != nil {
			return nil, err
		}
	}

	return &Detail{
		Manga:      entity,
		Chapters:   chapters,
		Bookmarked: bookmarked,
	}, nil
}

// # Admin Management

// UpsertInput carries the editable fields of a series. CoverImageURL is the
// already-stored public path of an uploaded cover, or empty to keep the
// existing one.
type UpsertInput struct {
	Title         string
	Author        string
	Description   string
	Genres        string
	CoverImageURL string
}

/*
Create persists a new series.
*/
func (service *Service) Create(context context.Context, input UpsertInput) (*Manga, error) {
	entity := &Manga{
		Title:         strings.TrimSpace(input.Title),
		Author:        strings.TrimSpace(input.Author),
		Description:   strings.TrimSpace(input.Description),
		Genres:        strings.TrimSpace(input.Genres),
		CoverImageURL: input.CoverImageURL,
	}

	if err := service.repository.Create(context, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

/*
Update edits an existing series. A new cover replaces (and deletes) the old
stored file.

Returns:
  - *Manga: Updated entity
  - err: NotFound or database failures
*/
func (service *Service) Update(context context.Context, id int64, input UpsertInput) (*Manga, error) {
	entity, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	previousCover := entity.CoverImageURL

	entity.Title = strings.TrimSpace(input.Title)
	entity.Author = strings.TrimSpace(input.Author)
	entity.Description = strings.TrimSpace(input.Description)
	entity.Genres = strings.TrimSpace(input.Genres)
	if input.CoverImageURL != "" {
		entity.CoverImageURL = input.CoverImageURL
	}

	if err := service.repository.Update(context, entity); err != nil {
		return nil, err
	}

	if input.CoverImageURL != "" && previousCover != "" && previousCover != input.CoverImageURL {
		service.files.Remove(previousCover)
	}

	return entity, nil
}

/*
Delete removes a series with its full dependent tree, then best-effort
deletes the stored cover and page files.

Description: The image paths are collected before the cascade so the cleanup
list survives the row deletions. File removal failures are ignored; rows are
the source of truth.

Returns:
  - err: NotFound or database failures
*/
func (service *Service) Delete(context context.Context, id int64) error {
	paths, err := service.repository.PageImagePaths(context, id)
	if err != nil {
		return err
	}

	if err := service.repository.DeleteCascade(context, id); err != nil {
		return err
	}

	for _, path := range paths {
		service.files.Remove(path)
	}

	return nil
}

/*
AdminList returns the back-office series listing with title/author search.
*/
func (service *Service) AdminList(context context.Context, search string, page pagination.Params) ([]*Manga, pagination.Meta, error) {
	filter := Filter{Query: strings.TrimSpace(search), TitleAuthorOnly: true}
	results, total, err := service.repository.List(context, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return results, pagination.NewMeta(page.Page, page.Limit, total), nil
}
