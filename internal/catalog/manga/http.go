// Copyright (c) 2026 Mangabay. All rights reserved.

package manga

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tranquochuy/mangabay/internal/platform/constants"
	"github.com/tranquochuy/mangabay/internal/platform/middleware"
	requestutil "github.com/tranquochuy/mangabay/internal/platform/request"
	"github.com/tranquochuy/mangabay/internal/platform/respond"
	"github.com/tranquochuy/mangabay/internal/platform/validate"
	"github.com/tranquochuy/mangabay/internal/storage"
	"github.com/tranquochuy/mangabay/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements catalog HTTP endpoints.
//
// # Scope
//
// Public discovery (listing, featured, detail) plus the admin series
// management surface, including cover uploads.
type Handler struct {
	catalogService *Service
	fileStore      *storage.FileStore
	maxUploadBytes int64
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, fileStore *storage.FileStore, maxUploadBytes int64) *Handler {
	return &Handler{
		catalogService: service,
		fileStore:      fileStore,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the public catalog routes.
//
// # Endpoints
//   - GET /          : Filtered, paginated listing with the genre vocabulary.
//   - GET /featured  : Random home-page selection.
//   - GET /{mangaID} : Series detail with chapters and bookmark state.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/featured", handler.featured)
	router.Get("/{mangaID}", handler.get)

	return router
}

// AdminRoutes returns the back-office series management routes.
//
// # Endpoints
//   - GET    /          : Series listing with title/author search.
//   - POST   /          : Create a series (multipart, optional cover).
//   - PUT    /{mangaID} : Edit a series (multipart, optional cover).
//   - DELETE /{mangaID} : Cascade-delete a series.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Get("/", handler.adminList)
	router.Post("/", handler.create)
	router.Put("/{mangaID}", handler.update)
	router.Delete("/{mangaID}", handler.delete)

	return router
}

/*
List returns the filtered catalog page.

GET /api/v1/manga?q=&genre=&page=

Response:
  - 200: ListResult with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.catalogService.List(request.Context(), ListInput{
		Query: request.URL.Query().Get("q"),
		Genre: request.URL.Query().Get("genre"),
		Page:  pagination.FromRequest(request, constants.CatalogPageSize),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result, result.Meta)
}

/*
Featured returns the random home-page selection.

GET /api/v1/manga/featured
*/
func (handler *Handler) featured(writer http.ResponseWriter, request *http.Request) {
	results, err := handler.catalogService.Featured(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, results)
}

/*
Get returns the series detail view.

GET /api/v1/manga/{mangaID}

Response:
  - 200: Detail: Series, ordered chapters, bookmark state
  - 404: ErrNotFound: Unknown series
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.ID(request, FieldMangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Anonymous readers get Bookmarked=false
	var userID int64
	if claims := requestutil.Claims(request); claims != nil {
		userID = claims.UserID
	}

	detail, err := handler.catalogService.Get(request.Context(), mangaID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
AdminList returns the back-office series listing.

GET /api/v1/admin/manga?q=&page=
*/
func (handler *Handler) adminList(writer http.ResponseWriter, request *http.Request) {
	results, meta, err := handler.catalogService.AdminList(
		request.Context(),
		request.URL.Query().Get("q"),
		pagination.FromRequest(request, constants.AdminPageSize),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, results, meta)
}

// decodeUpsertForm parses the multipart series form and stores the optional
// cover upload, returning the assembled service input.
func (handler *Handler) decodeUpsertForm(request *http.Request) (UpsertInput, error) {
	if err := request.ParseMultipartForm(handler.maxUploadBytes); err != nil {
		return UpsertInput{}, validate.ErrInvalidJSON
	}

	input := UpsertInput{
		Title:       request.FormValue(FieldTitle),
		Author:      request.FormValue(FieldAuthor),
		Description: request.FormValue(FieldDescription),
		Genres:      request.FormValue(FieldGenres),
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		Required(FieldAuthor, input.Author)

	if err := validator.Err(); err != nil {
		return UpsertInput{}, err
	}

	file, header, err := request.FormFile(FieldCover)
	if err != nil {
		// No cover in the form is fine; the field is optional.
		return input, nil
	}
	defer file.Close()

	refPath, err := handler.fileStore.Save(storage.CategoryCovers, header.Filename, file)
	if err != nil {
		return UpsertInput{}, err
	}
	input.CoverImageURL = refPath

	return input, nil
}

/*
Create persists a new series from the admin form.

POST /api/v1/admin/manga (multipart/form-data)

Request:
  - Fields: title, author, description, genres
  - File: cover (optional image)

Response:
  - 201: Manga: Created series
  - 400: ErrInvalidJSON: Validation failure or bad cover type
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	input, err := handler.decodeUpsertForm(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.catalogService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
Update edits an existing series from the admin form.

PUT /api/v1/admin/manga/{mangaID} (multipart/form-data)

Response:
  - 200: Manga: Updated series
  - 404: ErrNotFound: Unknown series
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.ID(request, FieldMangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := handler.decodeUpsertForm(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.catalogService.Update(request.Context(), mangaID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
Delete removes a series with its full dependent tree.

DELETE /api/v1/admin/manga/{mangaID}

Response:
  - 204: No Content: Series and dependents removed
  - 404: ErrNotFound: Unknown series
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.ID(request, FieldMangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.catalogService.Delete(request.Context(), mangaID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
