// Copyright (c) 2026 Mangabay. All rights reserved.

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/platform/middleware"
	requestutil "github.com/tranquochuy/mangabay/internal/platform/request"
	"github.com/tranquochuy/mangabay/internal/platform/respond"
	"github.com/tranquochuy/mangabay/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements chapter HTTP endpoints.
//
// # Scope
//
// The public reader view plus the admin chapter and page management
// surface, including direct and ZIP page uploads.
type Handler struct {
	chapterService *Service
	maxUploadBytes int64
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{chapterService: service, maxUploadBytes: maxUploadBytes}
}

// Routes returns the reader routes. Reading requires a session; the
// catalog stays browsable anonymously, the pages themselves do not.
//
// # Endpoints
//   - GET /{mangaID}/{number} : Reader view for a chapter.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/{mangaID}/{number}", handler.read)

	return router
}

// AdminRoutes returns the back-office chapter management routes.
//
// # Endpoints
//   - GET    /by-manga/{mangaID}          : List a manga's chapters.
//   - POST   /by-manga/{mangaID}          : Add a chapter.
//   - DELETE /{chapterID}                 : Cascade-delete a chapter.
//   - GET    /{chapterID}/pages           : List a chapter's pages.
//   - POST   /{chapterID}/pages           : Upload page images directly.
//   - POST   /{chapterID}/pages/archive   : Upload a ZIP of page images.
//   - DELETE /pages/{pageID}              : Delete a single page.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Get("/by-manga/{mangaID}", handler.list)
	router.Post("/by-manga/{mangaID}", handler.add)
	router.Delete("/{chapterID}", handler.delete)
	router.Get("/{chapterID}/pages", handler.pages)
	router.Post("/{chapterID}/pages", handler.uploadPages)
	router.Post("/{chapterID}/pages/archive", handler.uploadArchive)
	router.Delete("/pages/{pageID}", handler.deletePage)

	return router
}

/*
Read returns the reader view for a chapter.

GET /api/v1/read/{mangaID}/{number}

Description: Records the chapter in the reader's history and resumes at the
page-level bookmark when one exists.

Response:
  - 200: ReadView: Chapter, ordered pages, previous/next, initial page
  - 401: ErrUnauthorized: Not logged in
  - 404: ErrNotFound: No chapter with this number under the manga
*/
func (handler *Handler) read(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.ID(request, FieldMangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	number, err := requestutil.Number(request, FieldNumber)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.chapterService.Read(request.Context(), mangaID, number, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

// # Admin: Chapter Lifecycle

type addChapterRequest struct {
	Number float64 `json:"number"`
	Title  string  `json:"title"`
}

/*
List returns a manga's chapters for the back office.

GET /api/v1/admin/chapters/by-manga/{mangaID}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.ID(request, FieldMangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, err := handler.chapterService.List(request.Context(), mangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapters)
}

/*
Add creates a chapter under a manga.

POST /api/v1/admin/chapters/by-manga/{mangaID}

Request:
  - Body: addChapterRequest (Number, Title)

Response:
  - 201: Chapter: Created chapter
  - 400: ErrInvalidJSON: Missing or non-positive number
  - 409: ErrConflict: Duplicate chapter number
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.ID(request, FieldMangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Positive(FieldNumber, input.Number)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.chapterService.Add(request.Context(), AddInput{
		MangaID: mangaID,
		Number:  input.Number,
		Title:   input.Title,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
Delete removes a chapter with its dependent rows and stored page files.

DELETE /api/v1/admin/chapters/{chapterID}

Response:
  - 204: No Content: Chapter and dependents removed
  - 404: ErrNotFound: Unknown chapter
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, FieldChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.chapterService.Delete(request.Context(), chapterID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Admin: Page Management

/*
Pages returns a chapter's pages for the back office.

GET /api/v1/admin/chapters/{chapterID}/pages
*/
func (handler *Handler) pages(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, FieldChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pages, err := handler.chapterService.Pages(request.Context(), chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pages)
}

/*
UploadPages stores submitted page images in submission order.

POST /api/v1/admin/chapters/{chapterID}/pages (multipart/form-data)

Request:
  - Files: pages (one or more images, ordered)

Response:
  - 201: []Page: Created pages
  - 400: ErrInvalidJSON: No files or a disallowed file type
  - 404: ErrNotFound: Unknown chapter
*/
func (handler *Handler) uploadPages(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, FieldChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(handler.maxUploadBytes); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	var uploads []Upload
	if request.MultipartForm != nil {
		for _, header := range request.MultipartForm.File[FieldPages] {
			file, err := header.Open()
			if err != nil {
				respond.Error(writer, request, apperr.Storage("Could not read an uploaded page", err))
				return
			}
			defer file.Close()

			uploads = append(uploads, Upload{Filename: header.Filename, Content: file})
		}
	}

	pages, err := handler.chapterService.UploadPages(request.Context(), chapterID, uploads)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, pages)
}

/*
UploadArchive ingests a ZIP of page images into a chapter.

POST /api/v1/admin/chapters/{chapterID}/pages/archive (multipart/form-data)

Request:
  - File: archive (one ZIP)

Response:
  - 201: Ingested page count
  - 400: ErrInvalidJSON: Missing, corrupt, or image-free archive
  - 404: ErrNotFound: Unknown chapter
  - 500: STORAGE_ERROR: Extraction or move failure
*/
func (handler *Handler) uploadArchive(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, FieldChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(handler.maxUploadBytes); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	file, header, err := request.FormFile(FieldArchive)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldArchive, "A ZIP archive is required"))
		return
	}
	defer file.Close()

	count, err := handler.chapterService.UploadArchive(request.Context(), chapterID, file, header.Size)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]int{"pages_ingested": count})
}

/*
DeletePage removes a single page and its stored file.

DELETE /api/v1/admin/chapters/pages/{pageID}

Response:
  - 204: No Content: Page removed
  - 404: ErrNotFound: Unknown page
*/
func (handler *Handler) deletePage(writer http.ResponseWriter, request *http.Request) {
	pageID, err := requestutil.ID(request, FieldPageID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.chapterService.DeletePage(request.Context(), pageID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
