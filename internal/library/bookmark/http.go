// Copyright (c) 2026 Mangabay. All rights reserved.

package bookmark

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tranquochuy/mangabay/internal/platform/constants"
	"github.com/tranquochuy/mangabay/internal/platform/middleware"
	requestutil "github.com/tranquochuy/mangabay/internal/platform/request"
	"github.com/tranquochuy/mangabay/internal/platform/respond"
	"github.com/tranquochuy/mangabay/internal/platform/validate"
	"github.com/tranquochuy/mangabay/pkg/pagination"
)

// # HTTP Handler

// Handler exposes bookmark endpoints. All routes require authentication.
type Handler struct {
	bookmarkService *Service
}

// NewHandler constructs the bookmark HTTP handler.
func NewHandler(bookmarkService *Service) *Handler {
	return &Handler{bookmarkService: bookmarkService}
}

// Routes mounts the bookmark endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/toggle/{mangaID}", handler.toggle)
	router.Put("/page", handler.upsertPage)
	router.Delete("/{bookmarkID}", handler.delete)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request, constants.EngagementPageSize)

	result, err := handler.bookmarkService.List(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result, result.Meta)
}

func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mangaID, err := requestutil.ID(request, FieldMangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookmarked, err := handler.bookmarkService.Toggle(request.Context(), userID, mangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		"bookmarked": bookmarked,
	})
}

type upsertPageRequest struct {
	MangaID    int64  `json:"manga_id"`
	ChapterID  int64  `json:"chapter_id"`
	PageNumber int    `json:"page_number"`
	Note       string `json:"note"`
}

func (handler *Handler) upsertPage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body upsertPageRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Positive("manga_id", float64(body.MangaID))
	validator.Positive(FieldChapterID, float64(body.ChapterID))
	validator.Positive(FieldPageNumber, float64(body.PageNumber))
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookmark, err := handler.bookmarkService.UpsertPage(request.Context(), userID, UpsertPageInput{
		MangaID:    body.MangaID,
		ChapterID:  body.ChapterID,
		PageNumber: body.PageNumber,
		Note:       body.Note,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, bookmark)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookmarkID, err := requestutil.ID(request, FieldBookmarkID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.bookmarkService.Delete(request.Context(), userID, bookmarkID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
