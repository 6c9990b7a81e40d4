// Copyright (c) 2026 Mangabay. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tranquochuy/mangabay/internal/platform/constants"
	"github.com/tranquochuy/mangabay/internal/platform/middleware"
	requestutil "github.com/tranquochuy/mangabay/internal/platform/request"
	"github.com/tranquochuy/mangabay/internal/platform/respond"
	"github.com/tranquochuy/mangabay/pkg/pagination"
)

// # HTTP Handler

// Handler exposes comment endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs the comment HTTP handler.
func NewHandler(commentService *Service) *Handler {
	return &Handler{commentService: commentService}
}

// Routes mounts the public and member comment endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Reading a thread works without an account.
	router.Get("/by-chapter/{chapterID}", handler.listByChapter)

	router.Group(func(authenticated chi.Router) {
		authenticated.Use(middleware.RequireAuth)
		authenticated.Post("/by-chapter/{chapterID}", handler.add)
		authenticated.Put("/{commentID}", handler.edit)
		authenticated.Delete("/{commentID}", handler.delete)
	})

	return router
}

// AdminRoutes mounts the moderation endpoints.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Get("/", handler.moderation)
	router.Delete("/{commentID}", handler.delete)

	return router
}

func (handler *Handler) listByChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, FieldChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.commentService.ListByChapter(request.Context(), chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		"comments": views,
	})
}

type commentRequest struct {
	Body string `json:"body"`
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapterID, err := requestutil.ID(request, FieldChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body commentRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Add(request.Context(), userID, chapterID, body.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) edit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, FieldCommentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body commentRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Edit(request.Context(), userID, commentID, body.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, FieldCommentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commentService.Delete(request.Context(), claims, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) moderation(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request, constants.EngagementPageSize)
	search := request.URL.Query().Get("q")

	result, err := handler.commentService.Moderation(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result, result.Meta)
}
