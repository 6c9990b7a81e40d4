// Copyright (c) 2026 Mangabay. All rights reserved.

package history

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

// Handler exposes reading-history endpoints. All routes require authentication.
type Handler struct {
	historyService *Service
}

// NewHandler constructs the history HTTP handler.
func NewHandler(historyService *Service) *Handler {
	return &Handler{historyService: historyService}
}

// Routes mounts the history endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Delete("/", handler.clear)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request, constants.EngagementPageSize)

	result, err := handler.historyService.List(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result, result.Meta)
}

func (handler *Handler) clear(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.historyService.Clear(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
