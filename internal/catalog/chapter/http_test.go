// Copyright (c) 2026 Mangabay. All rights reserved.

package chapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranquochuy/mangabay/internal/platform/ctxutil"
	"github.com/tranquochuy/mangabay/internal/platform/sec"
)

func TestHandler_Read_RequiresSession(t *testing.T) {
	service, _, history, _ := newTestService(t)
	addChapter(t, service, 1, 1)

	handler := NewHandler(service, 1<<20)
	routes := handler.Routes()

	request := httptest.NewRequest(http.MethodGet, "/1/1", nil)
	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, history.records)
}

func TestHandler_Read_RecordsHistoryForSession(t *testing.T) {
	service, _, history, _ := newTestService(t)
	addChapter(t, service, 1, 1)

	handler := NewHandler(service, 1<<20)
	routes := handler.Routes()

	claims := &sec.AuthClaims{UserID: 7, Username: "reader", Role: sec.RoleUser}
	request := httptest.NewRequest(http.MethodGet, "/1/1", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, history.records, 1)
	assert.Equal(t, int64(7), history.records[0][0])
}
