package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) model.APIResponse {
	t.Helper()
	var body model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteError_APIError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apierror.New("ALREADY_EXISTS", "username already taken", "username", http.StatusConflict))

	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decodeResponse(t, rec)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "ALREADY_EXISTS", body.Error.Code)
	assert.Equal(t, "username", body.Error.Details)
}

func TestWriteError_Sentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{model.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{model.ErrProductNotFound, http.StatusNotFound, "NOT_FOUND"},
		{model.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{model.ErrInvalidToken, http.StatusForbidden, "FORBIDDEN"},
		{model.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{model.ErrUserAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{model.ErrInvalidInput, http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			body := decodeResponse(t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.code, body.Error.Code)
		})
	}
}

func TestWriteError_UnknownErrorIsOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeResponse(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	// Internals must not leak to the client.
	assert.NotContains(t, body.Error.Message, "connection refused")
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, http.StatusCreated, map[string]string{"hello": "world"}, &model.Meta{Page: 1, Limit: 20, Total: 40, TotalPages: 2})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 2, body.Meta.TotalPages)
}

func requestWithParam(name, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestPathID(t *testing.T) {
	t.Run("numeric id", func(t *testing.T) {
		id, err := pathID(requestWithParam("id", "42"), "id")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	for _, raw := range []string{"abc", "", "0", "-3", "4.5"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := pathID(requestWithParam("id", raw), "id")
			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
		})
	}
}
