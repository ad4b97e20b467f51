package response_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rango/core/response"
	"github.com/dmitrymomot/rango/core/router"
)

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		status   int
		expected int
	}{
		{name: "ok", content: "Hello, World!", status: http.StatusOK, expected: http.StatusOK},
		{name: "empty", content: "", status: http.StatusOK, expected: http.StatusOK},
		{name: "custom status", content: "created", status: http.StatusCreated, expected: http.StatusCreated},
		{name: "zero status defaults to ok", content: "x", status: 0, expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			err := response.StringWithStatus(tt.content, tt.status)(w, req)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, w.Code)
			assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.content, w.Body.String())
		})
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes value", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		require.NoError(t, response.JSON(map[string]string{"status": "ok"})(w, req))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("renders component", func(t *testing.T) {
		t.Parallel()
		component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<h1>"+templ.EscapeString("<rango>")+"</h1>")
			return err
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		require.NoError(t, response.Templ(component)(w, req))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<h1>&lt;rango&gt;</h1>", w.Body.String())
	})

	t.Run("render error is returned", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return boom
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		err := response.TemplWithStatus(component, http.StatusNotFound)(w, req)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("nil component", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, response.Templ(nil))
	})
}

func TestNoStore(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	require.NoError(t, response.NoStore(response.String("visits: 3"))(w, req))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "visits: 3", w.Body.String())
	assert.Nil(t, response.NoStore(nil))
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	ctx := router.NewContext(w, req)

	response.ErrorHandler(ctx, fmt.Errorf("tracker: %w", response.ErrBadRequest.WithMessage("malformed visit cookie")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "malformed visit cookie", w.Body.String())
}

type statusErr struct{ code int }

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e statusErr) StatusCode() int { return e.code }

func TestToHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "http error passes through",
			err:    response.ErrBadRequest,
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
		{
			name:   "wrapped http error",
			err:    fmt.Errorf("parse: %w", response.ErrBadRequest.WithMessage("bad cookie")),
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
		{
			name:   "status code interface",
			err:    statusErr{code: http.StatusServiceUnavailable},
			status: http.StatusServiceUnavailable,
			code:   "service_unavailable",
		},
		{
			name:   "unknown status code",
			err:    statusErr{code: 499},
			status: http.StatusInternalServerError,
			code:   "internal_server_error",
		},
		{
			name:   "plain error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "internal_server_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			httpErr := response.ToHTTPError(tt.err)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestHTTPError_JSON(t *testing.T) {
	t.Parallel()

	httpErr := response.ErrNotFound.WithMessage("category missing").WithDetails(map[string]any{"slug": "x"})

	data, err := json.Marshal(httpErr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"not_found","message":"category missing","details":{"slug":"x"}}`, string(data))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode())
}
