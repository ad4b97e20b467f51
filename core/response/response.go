package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/rango/core/handler"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// Render writes resp to the context. A failing response falls back to a bare 500.
func Render(ctx handler.Context, resp handler.Response) {
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
	}
}

// String writes content as text/plain with 200 OK.
func String(content string) handler.Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus writes content as text/plain. A zero status means 200.
func StringWithStatus(content string, status int) handler.Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		writeHeader(w, contentTypeText, status)
		if content == "" {
			return nil
		}
		_, err := w.Write([]byte(content))
		return err
	}
}

// JSON encodes v with 200 OK.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus encodes v straight into the response writer. A zero status means 200.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		writeHeader(w, contentTypeJSON, status)
		return json.NewEncoder(w).Encode(v)
	}
}

// Templ renders a templ component with 200 OK.
func Templ(component templ.Component) handler.Response {
	return TemplWithStatus(component, http.StatusOK)
}

// TemplWithStatus renders component with the request context. A nil component yields a nil response.
func TemplWithStatus(component templ.Component, status int) handler.Response {
	if component == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		writeHeader(w, contentTypeHTML, status)
		if err := component.Render(r.Context(), w); err != nil {
			return fmt.Errorf("render templ component: %w", err)
		}
		return nil
	}
}

// Error hands err to the router's error handler.
func Error(err error) handler.Response {
	return func(http.ResponseWriter, *http.Request) error {
		return err
	}
}

// NoStore marks resp as uncacheable. Use it for pages that carry per-visitor state.
func NoStore(resp handler.Response) handler.Response {
	if resp == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Cache-Control", "no-store")
		return resp(w, r)
	}
}

func writeHeader(w http.ResponseWriter, contentType string, status int) {
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
}
