package rango

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/rango/app/rango/views"
	"github.com/dmitrymomot/rango/core/handler"
	"github.com/dmitrymomot/rango/core/response"
	"github.com/dmitrymomot/rango/internal/catalog"
	"github.com/dmitrymomot/rango/internal/visit"
)

// index updates the visit state, runs the identity handshake and renders the home page.
func (a *App) index(ctx *Context) handler.Response {
	sess := ctx.Session()
	data := sess.Data

	state, err := a.tracker.Update(visit.CookiesFromRequest(ctx.Request()), data.visitState())
	if err != nil {
		if errors.Is(err, visit.ErrInvalidCookieFormat) {
			return response.Error(response.ErrBadRequest.WithError(err))
		}
		return response.Error(err)
	}
	data.applyVisit(state)

	if a.identity != nil {
		hs := a.identity.Handshake(ctx)
		if id, ok := hs.ClientID.Get(); ok {
			data.ClientID = id
		}
		if token, ok := hs.AuthToken.Get(); ok {
			data.AuthToken = token
		}
	}

	ctx.SaveSession(sess, data)

	cats, err := a.catalog.TopCategories(ctx, a.config.TopN)
	if err != nil {
		return response.Error(err)
	}
	pages, err := a.catalog.TopPages(ctx, a.config.TopN)
	if err != nil {
		return response.Error(err)
	}

	return response.NoStore(response.Templ(views.Index(views.IndexData{
		Categories: cats,
		Pages:      pages,
		Visits:     data.Visits,
	})))
}

func (a *App) about(ctx *Context) handler.Response {
	return response.NoStore(response.Templ(views.About(ctx.Session().Data.Visits)))
}

func (a *App) showCategory(ctx *Context) handler.Response {
	cat, err := a.catalog.CategoryBySlug(ctx, ctx.Param("slug"))
	if errors.Is(err, catalog.ErrNotFound) {
		return response.TemplWithStatus(views.Category(views.CategoryData{}), http.StatusNotFound)
	}
	if err != nil {
		return response.Error(err)
	}

	pages, err := a.catalog.PagesByCategory(ctx, cat.ID)
	if err != nil {
		return response.Error(err)
	}

	return response.Templ(views.Category(views.CategoryData{
		Category: &cat,
		Pages:    pages,
	}))
}
