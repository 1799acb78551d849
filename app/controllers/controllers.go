// Package controllers holds the HTTP handlers. Controllers stay thin: bind
// and validate the input, call one service method, translate the error.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/app/services"
	"github.com/aurigalabs/storefront/pkg/response"
)

// objectID parses the named chi URL parameter as a Mongo ObjectID.
func objectID(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, name))
}

// parseHex parses an ObjectID carried in a request body.
func parseHex(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}

// pageParams reads ?page= and ?limit= with the repository defaults.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// fail translates service and repository errors into the right status code.
func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, repositories.ErrDuplicate):
		response.Error(w, http.StatusConflict, "Resource already exists")
	case errors.Is(err, services.ErrNotOwner):
		response.Forbidden(w)
	case errors.Is(err, services.ErrRatingOutOfRange),
		errors.Is(err, services.ErrBadAddressType),
		errors.Is(err, services.ErrEmptyOrder):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrSettingLocked):
		response.Error(w, http.StatusConflict, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
