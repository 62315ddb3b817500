package httputil

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
)

// UserIDParam reads a user id path parameter. A malformed id cannot name an
// existing user, so it is reported as not found.
func UserIDParam(r *http.Request, name string) (id.UserID, error) {
	userID, err := id.ParseUserID(chi.URLParam(r, name))
	if err != nil {
		return id.UserID{}, dErrors.New(dErrors.CodeNotFound, "User not found")
	}
	return userID, nil
}
