package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/studyloop/studyloop/internal/domain"
	"github.com/studyloop/studyloop/internal/service"
)

// ownerHandler is a handler that runs on behalf of an authenticated owner.
type ownerHandler func(w http.ResponseWriter, r *http.Request, owner *domain.User)

// auth wraps a handler with bearer-token authentication. The resolved user
// becomes the owner scope for everything the handler touches.
func (a *API) auth(next ownerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		owner, err := a.Users.Authenticate(r.Context(), token)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		next(w, r, owner)
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing Authorization header: %w", service.ErrUnauthorized)
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", fmt.Errorf("malformed Authorization header: %w", service.ErrUnauthorized)
	}
	return token, nil
}
