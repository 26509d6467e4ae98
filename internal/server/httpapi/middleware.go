package httpapi

import (
	"net/http"
	"strings"
)

// bearerToken extracts the token from the Authorization header. An empty
// string means the header was missing or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// authorized rejects requests without a valid bearer token. The token is
// verified against the account store, so a token for a deleted account no
// longer grants access.
func (s *Server) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.respondDetail(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if _, err := s.accounts.GetProfile(r.Context(), token); err != nil {
			s.respondError(w, r, err)
			return
		}
		next(w, r)
	}
}

// corsMiddleware answers preflight requests and marks responses as
// cross-origin readable. The API serves browser clients on other origins.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
