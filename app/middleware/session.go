package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/auth"
)

// Session resolves the app_session_id cookie into an identity on the request context.
// An invalid or expired cookie is cleared and the request continues anonymously.
func Session(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := sessions.FromRequest(r)
			if err != nil {
				log.Printf("⚠️ Session: Dropping invalid session cookie: %v", err)
				sessions.ClearCookie(w)
				identity = nil
			}
			if identity != nil {
				r = r.WithContext(auth.WithIdentity(r.Context(), identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}
