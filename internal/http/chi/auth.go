package chi

import (
	"crypto/subtle"
	"net/http"

	"github.com/marcelsud/bookshelf-api/apperr"
)

const apiKeyHeader = "api-key"

// requireAPIKey rejects every request whose api-key header does not match key
func (a *api) requireAPIKey(key string) func(http.Handler) http.Handler {
	expected := []byte(key)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(apiKeyHeader))
			if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				a.renderError(w, r, apperr.NewUnauthorized("Invalid or missing API key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
