package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const claimsContextKey contextKey = "auth-claims"

// Middleware memverifikasi Bearer token dan menaruh klaimnya di context.
type Middleware struct {
	jwtSecret string
}

func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{jwtSecret: jwtSecret}
}

// Authenticate menolak request tanpa access token yang valid.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeUnauthorized(w, "token tidak ditemukan")
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			writeUnauthorized(w, "format token tidak valid")
			return
		}

		claims, err := ParseToken(m.jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeUnauthorized(w, "token tidak valid")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole membatasi handler untuk role tertentu. Dipasang setelah
// Authenticate.
func (m *Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeUnauthorized(w, "token tidak ditemukan")
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Printf("🚫 Akses ditolak: %s (role %s) ke %s", claims.Nama, claims.Role, r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "role Anda tidak diizinkan mengakses resource ini",
			})
		})
	}
}

// ClaimsFromContext mengambil klaim yang ditaruh Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
