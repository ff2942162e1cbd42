package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/user/messagely-go/httpx"
)

// TokenField is the name of the query parameter and JSON body field that may
// carry the session token.
const TokenField = "_token"

const maxTokenBodyBytes = 1 << 20

// Middleware rejects requests without a valid session token with 401 and
// stores the resolved Identity in the request context.
func Middleware(v Verifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := RequireAuthenticated(v, tokenFromRequest(r))
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(NewContextWithIdentity(r.Context(), id)))
		})
	}
}

// RequireCorrectUser allows the request only when the caller is the user named
// by the URL parameter param. It must run after Middleware.
func RequireCorrectUser(param string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := IdentityFromContext(r.Context())
			if err := RequireIsUser(id, chi.URLParam(r, param)); err != nil {
				httpx.WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// tokenFromRequest looks for a token in the Authorization header, then the
// _token query parameter, then the _token field of a JSON body.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if t := r.URL.Query().Get(TokenField); t != "" {
		return t
	}
	return tokenFromBody(r)
}

// tokenFromBody peeks at a JSON body and puts it back for the handler.
func tokenFromBody(r *http.Request) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		return ""
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, maxTokenBodyBytes))
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(buf))
	if err != nil {
		return ""
	}

	var payload struct {
		Token string `json:"_token"`
	}
	if err := json.Unmarshal(buf, &payload); err != nil {
		return ""
	}
	return payload.Token
}
