package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/jalmosquera/digitalletter/pkg/errors"
	"github.com/jalmosquera/digitalletter/pkg/httputil"
)

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionHeader identifies the menu session across requests. The frontend
// generates one per browser and sends it on every call.
const SessionHeader = "X-Session-ID"

// SessionFromHeader extracts the session id from the request header and
// stores it in context. Requests without one are rejected: every cart
// operation is meaningless without a session.
func SessionFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
		if sessionID == "" {
			httputil.WriteError(w, r, apperrors.Unauthorized("missing "+SessionHeader+" header"), slog.Default())
			return
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session id stored by SessionFromHeader.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// ContentTypeJSON rejects mutating requests whose body is not declared JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteError(w, r, apperrors.InvalidInput("Content-Type must be application/json"), slog.Default())
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
