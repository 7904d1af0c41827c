package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/recipe-box/auth"
	"github.com/jrsteele09/recipe-box/sessions"
	"github.com/jrsteele09/recipe-box/users"
)

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"
	maxBodyBytes    = 1 << 20
)

// resultStatus is the HTTP status of a failed action result, by error code.
var resultStatus = map[auth.ErrorCode]int{
	auth.CodeValidation:         http.StatusBadRequest,
	auth.CodeAccountExists:      http.StatusConflict,
	auth.CodeInvalidCredentials: http.StatusUnauthorized,
	auth.CodeAccountDisabled:    http.StatusForbidden,
	auth.CodeTwoFactorInvalid:   http.StatusUnauthorized,
	auth.CodeLinkExpired:        http.StatusGone,
	auth.CodeCodeInvalid:        http.StatusBadRequest,
	auth.CodeWrongPassword:      http.StatusForbidden,
	auth.CodeAlreadyVerified:    http.StatusConflict,
	auth.CodeEmailInUse:         http.StatusConflict,
	auth.CodeUnauthenticated:    http.StatusUnauthorized,
	auth.CodeOAuthState:         http.StatusBadRequest,
	auth.CodeRateLimited:        http.StatusTooManyRequests,
	auth.CodeUnexpected:         http.StatusInternalServerError,
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeResult[T any](w http.ResponseWriter, res auth.Result[T]) {
	status := http.StatusOK
	if !res.Success {
		status = http.StatusInternalServerError
		if mapped, ok := resultStatus[res.Code]; ok {
			status = mapped
		}
	}
	if res.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfter))
	}
	writeJSON(w, status, res)
}

// decodeJSON reads the request body into dst. An empty body leaves dst untouched. On
// failure a validation result has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	zerolog.Ctx(r.Context()).Debug().Err(err).Msg("invalid request body")
	writeResult(w, auth.Result[auth.Empty]{Error: "Invalid request body", Code: auth.CodeValidation})
	return false
}

// storeAction adapts an auth action that reads input and writes the session to a JSON handler.
func storeAction[I any, O any](s *Server, act func(context.Context, sessions.Store, I) auth.Result[O]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in I
		if !decodeJSON(w, r, &in) {
			return
		}
		writeResult(w, act(r.Context(), s.cookieStore(w, r), in))
	}
}

// inputAction adapts an auth action that does not touch the session to a JSON handler.
func inputAction[I any, O any](act func(context.Context, I) auth.Result[O]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in I
		if !decodeJSON(w, r, &in) {
			return
		}
		writeResult(w, act(r.Context(), in))
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, s.auth.Logout(r.Context(), s.cookieStore(w, r)))
	}
}

func (s *Server) ResendVerificationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, s.auth.ResendVerification(r.Context(), s.cookieStore(w, r)))
	}
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, s.auth.RefreshSession(s.cookieStore(w, r)))
	}
}

// MeHandler returns the signed-in user, or 401.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.auth.Me(s.cookieStore(w, r))
		if user == nil {
			writeResult(w, auth.Result[*users.SessionUser]{Error: "You must be signed in", Code: auth.CodeUnauthenticated})
			return
		}
		writeResult(w, auth.Result[*users.SessionUser]{Success: true, Data: user})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
