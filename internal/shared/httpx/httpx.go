package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"blog-service/internal/shared/apperr"
	"blog-service/internal/shared/jwt"

	"github.com/go-playground/validator/v10"
)

type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrap adapts an error-returning handler, mapping the error taxonomy to
// status codes in one place. Forbidden responses carry the flash message
// and the redirect target for the client to act on.
func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			WriteJSON(w, map[string]any{"error": "not found"}, http.StatusNotFound)
		case errors.Is(err, apperr.ErrUnauthorized):
			WriteJSON(w, map[string]any{"error": "unauthorized"}, http.StatusUnauthorized)
		default:
			if f, ok := apperr.IsForbidden(err); ok {
				WriteJSON(w, map[string]any{
					"error":    "forbidden",
					"message":  f.Msg,
					"redirect": f.Redirect,
				}, http.StatusForbidden)
				return
			}
			if v, ok := apperr.IsValidation(err); ok {
				WriteJSON(w, map[string]any{
					"error": "validation",
					"field": v.Field,
					"message": v.Msg,
				}, http.StatusUnprocessableEntity)
				return
			}
			var synErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &synErr) || errors.As(err, &typeErr) ||
				errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				WriteJSON(w, map[string]any{"error": "malformed request body"}, http.StatusBadRequest)
				return
			}
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				fields := make([]string, 0, len(verrs))
				for _, fe := range verrs {
					fields = append(fields, fe.Field())
				}
				WriteJSON(w, map[string]any{
					"error":  "validation",
					"fields": fields,
				}, http.StatusUnprocessableEntity)
				return
			}
			WriteJSON(w, map[string]any{"error": err.Error()}, http.StatusInternalServerError)
		}
	})
}

func Decode[T any](r *http.Request) (T, error) {
	var t T
	err := json.NewDecoder(r.Body).Decode(&t)
	return t, err
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Stable string keys so values survive even if the package is linked twice.
var (
	ctxUserIDKey   = "httpx.user_id"
	ctxUserNameKey = "httpx.user_name"
)

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			WriteJSON(w, map[string]any{"error": "unauthorized", "reason": "missing bearer"}, http.StatusUnauthorized)
			return
		}
		tok := strings.TrimSpace(h[7:])
		uid, name, err := jwt.Parse(tok)
		if err != nil || uid == 0 {
			WriteJSON(w, map[string]any{"error": "unauthorized", "reason": "bad token"}, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserIDKey, uid)
		ctx = context.WithValue(ctx, ctxUserNameKey, name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromCtx returns the authenticated user id and display name.
func UserFromCtx(r *http.Request) (uint, string, error) {
	uid, _ := r.Context().Value(ctxUserIDKey).(uint)
	name, _ := r.Context().Value(ctxUserNameKey).(string)
	if uid == 0 {
		return 0, "", apperr.ErrUnauthorized
	}
	return uid, name, nil
}

func QueryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
