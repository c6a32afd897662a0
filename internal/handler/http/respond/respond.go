// Package respond writes JSON responses and turns errors into safe client
// messages.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"newsdesk/internal/domain/entity"
)

// JSON writes v as JSON with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダー送信済みなのでログのみ
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes {"error": err.Error()} without any filtering. Use it only
// where the raw message is part of the contract.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// 4xx の場合にそのまま返してよいメッセージ
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must",
	"cannot be",
	"too long",
	"too large",
	"unauthorized",
	"forbidden",
	"rate limit",
}

// SafeError writes err for the client. Validation errors and messages that
// look user-facing are returned as is for 4xx codes; everything else, and
// every 5xx, becomes "internal server error" and is logged with secrets masked.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	if code < 500 && isSafe(err) {
		JSON(w, code, map[string]string{"error": err.Error()})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

func isSafe(err error) bool {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		return true
	}
	lower := strings.ToLower(err.Error())
	for _, s := range safeFragments {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// StatusFor maps domain errors onto HTTP status codes. Handlers check their
// own use-case errors first and fall back to this.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidationFailed), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
