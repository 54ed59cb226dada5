package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/srgjo27/railway_reservation/internal/platform/apperror"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as an AppError body. Internal errors are logged
// with their cause and reported to the client without it.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr := apperror.As(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error(appErr.Message, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)
	_, _ = w.Write(appErr.ToJSON())
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.InvalidInput("request body is empty")
		}
		return apperror.InvalidInput("invalid json body")
	}
	return nil
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
