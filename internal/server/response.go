package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/text/message"

	"github.com/bietkhonhungvandi212/fitsim/internal/locale"
	"github.com/bietkhonhungvandi212/fitsim/internal/logger"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

const (
	headerContentType = "Content-Type"
	applicationJson   = "application/json"

	kindRateLimited = "rate_limited"
	kindInternal    = "internal"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// writeJSON replies to the request with the given response and HTTP code.
func writeJSON(w http.ResponseWriter, response any, statusCode int, log *slog.Logger) {
	w.Header().Set(headerContentType, applicationJson)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Warn("failed to write JSON response", logger.Error(err))
	}
}

// writeError localizes err for the client and picks the status from its type.
func writeError(w http.ResponseWriter, r *http.Request, err error, log *slog.Logger) {
	p := printer(r)
	var simErr *util.SimulationError
	if !errors.As(err, &simErr) {
		log.ErrorContext(r.Context(), "request failed", logger.Error(err))
		writeJSON(w, errorResponse{Error: http.StatusText(http.StatusInternalServerError), Kind: kindInternal}, http.StatusInternalServerError, log)
		return
	}

	status := http.StatusBadRequest
	switch simErr.Type {
	case util.ErrTypeUnsupportedStrategy:
		status = http.StatusUnprocessableEntity
	case util.ErrTypeNotFound:
		status = http.StatusNotFound
	case util.ErrTypeBodyTooLarge:
		status = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, errorResponse{Error: locale.Alert(p, err), Kind: simErr.Type.String()}, status, log)
}

func writeAlert(w http.ResponseWriter, r *http.Request, key, kind string, status int, log *slog.Logger) {
	writeJSON(w, errorResponse{Error: printer(r).Sprintf(key), Kind: kind}, status, log)
}

func printer(r *http.Request) *message.Printer {
	return locale.Printer(r.Header.Get("Accept-Language"))
}
