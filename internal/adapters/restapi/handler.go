package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/repository"
	"transfer_tracker/internal/logger"
	"transfer_tracker/pkg/transferparser"
)

const maxRequestBodyBytes = 1 << 16

// HTTPHandler handles incoming HTTP requests for the transfer API.
type HTTPHandler struct {
	service transferparser.Parser
	logger  logger.AppLogger
}

// NewHTTPHandler creates a new handler with the necessary service dependency.
func NewHTTPHandler(service transferparser.Parser, appLogger logger.AppLogger) (*HTTPHandler, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil for HTTPHandler")
	}
	if appLogger == nil {
		return nil, errors.New("logger cannot be nil for HTTPHandler")
	}
	return &HTTPHandler{
		service: service,
		logger:  appLogger,
	}, nil
}

// HandleHealth handles requests to GET /health
func (h *HTTPHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"}, h.logger)
}

// HandleGetCurrentBlock handles requests to GET /current_block
func (h *HTTPHandler) HandleGetCurrentBlock(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.logger.With("method", r.Method, "path", r.URL.Path)

	blockNum, err := h.service.GetCurrentBlock(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrScanStateNotInitialized) {
			respondWithError(w, http.StatusServiceUnavailable, "Scanner has not started yet", requestLogger)
			return
		}
		requestLogger.Error("Error getting current block", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve current block", requestLogger)
		return
	}

	respondWithJSON(w, http.StatusOK, GetCurrentBlockResponse{BlockNumber: blockNum}, requestLogger)
}

// HandleSubscribe handles requests to POST /subscribe
func (h *HTTPHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.logger.With("method", r.Method, "path", r.URL.Path)

	var req transferparser.SubscribeRequestDTO
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), requestLogger)
		return
	}

	if req.Address == "" {
		respondWithError(w, http.StatusBadRequest, "Address cannot be empty", requestLogger)
		return
	}

	requestLogger = requestLogger.With("address", req.Address)

	if err := h.service.Subscribe(r.Context(), req.Address); err != nil {
		h.respondWithServiceError(w, err, "Failed to subscribe address", requestLogger)
		return
	}

	requestLogger.Info("Address subscribed successfully")
	respondWithJSON(w, http.StatusOK, SubscribeResponse{
		Success: true,
		Message: "Address subscribed successfully",
	}, requestLogger)
}

// HandleGetTransfers handles requests to GET /transfers/{address}
func (h *HTTPHandler) HandleGetTransfers(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	requestLogger := h.logger.With("method", r.Method, "path", r.URL.Path, "address", address)

	transfers, err := h.service.GetTransfers(r.Context(), address)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to retrieve transfers", requestLogger)
		return
	}

	requestLogger.Debug("Retrieved transfers", "count", len(transfers))
	respondWithJSON(w, http.StatusOK, transfers, requestLogger)
}

// HandleGetConfirmation handles requests to GET /confirmations/{hash}
func (h *HTTPHandler) HandleGetConfirmation(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	requestLogger := h.logger.With("method", r.Method, "path", r.URL.Path, "txHash", hash)

	confirmation, err := h.service.GetConfirmation(r.Context(), hash)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to retrieve confirmation", requestLogger)
		return
	}

	respondWithJSON(w, http.StatusOK, confirmation, requestLogger)
}

// respondWithServiceError maps domain errors to status codes. Unknown errors become 500 with a generic message.
func (h *HTTPHandler) respondWithServiceError(w http.ResponseWriter, err error, fallback string, l logger.AppLogger) {
	switch {
	case errors.Is(err, domain.ErrInvalidAddressFormat), errors.Is(err, domain.ErrInvalidTransactionHashFormat):
		respondWithError(w, http.StatusBadRequest, err.Error(), l)
	case errors.Is(err, domain.ErrTransferNotFound):
		respondWithError(w, http.StatusNotFound, "Transfer not found", l)
	default:
		l.Error(fallback, "error", err)
		respondWithError(w, http.StatusInternalServerError, fallback, l)
	}
}

// respondWithError logs a warning and sends a JSON error response with the given code and message.
func respondWithError(w http.ResponseWriter, code int, message string, l logger.AppLogger) {
	l.Warn("Responding with error", "http_code", code, "message", message)
	respondWithJSON(w, code, ErrorResponse{Error: message}, l)
}

// respondWithJSON marshals the given payload into JSON and writes it to the response writer.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, l logger.AppLogger) {
	response, err := json.Marshal(payload)
	if err != nil {
		l.Error("Error marshaling JSON response",
			"error", err.Error(),
			"payload_type", fmt.Sprintf("%T", payload),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if n, writeErr := w.Write(response); writeErr != nil {
		l.Error("Error writing response body", "error", writeErr, "bytes_written", n)
	}
}
