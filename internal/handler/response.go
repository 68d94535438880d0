package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/employee-records/internal/domain"
	"github.com/employee-records/internal/dto"
)

func (h *EmployeeHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	case errors.Is(err, domain.ErrDocumentNotFound):
		h.respondError(w, http.StatusNotFound, "document not found", "")
	case errors.Is(err, domain.ErrPhotoTooLarge):
		h.respondError(w, http.StatusRequestEntityTooLarge, "photo is too large", "")
	case errors.Is(err, domain.ErrNotAnImage):
		h.respondError(w, http.StatusUnsupportedMediaType, "photo must be an image", "")
	case errors.Is(err, domain.ErrEmptyPhoto):
		h.respondError(w, http.StatusBadRequest, "photo is empty", "")
	case errors.Is(err, domain.ErrInvalidDataURL):
		h.respondError(w, http.StatusBadRequest, "photo must be a base64 data url", "")
	case errors.Is(err, domain.ErrStalePhotoRead):
		h.respondError(w, http.StatusConflict, "a newer photo was selected", "")
	case errors.Is(err, domain.ErrPersistFailed):
		h.logger.Warn("records not persisted", slog.Any("error", err))
		h.respondError(w, http.StatusServiceUnavailable, "records could not be saved, retry with POST /employees/flush", "")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// respondBodyError различает превышение лимита тела и прочие ошибки разбора
func (h *EmployeeHandler) respondBodyError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large", "")
		return
	}
	h.respondError(w, http.StatusBadRequest, "invalid multipart body", err.Error())
}

func (h *EmployeeHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *EmployeeHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
