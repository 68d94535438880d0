package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/employee-records/internal/domain"
	"github.com/employee-records/internal/dto"
	"github.com/employee-records/internal/export"
	"github.com/employee-records/internal/format"
	"github.com/employee-records/internal/photo"
	"github.com/employee-records/internal/service"
	"github.com/employee-records/internal/validation"
	"github.com/go-playground/validator/v10"
)

// RecordReader - то, что обработчику нужно от хранилища записей
type RecordReader interface {
	Records() []domain.Employee
	Pending() bool
	Flush(ctx context.Context) error
}

type EmployeeHandler struct {
	records   RecordReader
	draft     service.DraftService
	validator *validator.Validate
	photoOpts photo.Options
	logger    *slog.Logger
}

func NewEmployeeHandler(
	records RecordReader,
	draft service.DraftService,
	photoOpts photo.Options,
	logger *slog.Logger,
) *EmployeeHandler {
	v := validator.New()
	validation.RegisterValidators(v)

	return &EmployeeHandler{
		records:   records,
		draft:     draft,
		validator: v,
		photoOpts: photoOpts,
		logger:    logger,
	}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.records.Records()

	resp := dto.EmployeeListResponse{
		Employees: make([]dto.EmployeeResponse, len(list)),
		Count:     len(list),
		Pending:   h.records.Pending(),
	}
	for i, emp := range list {
		resp.Employees[i] = h.toEmployeeResponse(i, emp)
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, h.records.Records()); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write export", slog.Any("error", err))
	}
}

func (h *EmployeeHandler) Flush(w http.ResponseWriter, r *http.Request) {
	if err := h.records.Flush(r.Context()); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EmployeeHandler) StartEdit(w http.ResponseWriter, r *http.Request) {
	index, err := h.extractIndex(r, "/employees/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee index", err.Error())
		return
	}

	if err := h.draft.StartEdit(index); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toDraftResponse(h.draft.Snapshot()))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	index, err := h.extractIndex(r, "/employees/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee index", err.Error())
		return
	}

	if err := h.draft.Delete(r.Context(), index); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// extractIndex читает неотрицательный индекс сразу после префикса пути
func (h *EmployeeHandler) extractIndex(r *http.Request, prefix string) (int, error) {
	path := strings.TrimPrefix(r.URL.Path, prefix)
	path = strings.Trim(path, "/")

	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		return 0, errors.New("index is required")
	}

	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	if index < 0 {
		return 0, fmt.Errorf("index must not be negative: %d", index)
	}
	return index, nil
}

func (h *EmployeeHandler) toEmployeeResponse(index int, emp domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		Index:         index,
		Initials:      format.Initials(emp.Name),
		Name:          emp.Name,
		Phone:         emp.Phone,
		Email:         emp.Email,
		NationalID:    emp.NationalID,
		DateOfBirth:   emp.DateOfBirth,
		Address:       emp.Address,
		Qualification: emp.Qualification,
		Religion:      emp.Religion,
		Experience:    emp.Experience,
		LastWorkplace: emp.LastWorkplace,
		Salary:        emp.Salary,
		Photo:         emp.Photo,
		Documents:     toDocumentResponses(emp.Documents),
	}
}

func toDocumentResponses(docs []domain.Document) []dto.DocumentResponse {
	out := make([]dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		out[i] = dto.DocumentResponse{
			Name:      doc.Name,
			Size:      doc.Size,
			SizeLabel: format.Bytes(doc.Size),
		}
	}
	return out
}
