package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/employee-records/internal/domain"
	"github.com/employee-records/internal/dto"
	"github.com/employee-records/internal/photo"
	"github.com/employee-records/internal/service"
	"github.com/employee-records/internal/validation"
)

const multipartMemory = 8 << 20

func (h *EmployeeHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.toDraftResponse(h.draft.Snapshot()))
}

func (h *EmployeeHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.draft.UpdateFields(service.FieldsPatch{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		NationalID:    req.NationalID,
		DateOfBirth:   req.DateOfBirth,
		Address:       req.Address,
		Qualification: req.Qualification,
		Religion:      req.Religion,
		Experience:    req.Experience,
		LastWorkplace: req.LastWorkplace,
		Salary:        req.Salary,
	})

	h.respondJSON(w, http.StatusOK, h.toDraftResponse(h.draft.Snapshot()))
}

func (h *EmployeeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.draft.Commit(r.Context())
	if errors.Is(err, domain.ErrValidationFailed) {
		h.respondJSON(w, http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Error:  "validation error",
			Fields: toFieldErrors(result.Violations),
		})
		return
	}
	if err != nil {
		// при ErrPersistFailed запись уже в памяти, но на диск не попала
		h.handleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	h.respondJSON(w, status, dto.CommitResponse{
		Created:  result.Created,
		Index:    result.Index,
		Employee: h.toEmployeeResponse(result.Index, result.Employee),
	})
}

func (h *EmployeeHandler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	h.draft.StartNew()
	h.respondJSON(w, http.StatusOK, h.toDraftResponse(h.draft.Snapshot()))
}

// SetPhoto принимает файл в поле multipart "photo" или готовый data URL в JSON
func (h *EmployeeHandler) SetPhoto(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		var req dto.SetPhotoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if err := h.validator.Struct(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
			return
		}

		ticket := h.draft.BeginPhotoRead()
		data, readErr := photo.EncodeDataURL(req.DataURL, h.photoOpts)
		h.finishPhotoRead(w, ticket, data, readErr, "data url")
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.respondBodyError(w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("photo")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "photo file is required", err.Error())
		return
	}
	defer file.Close()

	ticket := h.draft.BeginPhotoRead()
	data, readErr := photo.Encode(file, h.photoOpts)
	h.finishPhotoRead(w, ticket, data, readErr, header.Filename)
}

// finishPhotoRead применяет результат чтения фото и отвечает состоянием черновика
func (h *EmployeeHandler) finishPhotoRead(w http.ResponseWriter, ticket service.PhotoTicket, data string, readErr error, source string) {
	if err := h.draft.FinishPhotoRead(ticket, data, readErr); err != nil {
		h.logger.Warn("photo not applied",
			slog.String("source", source),
			slog.Any("error", err),
		)
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toDraftResponse(h.draft.Snapshot()))
}

func (h *EmployeeHandler) ClearPhoto(w http.ResponseWriter, r *http.Request) {
	h.draft.ClearPhoto()
	h.respondJSON(w, http.StatusOK, h.toDraftResponse(h.draft.Snapshot()))
}

// AddDocuments принимает JSON со списком документов или файлы в поле multipart
// "documents"; из файлов берутся только имя и размер.
func (h *EmployeeHandler) AddDocuments(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var docs []domain.Document
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			h.respondBodyError(w, err)
			return
		}
		defer r.MultipartForm.RemoveAll()

		for _, fh := range r.MultipartForm.File["documents"] {
			docs = append(docs, domain.Document{Name: fh.Filename, Size: fh.Size})
		}
		if len(docs) == 0 {
			h.respondError(w, http.StatusBadRequest, "at least one document is required", "")
			return
		}
	} else {
		var req dto.AddDocumentsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if err := h.validator.Struct(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
			return
		}
		for _, d := range req.Documents {
			docs = append(docs, domain.Document{Name: d.Name, Size: d.Size})
		}
	}

	h.draft.AddDocuments(docs)
	h.respondJSON(w, http.StatusOK, h.toDraftResponse(h.draft.Snapshot()))
}

func (h *EmployeeHandler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	index, err := h.extractIndex(r, "/draft/documents/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid document index", err.Error())
		return
	}

	if err := h.draft.RemoveStagedDocument(index); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toDraftResponse(h.draft.Snapshot()))
}

func (h *EmployeeHandler) toDraftResponse(d service.Draft) dto.DraftResponse {
	resp := dto.DraftResponse{
		Fields: dto.DraftFields{
			Name:          d.Fields.Name,
			Phone:         d.Fields.Phone,
			Email:         d.Fields.Email,
			NationalID:    d.Fields.NationalID,
			DateOfBirth:   d.Fields.DateOfBirth,
			Address:       d.Fields.Address,
			Qualification: d.Fields.Qualification,
			Religion:      d.Fields.Religion,
			Experience:    d.Fields.Experience,
			LastWorkplace: d.Fields.LastWorkplace,
			Salary:        d.Fields.Salary,
		},
		Photo:     d.Photo,
		Documents: toDocumentResponses(d.Documents),
		IsEditing: d.IsEditing(),
		Touched:   d.Touched,
		Errors:    toFieldErrors(d.Errors),
	}

	if d.IsEditing() {
		index := d.EditingIndex
		resp.EditingIndex = &index
	}
	if resp.Touched == nil {
		resp.Touched = []string{}
	}

	return resp
}

func toFieldErrors(v validation.Violations) map[string][]dto.FieldError {
	out := make(map[string][]dto.FieldError, len(v))
	for _, field := range v.Fields() {
		for _, rule := range v[field] {
			out[field] = append(out[field], dto.FieldError{
				Rule:    rule,
				Message: validation.Message(field, rule),
			})
		}
	}
	return out
}
