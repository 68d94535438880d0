package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/employee-records/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	handler      *EmployeeHandler
	maxBodyBytes int64
}

// NewRouter создаёт новый роутер
func NewRouter(handler *EmployeeHandler, maxBodyBytes int64, logger *slog.Logger) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		logger:       logger,
		handler:      handler,
		maxBodyBytes: maxBodyBytes,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("/employees", r.employeesRouter)
	r.mux.HandleFunc("/employees/", r.employeesRouter)
	r.mux.HandleFunc("/draft", r.draftRouter)
	r.mux.HandleFunc("/draft/", r.draftRouter)

	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	handler := middleware.ContentType(r.mux)
	handler = middleware.BodyLimit(r.maxBodyBytes)(handler)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// employeesRouter обрабатывает запросы к /employees
func (r *Router) employeesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/employees")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		r.allow(w, req, http.MethodGet, r.handler.List)
		return
	case "export":
		r.allow(w, req, http.MethodGet, r.handler.Export)
		return
	case "flush":
		r.allow(w, req, http.MethodPost, r.handler.Flush)
		return
	}

	// {index} или {index}/edit
	parts := strings.Split(path, "/")

	if len(parts) == 1 {
		r.allow(w, req, http.MethodDelete, r.handler.Delete)
		return
	}

	if len(parts) == 2 && parts[1] == "edit" {
		r.allow(w, req, http.MethodPost, r.handler.StartEdit)
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// draftRouter обрабатывает запросы к /draft
func (r *Router) draftRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/draft")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		switch req.Method {
		case http.MethodGet:
			r.handler.GetDraft(w, req)
		case http.MethodPatch:
			r.handler.UpdateDraft(w, req)
		default:
			methodNotAllowed(w)
		}
		return
	case "submit":
		r.allow(w, req, http.MethodPost, r.handler.Submit)
		return
	case "reset":
		r.allow(w, req, http.MethodPost, r.handler.ResetDraft)
		return
	case "photo":
		switch req.Method {
		case http.MethodPut:
			r.handler.SetPhoto(w, req)
		case http.MethodDelete:
			r.handler.ClearPhoto(w, req)
		default:
			methodNotAllowed(w)
		}
		return
	case "documents":
		r.allow(w, req, http.MethodPost, r.handler.AddDocuments)
		return
	}

	parts := strings.Split(path, "/")
	if len(parts) == 2 && parts[0] == "documents" {
		r.allow(w, req, http.MethodDelete, r.handler.RemoveDocument)
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

func (r *Router) allow(w http.ResponseWriter, req *http.Request, method string, fn http.HandlerFunc) {
	if req.Method != method {
		methodNotAllowed(w)
		return
	}
	fn(w, req)
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
}
