// Package http exposes the report pipeline over HTTP: survey workbook upload,
// an example report, health and Prometheus metrics endpoints.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/SethFaerber/tma-report/internal/errors"
	"github.com/SethFaerber/tma-report/internal/report"
	"github.com/SethFaerber/tma-report/internal/services"
)

// ReportHandler handles survey report requests.
type ReportHandler struct {
	service        *services.ReportService
	maxUploadBytes int64
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
}

// NewReportHandler creates a report handler.
func NewReportHandler(service *services.ReportService, maxUploadBytes int64, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
		errorHandler:   apierrors.NewErrorHandler(logger),
	}
}

// RegisterRoutes registers the report routes.
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Post("/", h.CreateReport)
		r.Get("/example", h.GetExampleReport)
	})
}

// CreateReport accepts a multipart upload with the survey workbook under the
// "workbook" field and responds with the generated report. The optional
// "format" query parameter selects json (default), csv or text output.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format, ok := h.requestedFormat(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrMissingUpload)
		return
	}

	file, header, err := r.FormFile("workbook")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrMissingUpload)
		return
	}
	defer file.Close()

	h.logger.InfoContext(ctx, "received survey workbook upload",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	rpt, err := h.service.GenerateFromWorkbook(ctx, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeReport(w, r, rpt, format, http.StatusCreated)
}

// GetExampleReport generates a report from the built-in example roster so
// clients can inspect the response shape without preparing a workbook. It
// honors the same "format" query parameter as CreateReport.
func (h *ReportHandler) GetExampleReport(w http.ResponseWriter, r *http.Request) {
	format, ok := h.requestedFormat(w, r)
	if !ok {
		return
	}

	rpt, err := h.service.GenerateExample(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeReport(w, r, rpt, format, http.StatusOK)
}

// requestedFormat resolves the "format" query parameter, responding with a
// 400 and returning false when the value is not one of json, csv or text.
func (h *ReportHandler) requestedFormat(w http.ResponseWriter, r *http.Request) (string, bool) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" && format != "text" {
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest, "INVALID_FORMAT", "Invalid format. Use: json, csv, or text"))
		return "", false
	}
	return format, true
}

func (h *ReportHandler) writeReport(w http.ResponseWriter, r *http.Request, rpt *report.Report, format string, jsonStatus int) {
	ctx := r.Context()

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="question-stats.csv"`)
		if err := report.WriteCSV(w, rpt); err != nil {
			h.logger.ErrorContext(ctx, "failed to write CSV report", slog.String("error", err.Error()))
		}
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := report.WriteText(w, rpt); err != nil {
			h.logger.ErrorContext(ctx, "failed to write text report", slog.String("error", err.Error()))
		}
	default:
		render.Status(r, jsonStatus)
		render.JSON(w, r, rpt)
	}
}
