package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mjpark-lab/worklog/internal/attendance"
	"github.com/mjpark-lab/worklog/internal/ingest"
	"github.com/mjpark-lab/worklog/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Response is the standard JSON envelope.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Handlers contains all HTTP request handlers.
type Handlers struct {
	service      Service
	maxUploadLen int64
	logger       *zap.Logger
}

// NewHandlers creates a Handlers instance. maxUploadLen caps the
// accepted upload body in bytes.
func NewHandlers(service Service, maxUploadLen int64, logger *zap.Logger) *Handlers {
	return &Handlers{
		service:      service,
		maxUploadLen: maxUploadLen,
		logger:       logger,
	}
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"status": "healthy", "service": "worklog"},
	})
}

// CreateSession handles POST /api/v1/sessions.
func (h *Handlers) CreateSession(c *gin.Context) {
	session, err := h.service.CreateSession()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: session})
}

// Upload handles POST /api/v1/sessions/:id/uploads. The workbook
// arrives as the multipart "file" field.
func (h *Handlers) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "missing multipart field \"file\""})
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadLen {
		c.JSON(http.StatusRequestEntityTooLarge, Response{Success: false, Error: "uploaded file too large"})
		return
	}

	result, err := h.service.Upload(c.Param("id"), file)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// Report handles GET /api/v1/sessions/:id/report.
func (h *Handlers) Report(c *gin.Context) {
	report, err := h.service.Report(c.Param("id"), filterFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// Charts handles GET /api/v1/sessions/:id/charts.
func (h *Handlers) Charts(c *gin.Context) {
	charts, err := h.service.Charts(c.Param("id"), filterFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: charts})
}

// Export handles GET /api/v1/sessions/:id/export. The kind query
// picks the workbook: "summary" (default) or "yearly".
func (h *Handlers) Export(c *gin.Context) {
	kind := c.DefaultQuery("kind", ExportKindSummary)

	file, err := h.service.Export(c.Param("id"), kind, filterFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, file.Content)
}

func filterFromQuery(c *gin.Context) attendance.Filter {
	return attendance.Filter{
		Month:      c.Query("month"),
		Department: c.Query("department"),
	}
}

// fail maps pipeline errors onto HTTP statuses: schema problems are
// the client's request (400), broken rows are unprocessable content
// (422), unknown sessions are 404.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var validationErr *attendance.ValidationError
	var parseErr *attendance.ParseError

	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.As(err, &validationErr), errors.As(err, &parseErr):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, attendance.ErrEmptyBatch),
		errors.Is(err, ingest.ErrMissingColumn),
		errors.Is(err, ingest.ErrInvalidWorkbook),
		errors.Is(err, ingest.ErrNoSheets),
		errors.Is(err, ingest.ErrEmptySheet),
		errors.Is(err, ErrUnknownExportKind):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.Error(err))
	} else {
		h.logger.Warn("Request rejected", zap.Int("status", status), zap.Error(err))
	}

	c.JSON(status, Response{Success: false, Error: err.Error()})
}
