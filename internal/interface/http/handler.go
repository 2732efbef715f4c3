package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/contenttools/internal/domain/faq"
	"github.com/yanqian/contenttools/internal/domain/tools"
	"github.com/yanqian/contenttools/internal/infra/csvio"
	"github.com/yanqian/contenttools/internal/infra/reports"
)

const uploadField = "csv_file"

// Handler wires the HTTP transport to domain services.
type Handler struct {
	faqSvc    faq.Service
	toolsSvc  tools.Service
	reports   reports.Storage
	maxUpload int64
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler. maxUploadMB caps CSV uploads.
func NewHandler(faqSvc faq.Service, toolsSvc tools.Service, reportStorage reports.Storage, maxUploadMB int64, logger *slog.Logger) *Handler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &Handler{
		faqSvc:    faqSvc,
		toolsSvc:  toolsSvc,
		reports:   reportStorage,
		maxUpload: maxUploadMB << 20,
		logger:    logger.With("component", "http.handler"),
	}
}

// DownloadReport streams a stored CSV report as an attachment.
func (h *Handler) DownloadReport(c *gin.Context) {
	key := c.Param("key")
	rc, err := h.reports.Open(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+reports.FileName(key)+`"`)
	c.DataFromReader(http.StatusOK, -1, reports.ContentType, rc, nil)
}

// readUpload parses the uploaded CSV file, keeping the header row.
func (h *Handler) readUpload(c *gin.Context) ([][]string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "invalid_request", "uploaded file is too large", err))
			return nil, false
		}
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "file_required", "csv_file is required", err))
		return nil, false
	}
	file, err := header.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "file_required", "uploaded file cannot be read", err))
		return nil, false
	}
	defer file.Close()

	records, err := csvio.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "uploaded file is not a valid CSV", err))
		return nil, false
	}
	if len(records) == 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "uploaded file is empty", nil))
		return nil, false
	}
	h.logger.Info("csv upload parsed", "path", c.Request.URL.Path, "file", header.Filename, "rows", len(records))
	return records, true
}

func contentIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "id must be a positive integer", err))
		return 0, false
	}
	return id, true
}
