package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/contenttools/internal/domain/tools"
	"github.com/yanqian/contenttools/pkg/util"
)

type toolRun func(ctx context.Context, records [][]string) (tools.Report, error)

// UpdateAltText applies an uploaded image URL / alt text file.
func (h *Handler) UpdateAltText(c *gin.Context) {
	h.runTool(c, h.toolsSvc.UpdateAltText)
}

// UpdateSERP applies an uploaded URL / title / description file.
func (h *Handler) UpdateSERP(c *gin.Context) {
	h.runTool(c, h.toolsSvc.UpdateSERP)
}

// Recategorize applies an uploaded URL / categories file.
func (h *Handler) Recategorize(c *gin.Context) {
	h.runTool(c, h.toolsSvc.Recategorize)
}

// TrashPosts trashes every post of an uploaded URL list.
func (h *Handler) TrashPosts(c *gin.Context) {
	h.runTool(c, h.toolsSvc.Trash)
}

// ExportPosts downloads published posts as CSV.
func (h *Handler) ExportPosts(c *gin.Context) {
	var fields []string
	if raw := c.Query("fields"); raw != "" {
		fields = strings.Split(raw, ",")
	}
	data, err := h.toolsSvc.Export(c.Request.Context(), fields)
	if err != nil {
		abortWithError(c, asHTTPError(err))
		return
	}
	filename := "posts-export-" + util.FileStamp(util.NowUTC()) + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *Handler) runTool(c *gin.Context, run toolRun) {
	records, ok := h.readUpload(c)
	if !ok {
		return
	}
	report, err := run(c.Request.Context(), records)
	if err != nil {
		abortWithError(c, asHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, report)
}
