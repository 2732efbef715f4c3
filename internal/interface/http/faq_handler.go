package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/contenttools/internal/domain/content"
	"github.com/yanqian/contenttools/internal/domain/faq"
)

type applyRequest struct {
	ContentID int64      `json:"postId" binding:"required"`
	Items     []faq.Item `json:"faq"`
}

// GenerateFAQ asks the provider for a FAQ and returns it for review.
func (h *Handler) GenerateFAQ(c *gin.Context) {
	var req faq.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.faqSvc.Generate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// ApplyFAQ stores a reviewed FAQ on a post.
func (h *Handler) ApplyFAQ(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	items, err := h.faqSvc.Apply(c.Request.Context(), req.ContentID, req.Items)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"postId": req.ContentID, "faq": items})
}

// GetFAQ returns the stored FAQ of a post.
func (h *Handler) GetFAQ(c *gin.Context) {
	id, ok := contentIDParam(c)
	if !ok {
		return
	}
	items, err := h.faqSvc.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"postId": id, "faq": items})
}

// DeleteFAQ removes the stored FAQ of a post.
func (h *Handler) DeleteFAQ(c *gin.Context) {
	id, ok := contentIDParam(c)
	if !ok {
		return
	}
	if err := h.faqSvc.Remove(c.Request.Context(), id); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// FAQStructuredData renders the stored FAQ as a schema.org FAQPage.
func (h *Handler) FAQStructuredData(c *gin.Context) {
	id, ok := contentIDParam(c)
	if !ok {
		return
	}
	data, err := h.faqSvc.StructuredData(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.Data(http.StatusOK, "application/ld+json; charset=utf-8", data)
}

// AnalyzeFAQ generates FAQs for an uploaded URL list and returns the report keys.
func (h *Handler) AnalyzeFAQ(c *gin.Context) {
	records, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.faqSvc.AnalyzeURLs(c.Request.Context(), urlColumn(records))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"processed":     result.Processed,
		"succeeded":     len(result.Succeeded),
		"failed":        len(result.Failed),
		"successReport": result.SuccessReport,
		"errorReport":   result.ErrorReport,
		"failures":      result.Failed,
		"tokenUsage":    result.TokenUsage,
	})
}

// ApplyReviewedFAQ stores every FAQ of an uploaded review file.
func (h *Handler) ApplyReviewedFAQ(c *gin.Context) {
	records, ok := h.readUpload(c)
	if !ok {
		return
	}
	report, err := h.faqSvc.ApplyReviewed(c.Request.Context(), records)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, report)
}

// urlColumn returns the first column of every row, dropping a leading header row.
func urlColumn(records [][]string) []string {
	urls := make([]string, 0, len(records))
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		if i == 0 && !content.ValidURL(record[0]) {
			continue
		}
		urls = append(urls, record[0])
	}
	return urls
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
