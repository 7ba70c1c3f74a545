package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/aml-lists-api/internal/services"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// @Summary Export collection
// @Tags Exports
// @Produce octet-stream
// @Param collection path string true "black-list, white-list, customers, transactions or audit"
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Security BearerAuth
// @Router /exports/{collection} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	file, err := h.exportService.Export(c.Request.Context(), c.Param("collection"), c.DefaultQuery("format", services.FormatCSV))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
