package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/aml-lists-api/internal/middleware"
	"github.com/sjperalta/aml-lists-api/internal/services"
)

type ImportHandler struct {
	importService *services.ImportService
}

func NewImportHandler(importService *services.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// BlackList parses an uploaded file into staging rows. Nothing is written to
// the lists; the maker sends the selected rows to /transactions/batch.
// @Summary Import black-list file
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true ".txt or .xlsx file"
// @Param tx_type formData string false "INSERT or DELETE" default(INSERT)
// @Param origin_source formData string true "Origin source"
// @Security BearerAuth
// @Router /imports/black-list [post]
func (h *ImportHandler) BlackList(c *gin.Context) {
	var opts services.ImportOptions
	if err := c.ShouldBind(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	header, data, err := readUpload(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.importService.ParseBlackListFile(c.Request.Context(), middleware.GetActor(c), opts, header.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Archive downloads an upload archived by a previous import
// @Summary Download archived import
// @Tags Imports
// @Produce octet-stream
// @Param path query string true "archive_path returned by the import"
// @Security BearerAuth
// @Router /imports/archive [get]
func (h *ImportHandler) Archive(c *gin.Context) {
	data, err := h.importService.Archived(c.Request.Context(), c.Query("path"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(c.Query("path"))))
	c.Data(http.StatusOK, "application/octet-stream", data)
}
