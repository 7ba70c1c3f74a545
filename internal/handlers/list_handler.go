package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/sjperalta/aml-lists-api/internal/services"
)

type ListHandler struct {
	listService *services.ListService
}

func NewListHandler(listService *services.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// @Summary Black List
// @Description Active entries by default, status=all includes deleted ones
// @Tags Lists
// @Produce json
// @Param status query string false "active or all" default(active)
// @Security BearerAuth
// @Router /black-list [get]
func (h *ListHandler) BlackList(c *gin.Context) {
	h.index(c, models.ListTypeBlack)
}

// @Summary White List
// @Tags Lists
// @Produce json
// @Param status query string false "active or all" default(active)
// @Security BearerAuth
// @Router /white-list [get]
func (h *ListHandler) WhiteList(c *gin.Context) {
	h.index(c, models.ListTypeWhite)
}

func (h *ListHandler) index(c *gin.Context, listType string) {
	var (
		entries []models.ListEntry
		err     error
	)
	switch c.DefaultQuery("status", "active") {
	case "active":
		entries, err = h.listService.ListActive(c.Request.Context(), listType)
	case "all":
		entries, err = h.listService.ListAll(c.Request.Context(), listType)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be active or all"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"list_type": listType,
		"entries":   entries,
		"total":     len(entries),
	})
}
