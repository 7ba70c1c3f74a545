package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/aml-lists-api/internal/services"
)

type ScreeningHandler struct {
	screeningService *services.ScreeningService
}

func NewScreeningHandler(screeningService *services.ScreeningService) *ScreeningHandler {
	return &ScreeningHandler{screeningService: screeningService}
}

// @Summary Find coincidences
// @Description Screens a customer number and/or name against the active black list
// @Tags Screening
// @Produce json
// @Param customer_no query string false "Customer number"
// @Param name query string false "Name"
// @Security BearerAuth
// @Router /screening/coincidences [get]
func (h *ScreeningHandler) Coincidences(c *gin.Context) {
	customerNo, name := c.Query("customer_no"), c.Query("name")
	if customerNo == "" && name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_no or name is required"})
		return
	}

	found, err := h.screeningService.FindCoincidences(c.Request.Context(), customerNo, name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coincidences": found})
}
