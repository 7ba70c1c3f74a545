package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/aml-lists-api/internal/middleware"
	"github.com/sjperalta/aml-lists-api/internal/services"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// @Summary List Customers
// @Tags Customers
// @Produce json
// @Param risk_level query string false "low, medium or high"
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) Index(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context(), c.Query("risk_level"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers, "total": len(customers)})
}

// @Summary Get Customer
// @Tags Customers
// @Produce json
// @Param customer_no path string true "Customer number"
// @Security BearerAuth
// @Router /customers/{customer_no} [get]
func (h *CustomerHandler) Show(c *gin.Context) {
	customer, err := h.customerService.FindByNo(c.Request.Context(), c.Param("customer_no"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// @Summary Import Customers
// @Tags Customers
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true ".csv, .txt or .xlsx file"
// @Param type formData string true "individual or organization"
// @Security BearerAuth
// @Router /customers/import [post]
func (h *CustomerHandler) Import(c *gin.Context) {
	header, data, err := readUpload(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.customerService.Import(c.Request.Context(), middleware.GetActor(c), c.PostForm("type"), header.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
