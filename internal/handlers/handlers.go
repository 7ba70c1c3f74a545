package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/aml-lists-api/internal/jobs"
	"github.com/sjperalta/aml-lists-api/internal/services"
	"github.com/sjperalta/aml-lists-api/pkg/logger"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Dashboard   *DashboardHandler
	Customer    *CustomerHandler
	List        *ListHandler
	Screening   *ScreeningHandler
	Import      *ImportHandler
	Transaction *TransactionHandler
	Audit       *AuditHandler
	Export      *ExportHandler
	Admin       *AdminHandler
	Job         *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Auth:        NewAuthHandler(svcs.Auth),
		Dashboard:   NewDashboardHandler(svcs.Dashboard),
		Customer:    NewCustomerHandler(svcs.Customer),
		List:        NewListHandler(svcs.List),
		Screening:   NewScreeningHandler(svcs.Screening),
		Import:      NewImportHandler(svcs.Import),
		Transaction: NewTransactionHandler(svcs.Transaction),
		Audit:       NewAuditHandler(svcs.Audit),
		Export:      NewExportHandler(svcs.Export),
		Admin:       NewAdminHandler(svcs.Seed),
		Job:         NewJobHandler(svcs.Job),
	}
}

// userMessages replaces service errors with the wording shown to operators
var userMessages = []struct {
	err error
	msg string
}{
	{services.ErrOriginSourceRequired, "Please select Origin Source first"},
	{services.ErrNoRowsSelected, "No rows selected"},
}

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, jobs.ErrUnknownJob):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrUnsupportedFormat),
		errors.Is(err, services.ErrOriginSourceRequired),
		errors.Is(err, services.ErrNoRowsSelected):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": errorMessage(err)})
}

func errorMessage(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}
