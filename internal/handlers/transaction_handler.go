package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/aml-lists-api/internal/middleware"
	"github.com/sjperalta/aml-lists-api/internal/services"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
}

func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// @Summary List Transactions
// @Description Makers see their own transactions, approvers see the pending queue
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Router /transactions [get]
func (h *TransactionHandler) Index(c *gin.Context) {
	txs, err := h.transactionService.Visible(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs, "total": len(txs)})
}

// @Summary Get Transaction
// @Tags Transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Show(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tx, err := h.transactionService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !tx.VisibleTo(middleware.GetActor(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// @Summary Create Transaction
// @Description Submits one change for approval
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body services.CreateTransactionInput true "Transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req services.CreateTransactionInput
	if err := BindNestedOrFlat(c, "transaction", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.transactionService.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// @Summary Send selected rows for approval
// @Description Creates one pending transaction per row, all or nothing
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body []services.CreateTransactionInput true "Selected rows"
// @Security BearerAuth
// @Router /transactions/batch [post]
func (h *TransactionHandler) CreateBatch(c *gin.Context) {
	var req []services.CreateTransactionInput
	if err := BindNestedOrFlat(c, "transactions", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txs, err := h.transactionService.CreateBatch(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Sent for approval",
		"transactions": txs,
		"total":        len(txs),
	})
}

// @Summary Approve Transaction
// @Tags Transactions
// @Param id path int true "Transaction ID"
// @Security BearerAuth
// @Router /transactions/{id}/approve [post]
func (h *TransactionHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tx, err := h.transactionService.Approve(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction " + tx.TxNo + " approved", "transaction": tx})
}

// @Summary Reject Transaction
// @Tags Transactions
// @Param id path int true "Transaction ID"
// @Security BearerAuth
// @Router /transactions/{id}/reject [post]
func (h *TransactionHandler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tx, err := h.transactionService.Reject(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction " + tx.TxNo + " rejected", "transaction": tx})
}
