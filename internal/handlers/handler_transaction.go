package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ratbook/ratbook_backend/internal/apperrors"
	"github.com/ratbook/ratbook_backend/internal/core/domain"
	portssvc "github.com/ratbook/ratbook_backend/internal/core/ports/services"
	"github.com/ratbook/ratbook_backend/internal/dto"
	"github.com/ratbook/ratbook_backend/internal/middleware"
	"github.com/ratbook/ratbook_backend/internal/platform/storage"
)

const dateLayout = "2006-01-02"

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	proofStore         *storage.ProofStore
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, ps *storage.ProofStore) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		proofStore:         ps,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, proofStore *storage.ProofStore) {
	h := newTransactionHandler(transactionService, proofStore)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Post a transaction
// @Description Posts a transaction with its journal lines from a multipart form. Purchase and sale lines update product quantities and average cost. An optional proof file is stored alongside.
// @Tags transactions
// @Accept mpfd
// @Produce json
// @Param date formData string true "Transaction date (YYYY-MM-DD)"
// @Param due_date formData string false "Due date (YYYY-MM-DD)"
// @Param description formData string true "Description"
// @Param type formData string true "Transaction type (Pembelian, Penjualan or Umum)"
// @Param lines_json formData string true "Journal lines as a JSON array"
// @Param inventory_json formData string false "Per-product purchase totals as a JSON array"
// @Param proof formData file false "Proof file"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to post transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var form dto.CreateTransactionForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn("Failed to bind transaction form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	date, err := time.Parse(dateLayout, form.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var dueDate *time.Time
	if form.DueDate != "" {
		d, err := time.Parse(dateLayout, form.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid due_date, expected YYYY-MM-DD"})
			return
		}
		dueDate = &d
	}

	var lines []dto.EntryLine
	if err := json.Unmarshal([]byte(form.LinesJSON), &lines); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid lines_json: " + err.Error()})
		return
	}

	var inventory []dto.InventoryHint
	if form.InventoryJSON != "" {
		if err := json.Unmarshal([]byte(form.InventoryJSON), &inventory); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid inventory_json: " + err.Error()})
			return
		}
	}

	proofFile := ""
	if file, err := c.FormFile("proof"); err == nil && file != nil {
		stored, err := h.proofStore.Save(file)
		if err != nil {
			if errors.Is(err, apperrors.ErrValidation) {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
				return
			}
			logger.Error("Failed to store proof file", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store proof file"})
			return
		}
		proofFile = stored
	}

	req := portssvc.CreateTransactionData{
		Date:        date,
		DueDate:     dueDate,
		Description: form.Description,
		Kind:        domain.TransactionKind(form.Kind),
		ProofFile:   proofFile,
		Lines:       lines,
		Inventory:   inventory,
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to post transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to post transaction"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves a date-filtered, newest-first page of transactions with their entries
// @Tags transactions
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	var start, end *time.Time
	if params.StartDate != "" {
		d, err := time.Parse(dateLayout, params.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid start date, expected YYYY-MM-DD"})
			return
		}
		start = &d
	}
	if params.EndDate != "" {
		d, err := time.Parse(dateLayout, params.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid end date, expected YYYY-MM-DD"})
			return
		}
		end = &d
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	transactions, newToken, err := h.transactionService.ListTransactions(c.Request.Context(), start, end, params.Limit, nextToken)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: appErr.Message})
			return
		}
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		return
	}

	token := ""
	if newToken != nil {
		token = *newToken
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(transactions, token))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves a transaction with its journal entries
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction and its journal entries. Product balances are not re-adjusted and stored proof files are kept.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 500 {object} ErrorResponse "Failed to delete transaction"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
			return
		}
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete transaction"})
		return
	}

	c.Status(http.StatusNoContent)
}
