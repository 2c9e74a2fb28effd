package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/dto"
	"github.com/budgetdash/budget_dash_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for ledger entries. Create and
// update accept multipart form data so an optional receipt file can ride
// along with the fields.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers all ledger-entry routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	projectScoped := rg.Group("/projects/:projectID/transactions")
	{
		projectScoped.POST("", h.createTransaction) // Any member
		projectScoped.GET("", h.listTransactions)   // Any member, paginated
	}

	transactions := rg.Group("/transactions")
	{
		transactions.PUT("/:transactionID", h.updateTransaction)    // Owner or admin
		transactions.DELETE("/:transactionID", h.deleteTransaction) // Owner or admin
	}
}

// receiptFromForm extracts the optional receipt file from a multipart
// request. A missing file is not an error; the caller gets a nil upload.
// The returned closer must be closed by the caller when non-nil.
func receiptFromForm(c *gin.Context) (*dto.ReceiptUpload, func(), error) {
	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, func() {}, err
	}

	upload := &dto.ReceiptUpload{
		Filename: fileHeader.Filename,
		Content:  file,
	}
	return upload, func() { file.Close() }, nil
}

// createTransaction godoc
// @Summary Record a ledger entry
// @Description Any project member may record an entry. Send multipart form fields plus an optional "receipt" file.
// @Tags transactions
// @Accept  mpfd
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   amount formData number true "Amount, at least 0.01"
// @Param   type formData string false "DEBIT or CREDIT, defaults to DEBIT"
// @Param   category formData string true "Category"
// @Param   description formData string false "Description"
// @Param   notes formData string false "Notes"
// @Param   date formData string false "Entry date (YYYY-MM-DD), defaults to today"
// @Param   receipt formData file false "Receipt file"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not a member"
// @Security BearerAuth
// @Router /projects/{projectID}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid form data: " + err.Error()})
		return
	}

	receipt, closeReceipt, err := receiptFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid receipt upload: " + err.Error()})
		return
	}
	defer closeReceipt()

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), actor, c.Param("projectID"), req, receipt)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to record transaction")
		return
	}

	logger.Info("Transaction recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List a project's ledger entries
// @Description One fixed-size page, date descending. Out-of-range page numbers are clamped.
// @Tags transactions
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   page query int false "Page number" default(1)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 403 {object} ErrorResponse "Not a member"
// @Security BearerAuth
// @Router /projects/{projectID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	page, err := h.transactionService.ListTransactions(c.Request.Context(), actor, c.Param("projectID"), params.Page)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(page.Transactions),
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalCount:   page.TotalCount,
	})
}

// updateTransaction godoc
// @Summary Update a ledger entry
// @Description Project owner or admin only. The stored receipt is kept unless a replacement file is supplied.
// @Tags transactions
// @Accept  mpfd
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   amount formData number true "Amount, at least 0.01"
// @Param   type formData string true "DEBIT or CREDIT"
// @Param   category formData string true "Category"
// @Param   description formData string false "Description"
// @Param   notes formData string false "Notes"
// @Param   date formData string false "Entry date (YYYY-MM-DD)"
// @Param   receipt formData file false "Replacement receipt file"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid form data: " + err.Error()})
		return
	}

	receipt, closeReceipt, err := receiptFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid receipt upload: " + err.Error()})
		return
	}
	defer closeReceipt()

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), actor, c.Param("transactionID"), req, receipt)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a ledger entry
// @Description Project owner or admin only. The stored receipt file is removed with it.
// @Tags transactions
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), actor, c.Param("transactionID")); err != nil {
		respondWithServiceError(c, logger, err, "Failed to delete transaction")
		return
	}

	c.Status(http.StatusNoContent)
}
