package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests for the expense lifecycle.
type expenseHandler struct {
	expenseService  portssvc.ExpenseSvcFacade
	documentService portssvc.DocumentSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade, ds portssvc.DocumentSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService:  es,
		documentService: ds,
	}
}

// RegisterExpenseRoutes registers expense CRUD, lifecycle transition and
// evidence routes.
func RegisterExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, documentService portssvc.DocumentSvcFacade) {
	h := newExpenseHandler(expenseService, documentService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createDraft)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expense_id", h.getExpense)
		expenses.PUT("/:expense_id", h.updateDraft)
		expenses.DELETE("/:expense_id", h.deleteExpense)

		expenses.POST("/:expense_id/submit", h.submit)
		expenses.POST("/:expense_id/approve", h.approve)
		expenses.POST("/:expense_id/reject", h.reject)
		expenses.POST("/:expense_id/pay", h.markPaid)
		expenses.POST("/:expense_id/annul", h.annul)

		expenses.POST("/:expense_id/documents", h.attachDocument)
		expenses.GET("/:expense_id/documents", h.listDocuments)
	}
}

// createDraft godoc
// @Summary Create a draft expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("failed to bind create expense request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateDraft(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists expenses of the caller's company. Collaborators only see their own.
// @Tags expenses
// @Produce json
// @Param status query string false "Status filter"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListExpensesResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	resp, err := h.expenseService.ListExpenses(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expense_id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("expense_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateDraft godoc
// @Summary Update a draft expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Editable fields"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 409 {object} ErrorResponse "Not editable or modified concurrently"
// @Security BearerAuth
// @Router /expenses/{expense_id} [put]
func (h *expenseHandler) updateDraft(c *gin.Context) {
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateDraft(c.Request.Context(), c.Param("expense_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete a draft expense
// @Tags expenses
// @Param expense_id path string true "Expense ID"
// @Success 204
// @Failure 409 {object} ErrorResponse "Only drafts can be deleted"
// @Security BearerAuth
// @Router /expenses/{expense_id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("expense_id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// submit godoc
// @Summary Submit a draft for approval
// @Description Moves the draft to PENDIENTE, or straight to APROBADO when the concept needs no approval.
// @Tags expenses
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Success 200 {object} dto.SubmitExpenseResult
// @Failure 400 {object} ErrorResponse "Validation or checklist failure"
// @Security BearerAuth
// @Router /expenses/{expense_id}/submit [post]
func (h *expenseHandler) submit(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	result, err := h.expenseService.Submit(c.Request.Context(), c.Param("expense_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// approve godoc
// @Summary Approve a pending expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Param approval body dto.ApproveExpenseRequest false "Optional observations"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expense_id}/approve [post]
func (h *expenseHandler) approve(c *gin.Context) {
	var req dto.ApproveExpenseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.Approve(c.Request.Context(), c.Param("expense_id"), userID, req.Observations)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// reject godoc
// @Summary Reject a pending expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Param rejection body dto.RejectExpenseRequest true "Mandatory reason"
// @Success 200 {object} dto.ExpenseResponse
// @Security BearerAuth
// @Router /expenses/{expense_id}/reject [post]
func (h *expenseHandler) reject(c *gin.Context) {
	var req dto.RejectExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.Reject(c.Request.Context(), c.Param("expense_id"), userID, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// markPaid godoc
// @Summary Mark an approved expense as paid
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Param payment body dto.PayExpenseRequest false "Optional payment method"
// @Success 200 {object} dto.ExpenseResponse
// @Security BearerAuth
// @Router /expenses/{expense_id}/pay [post]
func (h *expenseHandler) markPaid(c *gin.Context) {
	var req dto.PayExpenseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.MarkPaid(c.Request.Context(), c.Param("expense_id"), userID, req.MetodoPago)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// annul godoc
// @Summary Annul an expense
// @Description Annuls a draft, pending or approved expense. Annulling an approved expense releases its consumed budget.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Param annulment body dto.AnnulExpenseRequest true "Mandatory reason"
// @Success 200 {object} dto.ExpenseResponse
// @Security BearerAuth
// @Router /expenses/{expense_id}/annul [post]
func (h *expenseHandler) annul(c *gin.Context) {
	var req dto.AnnulExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.Annul(c.Request.Context(), c.Param("expense_id"), userID, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
