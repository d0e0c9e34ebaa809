package handlers

import (
	"net/http"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fundHandler handles HTTP requests for fund assignments and rendiciones.
type fundHandler struct {
	fundService portssvc.FundSvcFacade
}

func newFundHandler(fs portssvc.FundSvcFacade) *fundHandler {
	return &fundHandler{fundService: fs}
}

// registerFundRoutes registers fund assignment and rendición routes. Creation
// and annulment require fund-management roles; reading and rendering are
// checked in the service against the assignment's responsible.
func registerFundRoutes(rg *gin.RouterGroup, fundService portssvc.FundSvcFacade) {
	h := newFundHandler(fundService)

	funds := rg.Group("/funds")
	{
		funds.POST("", middleware.RequireRoles(domain.RoleResponsable, domain.RoleAdmin), h.createAssignment)
		funds.GET("", h.listFunds)
		funds.GET("/:fund_id", h.getFund)

		funds.POST("/:fund_id/mark-for-rendering", h.markForRendering)
		funds.POST("/:fund_id/render", h.render)
		funds.POST("/:fund_id/annul", middleware.RequireRoles(domain.RoleResponsable, domain.RoleAdmin), h.annul)
	}
}

// createAssignment godoc
// @Summary Create a fund assignment
// @Tags funds
// @Accept json
// @Produce json
// @Param fund body dto.CreateFundRequest true "Assignment details"
// @Success 201 {object} dto.FundResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /funds [post]
func (h *fundHandler) createAssignment(c *gin.Context) {
	var req dto.CreateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	fund, err := h.fundService.CreateAssignment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFundResponse(*fund))
}

// listFunds godoc
// @Summary List fund assignments
// @Description Lists assignments of the caller's company. Non-managers only see assignments they are responsible for.
// @Tags funds
// @Produce json
// @Param status query string false "Status filter"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListFundsResponse
// @Security BearerAuth
// @Router /funds [get]
func (h *fundHandler) listFunds(c *gin.Context) {
	var params dto.ListFundsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	resp, err := h.fundService.ListFunds(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getFund godoc
// @Summary Get a fund assignment with its rendition items
// @Tags funds
// @Produce json
// @Param fund_id path string true "Fund ID"
// @Success 200 {object} dto.FundDetail
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /funds/{fund_id} [get]
func (h *fundHandler) getFund(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	detail, err := h.fundService.GetFundByID(c.Request.Context(), c.Param("fund_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// markForRendering godoc
// @Summary Mark an assignment as ready for rendición
// @Tags funds
// @Produce json
// @Param fund_id path string true "Fund ID"
// @Success 200 {object} dto.FundResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /funds/{fund_id}/mark-for-rendering [post]
func (h *fundHandler) markForRendering(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	fund, err := h.fundService.MarkForRendering(c.Request.Context(), c.Param("fund_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFundResponse(*fund))
}

// render godoc
// @Summary Render a fund assignment
// @Description Reconciles the assignment against the selected approved or paid expenses. Amounts are normalized to the base currency; the resulting balance may be negative.
// @Tags funds
// @Accept json
// @Produce json
// @Param fund_id path string true "Fund ID"
// @Param rendicion body dto.RenderFundRequest true "Expense selection"
// @Success 200 {object} dto.FundDetail
// @Failure 400 {object} ErrorResponse "Empty selection, foreign expense or missing exchange rate"
// @Failure 409 {object} ErrorResponse "Ineligible expense status or stale version"
// @Security BearerAuth
// @Router /funds/{fund_id}/render [post]
func (h *fundHandler) render(c *gin.Context) {
	var req dto.RenderFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	detail, err := h.fundService.Render(c.Request.Context(), c.Param("fund_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// annul godoc
// @Summary Annul a fund assignment
// @Tags funds
// @Accept json
// @Produce json
// @Param fund_id path string true "Fund ID"
// @Param annulment body dto.AnnulExpenseRequest true "Mandatory reason"
// @Success 200 {object} dto.FundResponse
// @Security BearerAuth
// @Router /funds/{fund_id}/annul [post]
func (h *fundHandler) annul(c *gin.Context) {
	var req dto.AnnulExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	fund, err := h.fundService.Annul(c.Request.Context(), c.Param("fund_id"), userID, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFundResponse(*fund))
}
