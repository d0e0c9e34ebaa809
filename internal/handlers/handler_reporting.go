package handlers

import (
	"net/http"

	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for aggregated reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	userService      portssvc.UserSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade, us portssvc.UserSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs, userService: us}
}

// registerReportingRoutes registers reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, userService portssvc.UserSvcFacade) {
	h := newReportingHandler(reportingService, userService)

	reports := rg.Group("/reports")
	{
		reports.GET("/expenses", h.expenseStatistics)
		reports.GET("/cost-centers", h.costCenterSummaries)
		reports.GET("/funds", h.fundOverview)
	}
}

func (h *reportingHandler) actorCompanyID(c *gin.Context) (string, bool) {
	userID, ok := mustUserID(c)
	if !ok {
		return "", false
	}
	actor, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return actor.CompanyID, true
}

// expenseStatistics godoc
// @Summary Expense totals by status in the base currency
// @Tags reports
// @Produce json
// @Success 200 {object} dto.ExpenseStatisticsResponse
// @Security BearerAuth
// @Router /reports/expenses [get]
func (h *reportingHandler) expenseStatistics(c *gin.Context) {
	companyID, ok := h.actorCompanyID(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.ExpenseStatistics(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// costCenterSummaries godoc
// @Summary Budget consumption per cost center
// @Tags reports
// @Produce json
// @Success 200 {object} dto.CostCenterReportResponse
// @Security BearerAuth
// @Router /reports/cost-centers [get]
func (h *reportingHandler) costCenterSummaries(c *gin.Context) {
	companyID, ok := h.actorCompanyID(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.CostCenterSummaries(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// fundOverview godoc
// @Summary Outstanding balance per fund assignment
// @Tags reports
// @Produce json
// @Success 200 {object} dto.FundOverviewResponse
// @Security BearerAuth
// @Router /reports/funds [get]
func (h *reportingHandler) fundOverview(c *gin.Context) {
	companyID, ok := h.actorCompanyID(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.FundOverview(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
