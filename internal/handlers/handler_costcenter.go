package handlers

import (
	"net/http"

	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// costCenterHandler handles HTTP requests for cost centers.
type costCenterHandler struct {
	costCenterService portssvc.CostCenterSvcFacade
	userService       portssvc.UserSvcFacade
}

func newCostCenterHandler(cs portssvc.CostCenterSvcFacade, us portssvc.UserSvcFacade) *costCenterHandler {
	return &costCenterHandler{
		costCenterService: cs,
		userService:       us,
	}
}

// registerCostCenterRoutes registers cost center catalog routes.
func registerCostCenterRoutes(rg *gin.RouterGroup, costCenterService portssvc.CostCenterSvcFacade, userService portssvc.UserSvcFacade) {
	h := newCostCenterHandler(costCenterService, userService)

	centers := rg.Group("/cost-centers")
	{
		centers.POST("", middleware.RequireRoles(catalogWriteRoles...), h.createCostCenter)
		centers.GET("", h.listCostCenters)
		centers.GET("/:cost_center_id", h.getCostCenter)
		centers.PUT("/:cost_center_id", middleware.RequireRoles(catalogWriteRoles...), h.updateCostCenter)
	}
}

// actorCompanyID resolves the caller's company for company-scoped listings.
func (h *costCenterHandler) actorCompanyID(c *gin.Context) (string, bool) {
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

// createCostCenter godoc
// @Summary Create a cost center
// @Tags cost-centers
// @Accept json
// @Produce json
// @Param costCenter body dto.CreateCostCenterRequest true "Cost center details"
// @Success 201 {object} dto.CostCenterResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /cost-centers [post]
func (h *costCenterHandler) createCostCenter(c *gin.Context) {
	var req dto.CreateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	costCenter, err := h.costCenterService.CreateCostCenter(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCostCenterResponse(costCenter))
}

// listCostCenters godoc
// @Summary List the caller's company cost centers
// @Tags cost-centers
// @Produce json
// @Success 200 {array} dto.CostCenterResponse
// @Security BearerAuth
// @Router /cost-centers [get]
func (h *costCenterHandler) listCostCenters(c *gin.Context) {
	companyID, ok := h.actorCompanyID(c)
	if !ok {
		return
	}

	centers, err := h.costCenterService.ListCostCenters(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.CostCenterResponse, len(centers))
	for i := range centers {
		res[i] = dto.ToCostCenterResponse(&centers[i])
	}
	c.JSON(http.StatusOK, res)
}

// getCostCenter godoc
// @Summary Get a cost center
// @Tags cost-centers
// @Produce json
// @Param cost_center_id path string true "Cost center ID"
// @Success 200 {object} dto.CostCenterResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cost-centers/{cost_center_id} [get]
func (h *costCenterHandler) getCostCenter(c *gin.Context) {
	costCenter, err := h.costCenterService.GetCostCenterByID(c.Request.Context(), c.Param("cost_center_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCostCenterResponse(costCenter))
}

// updateCostCenter godoc
// @Summary Update a cost center
// @Description Rejects lowering the assigned budget below what is already consumed.
// @Tags cost-centers
// @Accept json
// @Produce json
// @Param cost_center_id path string true "Cost center ID"
// @Param costCenter body dto.UpdateCostCenterRequest true "Mutable fields"
// @Success 200 {object} dto.CostCenterResponse
// @Failure 400 {object} ErrorResponse "Budget below consumption"
// @Security BearerAuth
// @Router /cost-centers/{cost_center_id} [put]
func (h *costCenterHandler) updateCostCenter(c *gin.Context) {
	var req dto.UpdateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	costCenter, err := h.costCenterService.UpdateCostCenter(c.Request.Context(), c.Param("cost_center_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCostCenterResponse(costCenter))
}
