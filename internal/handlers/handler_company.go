package handlers

import (
	"net/http"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests for companies and branches.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: cs}
}

// registerCompanyRoutes registers company and branch routes. Company creation
// is reserved for admins.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	companies := rg.Group("/companies")
	{
		companies.POST("", middleware.RequireRoles(domain.RoleAdmin), h.createCompany)
		companies.GET("", middleware.RequireRoles(domain.RoleAdmin), h.listCompanies)
		companies.GET("/:company_id", h.getCompany)
		companies.PUT("/:company_id", middleware.RequireRoles(domain.RoleAdmin), h.updateCompany)

		companies.POST("/:company_id/branches", middleware.RequireRoles(catalogWriteRoles...), h.createBranch)
		companies.GET("/:company_id/branches", h.listBranches)
	}
}

// createCompany godoc
// @Summary Create a company
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// listCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce json
// @Success 200 {array} dto.CompanyResponse
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.CompanyResponse, len(companies))
	for i := range companies {
		res[i] = dto.ToCompanyResponse(&companies[i])
	}
	c.JSON(http.StatusOK, res)
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	company, err := h.companyService.GetCompanyByID(c.Request.Context(), c.Param("company_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update a company
// @Tags companies
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param company body dto.UpdateCompanyRequest true "Mutable fields"
// @Success 200 {object} dto.CompanyResponse
// @Security BearerAuth
// @Router /companies/{company_id} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), c.Param("company_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// createBranch godoc
// @Summary Create a branch
// @Tags companies
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} dto.BranchResponse
// @Security BearerAuth
// @Router /companies/{company_id}/branches [post]
func (h *companyHandler) createBranch(c *gin.Context) {
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	branch, err := h.companyService.CreateBranch(c.Request.Context(), c.Param("company_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// listBranches godoc
// @Summary List the branches of a company
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {array} dto.BranchResponse
// @Security BearerAuth
// @Router /companies/{company_id}/branches [get]
func (h *companyHandler) listBranches(c *gin.Context) {
	branches, err := h.companyService.ListBranches(c.Request.Context(), c.Param("company_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.BranchResponse, len(branches))
	for i := range branches {
		res[i] = dto.ToBranchResponse(&branches[i])
	}
	c.JSON(http.StatusOK, res)
}
