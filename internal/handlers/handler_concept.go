package handlers

import (
	"net/http"

	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conceptHandler handles HTTP requests for expense concepts and their
// document checklists.
type conceptHandler struct {
	conceptService portssvc.ConceptSvcFacade
	userService    portssvc.UserSvcFacade
}

func newConceptHandler(cs portssvc.ConceptSvcFacade, us portssvc.UserSvcFacade) *conceptHandler {
	return &conceptHandler{
		conceptService: cs,
		userService:    us,
	}
}

// registerConceptRoutes registers expense concept catalog routes.
func registerConceptRoutes(rg *gin.RouterGroup, conceptService portssvc.ConceptSvcFacade, userService portssvc.UserSvcFacade) {
	h := newConceptHandler(conceptService, userService)

	concepts := rg.Group("/concepts")
	{
		concepts.POST("", middleware.RequireRoles(catalogWriteRoles...), h.createConcept)
		concepts.GET("", h.listConcepts)
		concepts.GET("/:concept_id", h.getConcept)
		concepts.PUT("/:concept_id", middleware.RequireRoles(catalogWriteRoles...), h.updateConcept)
		concepts.GET("/:concept_id/requirements", h.listRequirements)
	}
}

// createConcept godoc
// @Summary Create an expense concept
// @Tags concepts
// @Accept json
// @Produce json
// @Param concept body dto.CreateConceptRequest true "Concept details with optional checklist"
// @Success 201 {object} dto.ConceptResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /concepts [post]
func (h *conceptHandler) createConcept(c *gin.Context) {
	var req dto.CreateConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	concept, err := h.conceptService.CreateConcept(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToConceptResponse(concept))
}

// listConcepts godoc
// @Summary List the caller's company expense concepts
// @Tags concepts
// @Produce json
// @Success 200 {array} dto.ConceptResponse
// @Security BearerAuth
// @Router /concepts [get]
func (h *conceptHandler) listConcepts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	actor, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	concepts, err := h.conceptService.ListConcepts(c.Request.Context(), actor.CompanyID)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.ConceptResponse, len(concepts))
	for i := range concepts {
		res[i] = dto.ToConceptResponse(&concepts[i])
	}
	c.JSON(http.StatusOK, res)
}

// getConcept godoc
// @Summary Get an expense concept
// @Tags concepts
// @Produce json
// @Param concept_id path string true "Concept ID"
// @Success 200 {object} dto.ConceptResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /concepts/{concept_id} [get]
func (h *conceptHandler) getConcept(c *gin.Context) {
	concept, err := h.conceptService.GetConceptByID(c.Request.Context(), c.Param("concept_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConceptResponse(concept))
}

// updateConcept godoc
// @Summary Update an expense concept
// @Description Providing requirements replaces the whole checklist.
// @Tags concepts
// @Accept json
// @Produce json
// @Param concept_id path string true "Concept ID"
// @Param concept body dto.UpdateConceptRequest true "Mutable fields"
// @Success 200 {object} dto.ConceptResponse
// @Security BearerAuth
// @Router /concepts/{concept_id} [put]
func (h *conceptHandler) updateConcept(c *gin.Context) {
	var req dto.UpdateConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	concept, err := h.conceptService.UpdateConcept(c.Request.Context(), c.Param("concept_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConceptResponse(concept))
}

// listRequirements godoc
// @Summary List the document checklist of a concept
// @Tags concepts
// @Produce json
// @Param concept_id path string true "Concept ID"
// @Success 200 {array} dto.RequirementResponse
// @Security BearerAuth
// @Router /concepts/{concept_id}/requirements [get]
func (h *conceptHandler) listRequirements(c *gin.Context) {
	reqs, err := h.conceptService.ListRequired(c.Request.Context(), c.Param("concept_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRequirementResponses(reqs))
}
