package handlers

import (
	"net/http"

	"github.com/dsaidinesh/influencerflow/internal/repositories"
	"github.com/dsaidinesh/influencerflow/internal/services"
	"github.com/dsaidinesh/influencerflow/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CreatorHandler struct {
	*BaseHandler
	creatorService services.CreatorService
}

func NewCreatorHandler(base *BaseHandler, creatorService services.CreatorService) *CreatorHandler {
	return &CreatorHandler{
		BaseHandler:    base,
		creatorService: creatorService,
	}
}

func (h *CreatorHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	creators := r.Group("/creators")
	{
		creators.GET("", h.ListCreators)
		creators.GET("/:creatorId", h.GetCreator)
	}

	protected := r.Group("/creators")
	protected.Use(authMW)
	{
		protected.POST("", h.CreateCreator)
		protected.PUT("/:creatorId", h.UpdateCreator)
		protected.DELETE("/:creatorId", h.DeleteCreator)
	}
}

func (h *CreatorHandler) CreateCreator(c *gin.Context) {
	var req dto.CreateCreatorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	creator, err := h.creatorService.CreateCreator(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, creator)
}

func (h *CreatorHandler) GetCreator(c *gin.Context) {
	creator, err := h.creatorService.GetCreator(c.Request.Context(), h.GetDB(c), c.Param("creatorId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, creator)
}

func (h *CreatorHandler) UpdateCreator(c *gin.Context) {
	var req dto.UpdateCreatorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	creator, err := h.creatorService.UpdateCreator(c.Request.Context(), h.GetDB(c), c.Param("creatorId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, creator)
}

func (h *CreatorHandler) DeleteCreator(c *gin.Context) {
	if err := h.creatorService.DeleteCreator(c.Request.Context(), h.GetDB(c), c.Param("creatorId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Creator deleted successfully"})
}

func (h *CreatorHandler) ListCreators(c *gin.Context) {
	var criteria repositories.CreatorSearchCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	result, err := h.creatorService.ListCreators(c.Request.Context(), h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
