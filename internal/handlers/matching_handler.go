package handlers

import (
	"net/http"

	"github.com/dsaidinesh/influencerflow/internal/middleware"
	"github.com/dsaidinesh/influencerflow/internal/services"
	"github.com/dsaidinesh/influencerflow/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     base,
		matchingService: matchingService,
	}
}

// RegisterRoutes mounts the matching endpoints. Search endpoints are public
// because they always answer, live or fallback; embedding regeneration is
// an administrative operation.
func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	ai := r.Group("/ai")
	{
		ai.POST("/similaritysearch", h.SimilaritySearch)
		ai.POST("/campaign-similarity", h.CampaignSimilaritySearch)
		ai.GET("/campaign/:campaignId/matches", h.GetCampaignMatches)
	}

	admin := r.Group("/ai")
	admin.Use(authMW, middleware.RoleMiddleware("admin"))
	{
		admin.POST("/creator/:creatorId/generate-embedding", h.GenerateCreatorEmbedding)
	}
}

// SimilaritySearch matches creators against campaign fields sent in the body.
func (h *MatchingHandler) SimilaritySearch(c *gin.Context) {
	var req dto.SimilaritySearchRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.matchingService.SimilaritySearch(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CampaignSimilaritySearch matches creators against a stored campaign.
func (h *MatchingHandler) CampaignSimilaritySearch(c *gin.Context) {
	var req dto.CampaignSimilarityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.matchingService.CampaignSimilaritySearch(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCampaignMatches is the query-parameter variant of campaign matching.
func (h *MatchingHandler) GetCampaignMatches(c *gin.Context) {
	req := dto.CampaignSimilarityRequest{
		CampaignID:     c.Param("campaignId"),
		MatchThreshold: ParseQueryFloat(c, "match_threshold", 0),
		MatchCount:     ParseQueryInt(c, "match_count", 0),
	}

	result, err := h.matchingService.CampaignSimilaritySearch(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MatchingHandler) GenerateCreatorEmbedding(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	creatorID := c.Param("creatorId")

	if err := h.matchingService.GenerateCreatorEmbedding(c.Request.Context(), h.GetDB(c), creatorID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    "Embedding generated successfully",
		"creator_id": creatorID,
	})
}
