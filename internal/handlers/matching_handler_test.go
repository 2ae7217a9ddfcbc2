package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dsaidinesh/influencerflow/internal/services"
	"github.com/dsaidinesh/influencerflow/internal/services/dto"
	"github.com/dsaidinesh/influencerflow/internal/validator"
	"github.com/dsaidinesh/influencerflow/pkg/apperrors"
	"github.com/dsaidinesh/influencerflow/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubMatchingService struct {
	lastSimilarityReq *dto.SimilaritySearchRequest
	lastCampaignReq   *dto.CampaignSimilarityRequest
	lastCreatorID     string

	response *dto.SimilaritySearchResponse
	err      error
}

func (s *stubMatchingService) SimilaritySearch(_ context.Context, _ *gorm.DB, req *dto.SimilaritySearchRequest) (*dto.SimilaritySearchResponse, error) {
	s.lastSimilarityReq = req
	return s.response, s.err
}

func (s *stubMatchingService) CampaignSimilaritySearch(_ context.Context, _ *gorm.DB, req *dto.CampaignSimilarityRequest) (*dto.SimilaritySearchResponse, error) {
	s.lastCampaignReq = req
	return s.response, s.err
}

func (s *stubMatchingService) GenerateCreatorEmbedding(_ context.Context, _ *gorm.DB, creatorID string) error {
	s.lastCreatorID = creatorID
	return s.err
}

func setupMatchingRouter(svc services.MatchingService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), &gorm.DB{})
		c.Next()
	})

	handler := NewMatchingHandler(NewBaseHandler(validator.New()), svc)

	// auth stub standing in for the JWT middleware
	authMW := func(c *gin.Context) {
		c.Set("userID", "admin@example.com")
		c.Set("role", "admin")
		c.Next()
	}

	api := router.Group("/api/v1")
	handler.RegisterRoutes(api, authMW)

	return router
}

func emptySearchResponse() *dto.SimilaritySearchResponse {
	return &dto.SimilaritySearchResponse{
		Matches:          []dto.InfluencerMatch{},
		TotalMatches:     0,
		SearchParameters: map[string]interface{}{"fallback": false},
	}
}

func validSearchBody() map[string]interface{} {
	return map[string]interface{}{
		"product_name":        "ProteinX",
		"brand":               "FitCo",
		"product_description": "Plant protein powder",
		"target_audience":     "Fitness enthusiasts",
		"key_usecases":        []string{"post-workout"},
		"campaign_goal":       "Awareness",
		"product_niche":       "Fitness",
		"total_budget":        25000,
	}
}

func TestSimilaritySearchEndpoint(t *testing.T) {
	t.Parallel()

	svc := &stubMatchingService{response: emptySearchResponse()}
	router := setupMatchingRouter(svc)

	body, _ := json.Marshal(validSearchBody())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/similaritysearch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastSimilarityReq)
	assert.Equal(t, "ProteinX", svc.lastSimilarityReq.ProductName)
	assert.Equal(t, 25000.0, svc.lastSimilarityReq.TotalBudget)

	var resp dto.SimilaritySearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.TotalMatches)
}

func TestSimilaritySearchRejectsIncompleteBody(t *testing.T) {
	t.Parallel()

	svc := &stubMatchingService{response: emptySearchResponse()}
	router := setupMatchingRouter(svc)

	body := validSearchBody()
	delete(body, "product_name")
	raw, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/similaritysearch", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.lastSimilarityReq)
}

func TestCampaignSimilarityEndpoint(t *testing.T) {
	t.Parallel()

	svc := &stubMatchingService{response: emptySearchResponse()}
	router := setupMatchingRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{
		"campaign_id":     "camp-1",
		"match_threshold": 0.7,
		"match_count":     5,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/campaign-similarity", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastCampaignReq)
	assert.Equal(t, "camp-1", svc.lastCampaignReq.CampaignID)
	assert.Equal(t, 0.7, svc.lastCampaignReq.MatchThreshold)
	assert.Equal(t, 5, svc.lastCampaignReq.MatchCount)
}

func TestCampaignSimilarityUnknownCampaign(t *testing.T) {
	t.Parallel()

	svc := &stubMatchingService{err: apperrors.ErrCampaignNotFound}
	router := setupMatchingRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{"campaign_id": "missing"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/campaign-similarity", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCampaignMatchesParsesQuery(t *testing.T) {
	t.Parallel()

	svc := &stubMatchingService{response: emptySearchResponse()}
	router := setupMatchingRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ai/campaign/camp-9/matches?match_threshold=0.65&match_count=4", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastCampaignReq)
	assert.Equal(t, "camp-9", svc.lastCampaignReq.CampaignID)
	assert.Equal(t, 0.65, svc.lastCampaignReq.MatchThreshold)
	assert.Equal(t, 4, svc.lastCampaignReq.MatchCount)
}

func TestGenerateEmbeddingEndpoint(t *testing.T) {
	t.Parallel()

	svc := &stubMatchingService{}
	router := setupMatchingRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/creator/creator-7/generate-embedding", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "creator-7", svc.lastCreatorID)
}
