package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dsaidinesh/influencerflow/internal/models"
	"github.com/dsaidinesh/influencerflow/internal/repositories"
	"github.com/dsaidinesh/influencerflow/internal/services/dto"
	"github.com/dsaidinesh/influencerflow/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ========================
// Stubs
// ========================

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return s.vector, s.err
}

func (s *stubEmbedder) Dimensions() int {
	return len(s.vector)
}

type stubCreatorRepo struct {
	creators   map[string]*models.Creator
	candidates []repositories.MatchCandidate
	matchErr   error
	matchDB    *gorm.DB
	updated    map[string][]float64
}

func newStubCreatorRepo() *stubCreatorRepo {
	return &stubCreatorRepo{
		creators: make(map[string]*models.Creator),
		updated:  make(map[string][]float64),
	}
}

func (s *stubCreatorRepo) Create(_ *gorm.DB, creator *models.Creator) error {
	for _, existing := range s.creators {
		if existing.Email == creator.Email {
			return repositories.ErrCreatorAlreadyExists
		}
	}
	s.creators[creator.ID] = creator
	return nil
}

func (s *stubCreatorRepo) FindByID(_ *gorm.DB, id string) (*models.Creator, error) {
	creator, ok := s.creators[id]
	if !ok {
		return nil, repositories.ErrCreatorNotFound
	}
	return creator, nil
}

func (s *stubCreatorRepo) Update(_ *gorm.DB, creator *models.Creator) error {
	s.creators[creator.ID] = creator
	return nil
}

func (s *stubCreatorRepo) Delete(_ *gorm.DB, id string) error {
	delete(s.creators, id)
	return nil
}

func (s *stubCreatorRepo) Search(_ *gorm.DB, _ repositories.CreatorSearchCriteria) ([]models.Creator, int64, error) {
	return nil, 0, nil
}

func (s *stubCreatorRepo) UpdateEmbedding(_ *gorm.DB, creatorID string, vector []float64) error {
	if _, ok := s.creators[creatorID]; !ok {
		return repositories.ErrCreatorNotFound
	}
	s.updated[creatorID] = vector
	return nil
}

func (s *stubCreatorRepo) FindMissingEmbeddings(_ *gorm.DB, _ int) ([]models.Creator, error) {
	return nil, nil
}

func (s *stubCreatorRepo) MatchByEmbedding(db *gorm.DB, _ []float64, _ float64, _ int) ([]repositories.MatchCandidate, error) {
	s.matchDB = db
	return s.candidates, s.matchErr
}

type stubCampaignRepo struct {
	campaigns map[string]*models.Campaign
}

func newStubCampaignRepo() *stubCampaignRepo {
	return &stubCampaignRepo{campaigns: make(map[string]*models.Campaign)}
}

func (s *stubCampaignRepo) Create(_ *gorm.DB, campaign *models.Campaign) error {
	s.campaigns[campaign.ID] = campaign
	return nil
}

func (s *stubCampaignRepo) FindByID(_ *gorm.DB, id string) (*models.Campaign, error) {
	campaign, ok := s.campaigns[id]
	if !ok {
		return nil, repositories.ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *stubCampaignRepo) Update(_ *gorm.DB, campaign *models.Campaign) error {
	s.campaigns[campaign.ID] = campaign
	return nil
}

func (s *stubCampaignRepo) Delete(_ *gorm.DB, id string) error {
	delete(s.campaigns, id)
	return nil
}

func (s *stubCampaignRepo) Search(_ *gorm.DB, _ repositories.CampaignSearchCriteria) ([]models.Campaign, int64, error) {
	return nil, 0, nil
}

// testGormDB is the minimal handle WithContext accepts; no connection is made.
func testGormDB() *gorm.DB {
	db := &gorm.DB{Config: &gorm.Config{}}
	db.Statement = &gorm.Statement{DB: db}
	return db
}

func testCampaign() *dto.MatchingCampaign {
	return &dto.MatchingCampaign{
		ProductName:        "ProteinX",
		BrandName:          "FitCo",
		ProductDescription: "Plant protein powder",
		TargetAudience:     "Fitness enthusiasts",
		KeyUseCases:        []string{"post-workout"},
		CampaignGoal:       "Awareness",
		ProductNiche:       "Fitness",
		TotalBudget:        25000,
	}
}

func testSearchRequest() *dto.SimilaritySearchRequest {
	return &dto.SimilaritySearchRequest{
		ProductName:        "ProteinX",
		Brand:              "FitCo",
		ProductDescription: "Plant protein powder",
		TargetAudience:     "Fitness enthusiasts",
		KeyUsecases:        []string{"post-workout"},
		CampaignGoal:       "Awareness",
		ProductNiche:       "Fitness",
		TotalBudget:        25000,
	}
}

// ========================
// Synthetic strategy
// ========================

func TestMatchingServiceServesSyntheticWithoutEmbedder(t *testing.T) {
	t.Parallel()

	svc := NewMatchingService(nil, newStubCreatorRepo(), newStubCampaignRepo(), DefaultTuning(), MatchingDefaults{})

	resp, err := svc.SimilaritySearch(context.Background(), nil, testSearchRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalMatches)
	assert.Len(t, resp.Matches, 3)
	assert.Equal(t, true, resp.SearchParameters["fallback"])
	assert.Equal(t, string(FallbackNoCredentials), resp.SearchParameters["fallback_reason"])

	// ranked descending
	assert.Equal(t, "78.31%", resp.Matches[0].MatchScore)
	assert.Equal(t, "75.42%", resp.Matches[1].MatchScore)
	assert.Equal(t, "67.88%", resp.Matches[2].MatchScore)
}

func TestSyntheticMatchesStructuralParity(t *testing.T) {
	t.Parallel()

	for _, match := range SyntheticMatches() {
		assert.NotEmpty(t, match.ID)
		assert.NotEmpty(t, match.InfluencerName)
		assert.NotEmpty(t, match.MatchScore)
		assert.NotEmpty(t, match.Niche)
		assert.NotEmpty(t, match.Followers)
		assert.NotEmpty(t, match.Engagement)
		assert.NotEmpty(t, match.CollaborationRate)
		assert.NotEmpty(t, match.DetailedScores.NicheMatch)
		assert.NotEmpty(t, match.DetailedScores.AudienceMatch)
		assert.NotEmpty(t, match.DetailedScores.EngagementScore)
		assert.NotEmpty(t, match.DetailedScores.BudgetFit)
	}
}

func TestSyntheticMatcherDeterministic(t *testing.T) {
	t.Parallel()

	matcher := NewSyntheticMatcher(FallbackNoCredentials)
	first := matcher.Match(context.Background(), testGormDB(), testCampaign(), 0.5, 10)
	second := matcher.Match(context.Background(), testGormDB(), testCampaign(), 0.5, 10)

	assert.Equal(t, first, second)
	assert.True(t, first.Fallback)
}

func TestSyntheticMatcherHonorsCount(t *testing.T) {
	t.Parallel()

	matcher := NewSyntheticMatcher(FallbackNoCredentials)
	outcome := matcher.Match(context.Background(), testGormDB(), testCampaign(), 0.5, 2)

	require.Len(t, outcome.Matches, 2)
	assert.Equal(t, "78.31%", outcome.Matches[0].MatchScore)
}

// ========================
// Live strategy
// ========================

func TestLiveMatcherFallsBackOnEmbedFailure(t *testing.T) {
	t.Parallel()

	embedder := &stubEmbedder{err: errors.New("model unavailable")}
	matcher := NewLiveMatcher(embedder, newStubCreatorRepo(), DefaultTuning())

	outcome := matcher.Match(context.Background(), testGormDB(), testCampaign(), 0.5, 10)

	assert.True(t, outcome.Fallback)
	assert.Equal(t, FallbackEmbeddingFailed, outcome.Reason)
	assert.Len(t, outcome.Matches, 3)
}

func TestLiveMatcherFallsBackOnSearchFailure(t *testing.T) {
	t.Parallel()

	repo := newStubCreatorRepo()
	repo.matchErr = errors.New("connection reset")
	matcher := NewLiveMatcher(&stubEmbedder{vector: []float32{0.1, 0.2}}, repo, DefaultTuning())

	outcome := matcher.Match(context.Background(), testGormDB(), testCampaign(), 0.5, 10)

	assert.True(t, outcome.Fallback)
	assert.Equal(t, FallbackSearchFailed, outcome.Reason)
}

func TestLiveMatcherFallsBackOnEmptyCandidates(t *testing.T) {
	t.Parallel()

	matcher := NewLiveMatcher(&stubEmbedder{vector: []float32{0.1, 0.2}}, newStubCreatorRepo(), DefaultTuning())

	outcome := matcher.Match(context.Background(), testGormDB(), testCampaign(), 0.5, 10)

	assert.True(t, outcome.Fallback)
	assert.Equal(t, FallbackNoCandidates, outcome.Reason)
	assert.Len(t, outcome.Matches, 3)
}

func TestLiveMatcherRanksAndTruncates(t *testing.T) {
	t.Parallel()

	repo := newStubCreatorRepo()
	repo.creators["a"] = &models.Creator{ID: "a", Name: "A", EngagementRate: 4}
	repo.creators["b"] = &models.Creator{ID: "b", Name: "B", EngagementRate: 5}
	repo.creators["c"] = &models.Creator{ID: "c", Name: "C", EngagementRate: 6}
	// deliberately unsorted to prove ranking is ours, not the store's
	repo.candidates = []repositories.MatchCandidate{
		{CreatorID: "a", Similarity: 0.55},
		{CreatorID: "b", Similarity: 0.9},
		{CreatorID: "c", Similarity: 0.7},
	}

	matcher := NewLiveMatcher(&stubEmbedder{vector: []float32{0.1, 0.2}}, repo, DefaultTuning())
	outcome := matcher.Match(context.Background(), testGormDB(), testCampaign(), 0.5, 2)

	require.False(t, outcome.Fallback)
	require.Len(t, outcome.Matches, 2)
	assert.Equal(t, "b", outcome.Matches[0].ID)
	assert.Equal(t, "90.00%", outcome.Matches[0].MatchScore)
	assert.Equal(t, "c", outcome.Matches[1].ID)
}

func TestLiveMatcherCarriesRequestContextToStore(t *testing.T) {
	t.Parallel()

	repo := newStubCreatorRepo()
	repo.creators["a"] = &models.Creator{ID: "a", Name: "A"}
	repo.candidates = []repositories.MatchCandidate{{CreatorID: "a", Similarity: 0.8}}

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "request-scoped")

	matcher := NewLiveMatcher(&stubEmbedder{vector: []float32{0.1, 0.2}}, repo, DefaultTuning())
	outcome := matcher.Match(ctx, testGormDB(), testCampaign(), 0.5, 10)

	require.False(t, outcome.Fallback)
	require.NotNil(t, repo.matchDB)
	require.NotNil(t, repo.matchDB.Statement)
	assert.Equal(t, "request-scoped", repo.matchDB.Statement.Context.Value(ctxKey{}))
}

func TestLiveMatcherSkipsMissingCreators(t *testing.T) {
	t.Parallel()

	repo := newStubCreatorRepo()
	repo.creators["present"] = &models.Creator{ID: "present", Name: "Here"}
	repo.candidates = []repositories.MatchCandidate{
		{CreatorID: "deleted", Similarity: 0.95},
		{CreatorID: "present", Similarity: 0.6},
	}

	matcher := NewLiveMatcher(&stubEmbedder{vector: []float32{0.1, 0.2}}, repo, DefaultTuning())
	outcome := matcher.Match(context.Background(), testGormDB(), testCampaign(), 0.5, 10)

	require.False(t, outcome.Fallback)
	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, "present", outcome.Matches[0].ID)
}

func TestLiveMatcherFallsBackWhenAllCandidatesVanish(t *testing.T) {
	t.Parallel()

	repo := newStubCreatorRepo()
	repo.candidates = []repositories.MatchCandidate{
		{CreatorID: "gone", Similarity: 0.8},
	}

	matcher := NewLiveMatcher(&stubEmbedder{vector: []float32{0.1, 0.2}}, repo, DefaultTuning())
	outcome := matcher.Match(context.Background(), testGormDB(), testCampaign(), 0.5, 10)

	assert.True(t, outcome.Fallback)
	assert.Equal(t, FallbackNoCandidates, outcome.Reason)
}

// ========================
// Service surface
// ========================

func TestCampaignSimilaritySearchUnknownCampaign(t *testing.T) {
	t.Parallel()

	svc := NewMatchingService(nil, newStubCreatorRepo(), newStubCampaignRepo(), DefaultTuning(), MatchingDefaults{})

	_, err := svc.CampaignSimilaritySearch(context.Background(), nil, &dto.CampaignSimilarityRequest{CampaignID: "missing"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCampaignNotFound)
}

func TestCampaignSimilaritySearchUsesStoredCampaign(t *testing.T) {
	t.Parallel()

	campaignRepo := newStubCampaignRepo()
	campaign := &models.Campaign{
		ID:          "camp-1",
		ProductName: "ProteinX",
		BrandName:   "FitCo",
		TotalBudget: 25000,
	}
	campaign.SetKeyUseCases([]string{"post-workout"})
	campaignRepo.campaigns["camp-1"] = campaign

	svc := NewMatchingService(nil, newStubCreatorRepo(), campaignRepo, DefaultTuning(), MatchingDefaults{})

	resp, err := svc.CampaignSimilaritySearch(context.Background(), nil, &dto.CampaignSimilarityRequest{
		CampaignID: "camp-1",
		MatchCount: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalMatches)
	assert.Equal(t, "camp-1", resp.SearchParameters["campaign_id"])
	assert.Equal(t, 0.5, resp.SearchParameters["match_threshold"])
	assert.Equal(t, 2, resp.SearchParameters["match_count"])
}

func TestGenerateCreatorEmbedding(t *testing.T) {
	t.Parallel()

	repo := newStubCreatorRepo()
	repo.creators["c1"] = &models.Creator{ID: "c1", Name: "Jordan", Niche: "Fitness"}

	svc := NewMatchingService(&stubEmbedder{vector: []float32{0.5, 0.25}}, repo, newStubCampaignRepo(), DefaultTuning(), MatchingDefaults{})

	err := svc.GenerateCreatorEmbedding(context.Background(), nil, "c1")
	require.NoError(t, err)

	require.Contains(t, repo.updated, "c1")
	assert.Equal(t, []float64{0.5, 0.25}, repo.updated["c1"])
}

func TestGenerateCreatorEmbeddingUnknownCreator(t *testing.T) {
	t.Parallel()

	svc := NewMatchingService(&stubEmbedder{vector: []float32{0.5}}, newStubCreatorRepo(), newStubCampaignRepo(), DefaultTuning(), MatchingDefaults{})

	err := svc.GenerateCreatorEmbedding(context.Background(), nil, "nope")
	assert.ErrorIs(t, err, apperrors.ErrCreatorNotFound)
}

func TestGenerateCreatorEmbeddingSurfacesFailure(t *testing.T) {
	t.Parallel()

	repo := newStubCreatorRepo()
	repo.creators["c1"] = &models.Creator{ID: "c1", Name: "Jordan"}

	svc := NewMatchingService(&stubEmbedder{err: errors.New("quota exceeded")}, repo, newStubCampaignRepo(), DefaultTuning(), MatchingDefaults{})

	err := svc.GenerateCreatorEmbedding(context.Background(), nil, "c1")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Empty(t, repo.updated)
}
