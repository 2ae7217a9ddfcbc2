package services

import (
	"context"
	"errors"

	"github.com/dsaidinesh/influencerflow/internal/embeddings"
	"github.com/dsaidinesh/influencerflow/internal/logger"
	"github.com/dsaidinesh/influencerflow/internal/repositories"
	"github.com/dsaidinesh/influencerflow/internal/services/dto"
	"github.com/dsaidinesh/influencerflow/pkg/apperrors"

	"gorm.io/gorm"
)

// FallbackReason explains why a request was served synthetic results.
type FallbackReason string

const (
	FallbackNone            FallbackReason = ""
	FallbackNoCredentials   FallbackReason = "no_credentials"
	FallbackEmbeddingFailed FallbackReason = "embedding_failed"
	FallbackSearchFailed    FallbackReason = "search_failed"
	FallbackNoCandidates    FallbackReason = "no_candidates"
)

// MatchOutcome is the result of one matching run. Fallback tells the caller
// whether Matches are live rankings or the synthetic set, and Reason says why.
type MatchOutcome struct {
	Matches  []dto.InfluencerMatch
	Fallback bool
	Reason   FallbackReason
}

// Matcher is the matching strategy. The concrete strategy is chosen once at
// service construction and never re-evaluated per request.
type Matcher interface {
	Match(ctx context.Context, db *gorm.DB, campaign *dto.MatchingCampaign, threshold float64, count int) MatchOutcome
}

type MatchingService interface {
	SimilaritySearch(ctx context.Context, db *gorm.DB, req *dto.SimilaritySearchRequest) (*dto.SimilaritySearchResponse, error)
	CampaignSimilaritySearch(ctx context.Context, db *gorm.DB, req *dto.CampaignSimilarityRequest) (*dto.SimilaritySearchResponse, error)
	GenerateCreatorEmbedding(ctx context.Context, db *gorm.DB, creatorID string) error
}

// MatchingDefaults are the request-level knobs applied when a caller omits
// them. They are distinct from Tuning, which shapes the score formulas.
type MatchingDefaults struct {
	Threshold float64
	Count     int
}

func (d MatchingDefaults) Normalize() MatchingDefaults {
	if d.Threshold <= 0 {
		d.Threshold = 0.5
	}
	if d.Count <= 0 {
		d.Count = 10
	}
	return d
}

type MatchingServiceImpl struct {
	matcher      Matcher
	embedder     embeddings.Embedder // nil when running synthetic-only
	creatorRepo  repositories.CreatorRepository
	campaignRepo repositories.CampaignRepository
	defaults     MatchingDefaults
}

// NewMatchingService wires the matching pipeline. When embedder is nil the
// synthetic strategy is installed; otherwise the live strategy runs and
// degrades to synthetic results per request on failure.
func NewMatchingService(
	embedder embeddings.Embedder,
	creatorRepo repositories.CreatorRepository,
	campaignRepo repositories.CampaignRepository,
	tuning Tuning,
	defaults MatchingDefaults,
) MatchingService {
	var matcher Matcher
	if embedder == nil {
		matcher = NewSyntheticMatcher(FallbackNoCredentials)
	} else {
		matcher = NewLiveMatcher(embedder, creatorRepo, tuning)
	}

	return &MatchingServiceImpl{
		matcher:      matcher,
		embedder:     embedder,
		creatorRepo:  creatorRepo,
		campaignRepo: campaignRepo,
		defaults:     defaults.Normalize(),
	}
}

func (s *MatchingServiceImpl) SimilaritySearch(ctx context.Context, db *gorm.DB, req *dto.SimilaritySearchRequest) (*dto.SimilaritySearchResponse, error) {
	threshold := s.defaults.Threshold
	count := s.defaults.Count

	outcome := s.matcher.Match(ctx, db, dto.RequestToMatchingDTO(req), threshold, count)

	logger.CtxInfo(ctx, "Similarity search completed",
		"product", req.ProductName,
		"matches", len(outcome.Matches),
		"fallback", outcome.Fallback)

	return buildSearchResponse(outcome, map[string]interface{}{
		"match_threshold": threshold,
		"match_count":     count,
	}), nil
}

func (s *MatchingServiceImpl) CampaignSimilaritySearch(ctx context.Context, db *gorm.DB, req *dto.CampaignSimilarityRequest) (*dto.SimilaritySearchResponse, error) {
	campaign, err := s.campaignRepo.FindByID(db, req.CampaignID)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	threshold := req.MatchThreshold
	if threshold <= 0 {
		threshold = s.defaults.Threshold
	}
	count := req.MatchCount
	if count <= 0 {
		count = s.defaults.Count
	}

	outcome := s.matcher.Match(ctx, db, dto.CampaignToMatchingDTO(campaign), threshold, count)

	logger.CtxInfo(ctx, "Campaign similarity search completed",
		"campaign_id", req.CampaignID,
		"matches", len(outcome.Matches),
		"fallback", outcome.Fallback)

	return buildSearchResponse(outcome, map[string]interface{}{
		"campaign_id":     req.CampaignID,
		"match_threshold": threshold,
		"match_count":     count,
	}), nil
}

// GenerateCreatorEmbedding recomputes and stores the profile vector for one
// creator. Unlike the search paths, failures here surface to the caller.
func (s *MatchingServiceImpl) GenerateCreatorEmbedding(ctx context.Context, db *gorm.DB, creatorID string) error {
	creator, err := s.creatorRepo.FindByID(db, creatorID)
	if err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return apperrors.ErrCreatorNotFound
		}
		return apperrors.InternalError(err)
	}

	if s.embedder == nil {
		return apperrors.ErrEmbeddingFailed.WithDetails("no embedding backend configured")
	}

	vector, err := s.embedder.Embed(ctx, BuildCreatorText(creator))
	if err != nil {
		logger.CtxWithError(ctx, "Embedding generation failed", err, "creator_id", creatorID)
		return apperrors.ErrEmbeddingFailed.WithDetails(err.Error())
	}

	if err := s.creatorRepo.UpdateEmbedding(db, creatorID, float32sTo64(vector)); err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return apperrors.ErrCreatorNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Creator embedding updated", "creator_id", creatorID, "dimensions", len(vector))
	return nil
}

func buildSearchResponse(outcome MatchOutcome, params map[string]interface{}) *dto.SimilaritySearchResponse {
	params["fallback"] = outcome.Fallback
	if outcome.Fallback {
		params["fallback_reason"] = string(outcome.Reason)
	}

	return &dto.SimilaritySearchResponse{
		Matches:          outcome.Matches,
		TotalMatches:     len(outcome.Matches),
		SearchParameters: params,
	}
}

func float32sTo64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// ========================
// Live strategy
// ========================

// LiveMatcher embeds the campaign profile, queries the vector store and
// scores each surviving candidate. Any failure along the pipeline degrades
// to the synthetic set instead of an error.
type LiveMatcher struct {
	embedder    embeddings.Embedder
	creatorRepo repositories.CreatorRepository
	tuning      Tuning
}

func NewLiveMatcher(embedder embeddings.Embedder, creatorRepo repositories.CreatorRepository, tuning Tuning) *LiveMatcher {
	return &LiveMatcher{
		embedder:    embedder,
		creatorRepo: creatorRepo,
		tuning:      tuning.Normalize(),
	}
}

func (m *LiveMatcher) Match(ctx context.Context, db *gorm.DB, campaign *dto.MatchingCampaign, threshold float64, count int) MatchOutcome {
	// Caller cancellation must abandon the store queries, not just the
	// embedding call.
	db = db.WithContext(ctx)

	vector, err := m.embedder.Embed(ctx, BuildCampaignText(campaign))
	if err != nil {
		logger.CtxWarn(ctx, "Campaign embedding failed, serving fallback", "error", err.Error())
		return syntheticOutcome(FallbackEmbeddingFailed, count)
	}

	candidates, err := m.creatorRepo.MatchByEmbedding(db, float32sTo64(vector), threshold, count)
	if err != nil {
		logger.CtxWarn(ctx, "Vector search failed, serving fallback", "error", err.Error())
		return syntheticOutcome(FallbackSearchFailed, count)
	}
	if len(candidates) == 0 {
		logger.CtxInfo(ctx, "No candidates above threshold, serving fallback", "threshold", threshold)
		return syntheticOutcome(FallbackNoCandidates, count)
	}

	matches := make([]dto.InfluencerMatch, 0, len(candidates))
	for _, candidate := range candidates {
		creator, err := m.creatorRepo.FindByID(db, candidate.CreatorID)
		if err != nil {
			// A candidate deleted between search and scoring is skipped, not fatal.
			logger.CtxWarn(ctx, "Skipping unresolvable candidate",
				"creator_id", candidate.CreatorID,
				"error", err.Error())
			continue
		}
		matches = append(matches, ScoreCandidate(creator, candidate.Similarity, campaign.TotalBudget, m.tuning))
	}

	if len(matches) == 0 {
		return syntheticOutcome(FallbackNoCandidates, count)
	}

	return MatchOutcome{
		Matches:  RankMatches(matches, count),
		Fallback: false,
		Reason:   FallbackNone,
	}
}

// ========================
// Synthetic strategy
// ========================

// SyntheticMatcher always serves the fixed sample set. It is installed as the
// primary strategy when no embedding backend is configured, and reused by the
// live strategy for per-request degradation.
type SyntheticMatcher struct {
	reason FallbackReason
}

func NewSyntheticMatcher(reason FallbackReason) *SyntheticMatcher {
	return &SyntheticMatcher{reason: reason}
}

func (m *SyntheticMatcher) Match(ctx context.Context, _ *gorm.DB, _ *dto.MatchingCampaign, _ float64, count int) MatchOutcome {
	logger.CtxDebug(ctx, "Serving synthetic matches", "reason", string(m.reason))
	return syntheticOutcome(m.reason, count)
}

func syntheticOutcome(reason FallbackReason, count int) MatchOutcome {
	return MatchOutcome{
		Matches:  RankMatches(SyntheticMatches(), count),
		Fallback: true,
		Reason:   reason,
	}
}

// SyntheticMatches returns a fresh copy of the sample result set. Structure
// and formatting are identical to live results.
func SyntheticMatches() []dto.InfluencerMatch {
	return []dto.InfluencerMatch{
		{
			ID:                "8f14e45f-ceea-467f-a8cb-9c1a1a4a8f21",
			InfluencerName:    "Mia Martinez (@mia_martinez838)",
			MatchScore:        "78.31%",
			Niche:             "Fitness",
			Followers:         "374K",
			Engagement:        "5.9%",
			CollaborationRate: "$3769",
			DetailedScores: dto.DetailedScores{
				NicheMatch:      "91.60%",
				AudienceMatch:   "43.00%",
				EngagementScore: "82.00%",
				BudgetFit:       "100.00%",
			},
		},
		{
			ID:                "45c48cce-2e2d-4fbd-aa1a-fb0f98a5bb9d",
			InfluencerName:    "TechGuy (@techguy_reviews)",
			MatchScore:        "75.42%",
			Niche:             "Technology",
			Followers:         "220K",
			Engagement:        "4.2%",
			CollaborationRate: "$2500",
			DetailedScores: dto.DetailedScores{
				NicheMatch:      "85.30%",
				AudienceMatch:   "68.50%",
				EngagementScore: "72.00%",
				BudgetFit:       "95.00%",
			},
		},
		{
			ID:                "d3d94468-02a4-4259-b55d-38e6d163e820",
			InfluencerName:    "Lifestyle Sarah (@sarahlifestyle)",
			MatchScore:        "67.88%",
			Niche:             "Fashion",
			Followers:         "528K",
			Engagement:        "3.8%",
			CollaborationRate: "$4200",
			DetailedScores: dto.DetailedScores{
				NicheMatch:      "62.40%",
				AudienceMatch:   "78.20%",
				EngagementScore: "65.00%",
				BudgetFit:       "82.00%",
			},
		},
	}
}
