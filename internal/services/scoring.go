package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dsaidinesh/influencerflow/internal/models"
	"github.com/dsaidinesh/influencerflow/internal/services/dto"
)

// Tuning holds the scoring knobs. Values come from config; the zero value is
// normalized to the standard profile by Normalize.
type Tuning struct {
	NicheBoost          float64 // similarity multiplier for niche_match
	AudienceDamp        float64 // similarity multiplier for audience_match
	CreatorsPerCampaign int     // budget divisor for budget_fit tiers
}

func DefaultTuning() Tuning {
	return Tuning{
		NicheBoost:          1.2,
		AudienceDamp:        0.9,
		CreatorsPerCampaign: 10,
	}
}

func (t Tuning) Normalize() Tuning {
	if t.NicheBoost == 0 {
		t.NicheBoost = 1.2
	}
	if t.AudienceDamp == 0 {
		t.AudienceDamp = 0.9
	}
	if t.CreatorsPerCampaign <= 0 {
		t.CreatorsPerCampaign = 10
	}
	return t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatPercent renders a [0,1] fraction as "NN.NN%".
func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

// parsePercent is the inverse of formatPercent; malformed input ranks last.
func parsePercent(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0
	}
	return v
}

// BuildCampaignText assembles the canonical campaign profile text used for
// embedding. Field order is fixed so identical campaigns embed identically.
func BuildCampaignText(campaign *dto.MatchingCampaign) string {
	lines := []string{
		"Product: " + campaign.ProductName,
		"Brand: " + campaign.BrandName,
		"Description: " + campaign.ProductDescription,
		"Target Audience: " + campaign.TargetAudience,
		"Key Use Cases: " + strings.Join(campaign.KeyUseCases, ", "),
		"Campaign Goal: " + campaign.CampaignGoal,
		"Product Niche: " + campaign.ProductNiche,
	}
	return strings.Join(lines, "\n")
}

// BuildCreatorText assembles the canonical creator profile text used for
// embedding, mirroring BuildCampaignText's fixed-order convention.
func BuildCreatorText(creator *models.Creator) string {
	lines := []string{
		"Name: " + creator.Name,
		"Platform: " + string(creator.Platform),
		"Niche: " + creator.Niche,
		"About: " + creator.About,
		"Followers: " + creator.FollowersCount,
		"Engagement Rate: " + formatRate(creator.EngagementRate),
		"Country: " + creator.Country,
		"Language: " + creator.Language,
	}
	return strings.Join(lines, "\n")
}

// formatRate renders an engagement rate with its stored precision, so 5.9
// stays "5.9%" and 4.25 stays "4.25%".
func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

// budgetFitTier maps a creator's asking rate against the per-creator budget
// slice. A rate of zero or below means no stated rate and fits any budget.
func budgetFitTier(totalBudget, rate float64, creatorsPerCampaign int) float64 {
	if rate <= 0 {
		return 1.0
	}
	if creatorsPerCampaign <= 0 {
		creatorsPerCampaign = 10
	}
	perCreator := totalBudget / float64(creatorsPerCampaign)

	switch {
	case rate <= perCreator*1.2:
		return 1.0
	case rate <= perCreator*2:
		return 0.7
	case rate <= perCreator*3:
		return 0.4
	default:
		return 0.2
	}
}

// ScoreCandidate turns one similarity hit into a fully formatted match row.
func ScoreCandidate(creator *models.Creator, similarity float64, totalBudget float64, tuning Tuning) dto.InfluencerMatch {
	tuning = tuning.Normalize()

	nicheMatch := clamp01(similarity * tuning.NicheBoost)
	audienceMatch := clamp01(similarity * tuning.AudienceDamp)
	engagementScore := clamp01(creator.EngagementRate / 10)
	budgetFit := budgetFitTier(totalBudget, creator.CollaborationRate, tuning.CreatorsPerCampaign)

	name := creator.Name
	if creator.ChannelName != "" {
		name = fmt.Sprintf("%s (@%s)", creator.Name, creator.ChannelName)
	}

	return dto.InfluencerMatch{
		ID:                creator.ID,
		InfluencerName:    name,
		MatchScore:        formatPercent(clamp01(similarity)),
		Niche:             creator.Niche,
		Followers:         creator.FollowersCount,
		Engagement:        formatRate(creator.EngagementRate),
		CollaborationRate: fmt.Sprintf("$%.0f", creator.CollaborationRate),
		DetailedScores: dto.DetailedScores{
			NicheMatch:      formatPercent(nicheMatch),
			AudienceMatch:   formatPercent(audienceMatch),
			EngagementScore: formatPercent(engagementScore),
			BudgetFit:       formatPercent(budgetFit),
		},
	}
}

// RankMatches orders matches by overall score descending and truncates to
// count. The sort is stable so equal scores keep their arrival order.
func RankMatches(matches []dto.InfluencerMatch, count int) []dto.InfluencerMatch {
	sort.SliceStable(matches, func(i, j int) bool {
		return parsePercent(matches[i].MatchScore) > parsePercent(matches[j].MatchScore)
	})

	if count > 0 && len(matches) > count {
		matches = matches[:count]
	}
	return matches
}
