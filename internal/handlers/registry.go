package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	CreatorHandler  *CreatorHandler
	CampaignHandler *CampaignHandler
	MatchingHandler *MatchingHandler
}
