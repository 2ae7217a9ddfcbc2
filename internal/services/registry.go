package services

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService     AuthService
	CreatorService  CreatorService
	CampaignService CampaignService
	MatchingService MatchingService
}
