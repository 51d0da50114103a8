package services

import (
	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
	portssvc "github.com/HPG21/czp-releases/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings first: the other services read defaults and card toggles from it
	container.Settings = NewSettingsService(repos.SettingsRepo)

	container.Calculation = NewCalculationService(
		repos.CalculationRepo,
		WithSettingsReader(container.Settings),
	)

	container.Analytics = NewAnalyticsService(
		repos.CalculationRepo,
		WithAnalyticsSettings(container.Settings),
	)

	return container
}
