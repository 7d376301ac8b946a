package domain

import (
	"github.com/launchlist/waitlist-api/config"
	"github.com/launchlist/waitlist-api/domain/monitoring"
	"github.com/launchlist/waitlist-api/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	appConfig.RouterService.MountController(monitoring.NewMonitoringController(appConfig.DB, appConfig.Logger, appConfig.Cache))
	appConfig.RouterService.MountController(waitlist.NewWaitlistController(appConfig.DB, appConfig.Logger, appConfig.Cache))
}
