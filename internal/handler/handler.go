package handler

import "alerting-platform/internal/service"

type Handlers struct {
	Alert     *AlertHandler
	UserAlert *UserAlertHandler
	Directory *DirectoryHandler
	Analytics *AnalyticsHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Alert:     NewAlertHandler(services.Alert),
		UserAlert: NewUserAlertHandler(services.Alert, services.Preference),
		Directory: NewDirectoryHandler(services.Directory),
		Analytics: NewAnalyticsHandler(services.Analytics),
	}
}
