package service

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"alerting-platform/internal/clock"
	"alerting-platform/internal/config"
	"alerting-platform/internal/domain"
	"alerting-platform/internal/repository"
	"alerting-platform/internal/service/alert"
	"alerting-platform/internal/service/analytics"
	"alerting-platform/internal/service/channel"
	"alerting-platform/internal/service/directory"
	"alerting-platform/internal/service/notification"
	"alerting-platform/internal/service/preference"
)

type Services struct {
	Alert        alert.Service
	Notification notification.Service
	Preference   preference.Service
	Analytics    analytics.Service
	Directory    directory.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, cfg *config.Config, clk clock.Clock, logger *zap.Logger) *Services {
	registry := channel.NewRegistry(
		channel.NewNotifier(domain.ChannelInApp, channel.NewInAppTransport(), repos.Delivery, repos.Preference, clk, logger),
		channel.NewNotifier(domain.ChannelEmail, channel.NewEmailTransport(cfg), repos.Delivery, repos.Preference, clk, logger),
		channel.NewNotifier(domain.ChannelSMS, channel.NewSMSTransport(cfg), repos.Delivery, repos.Preference, clk, logger),
	)

	notificationService := notification.NewService(repos.User, repos.Preference, registry, clk, logger)
	alertService := alert.NewService(repos.Alert, repos.User, repos.Preference, notificationService, clk, cfg.ReminderLookback, logger)
	preferenceService := preference.NewService(repos.Preference, clk, logger)
	analyticsService := analytics.NewService(repos.Alert, repos.Delivery, repos.Preference, redis, cfg.AnalyticsCacheTTL)
	directoryService := directory.NewService(repos.User, repos.Team)

	return &Services{
		Alert:        alertService,
		Notification: notificationService,
		Preference:   preferenceService,
		Analytics:    analyticsService,
		Directory:    directoryService,
	}
}
