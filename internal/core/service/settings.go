package service

import (
	"context"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/dto"
	"github.com/rafaelleal24/stockledger/internal/core/logger"
	"github.com/rafaelleal24/stockledger/internal/core/port"
)

type SettingsService struct {
	settingsRepository port.SettingsPort
}

func NewSettingsService(settingsRepository port.SettingsPort) *SettingsService {
	return &SettingsService{settingsRepository: settingsRepository}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.settingsRepository.Get(ctx)
}

// Update applies the provided fields only. The new threshold is the default
// for products added afterwards; existing products keep their own minimum.
func (s *SettingsService) Update(ctx context.Context, request *dto.UpdateSettingsRequest) (domain.Settings, error) {
	if err := dto.Validate(request); err != nil {
		return domain.Settings{}, err
	}

	settings, err := s.settingsRepository.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if request.LowStockThreshold != nil {
		settings.LowStockThreshold = *request.LowStockThreshold
	}
	if request.Currency != nil {
		settings.Currency = *request.Currency
	}
	if request.EmailNotifications != nil {
		settings.EmailNotifications = *request.EmailNotifications
	}
	if request.LowStockAlerts != nil {
		settings.LowStockAlerts = *request.LowStockAlerts
	}

	if err := s.settingsRepository.Save(ctx, settings); err != nil {
		logger.Error(ctx, "settings: save failed", err, nil)
		return domain.Settings{}, err
	}

	logger.Info(ctx, "Settings updated", map[string]any{
		"low_stock_threshold": settings.LowStockThreshold,
		"currency":            settings.Currency,
	})
	return settings, nil
}
