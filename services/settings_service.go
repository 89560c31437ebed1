package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/sendbyop/sendbyop-backend/models"
	"github.com/sendbyop/sendbyop-backend/repositories"
)

// SettingsService guards the single platform-settings row. The row is
// created lazily with defaults on first read and only ever written through
// the validated update path.
type SettingsService struct {
	repo    repositories.SettingsRepository
	pricing *PricingService
}

func NewSettingsService(repo repositories.SettingsRepository, pricing *PricingService) *SettingsService {
	return &SettingsService{repo: repo, pricing: pricing}
}

func (s *SettingsService) GetSettings() (*models.PlatformSettings, error) {
	settings, err := s.repo.Get()
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	defaults := models.DefaultPlatformSettings()
	if err := s.repo.Create(&defaults); err != nil {
		return nil, err
	}
	log.Println("Platform settings not found, created defaults")
	return &defaults, nil
}

// UpdateSettings validates the incoming values and applies them atomically
// onto the live row. A validation failure leaves the row untouched.
func (s *SettingsService) UpdateSettings(updated *models.PlatformSettings, updatedBy string) (*models.PlatformSettings, error) {
	if err := s.pricing.ValidateSettings(updated); err != nil {
		return nil, err
	}
	current, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	current.MinPricePerKg = updated.MinPricePerKg
	current.MaxPricePerKg = updated.MaxPricePerKg
	current.TravelerSharePercentage = updated.TravelerSharePercentage
	current.PlatformSharePercentage = updated.PlatformSharePercentage
	current.VATPercentage = updated.VATPercentage
	current.PaymentTimeoutHours = updated.PaymentTimeoutHours
	current.AutoPayoutDelayHours = updated.AutoPayoutDelayHours
	current.CancellationDeadlineHours = updated.CancellationDeadlineHours
	current.CriticalCancellationHours = updated.CriticalCancellationHours
	current.RefundRateBeforeDeadline = updated.RefundRateBeforeDeadline
	current.InsuranceAmount = updated.InsuranceAmount
	current.CommissionPercentage = updated.CommissionPercentage
	current.LateCancellationPenalty = updated.LateCancellationPenalty
	current.MaxBookingsPerWeek = updated.MaxBookingsPerWeek
	current.MaxFlightsPerWeek = updated.MaxFlightsPerWeek
	current.FraudProtectionEnabled = updated.FraudProtectionEnabled
	current.ReceptionConfirmationHours = updated.ReceptionConfirmationHours
	current.ReviewDeadlineDays = updated.ReviewDeadlineDays
	current.UpdatedBy = updatedBy

	if err := s.repo.Save(current); err != nil {
		return nil, err
	}
	return current, nil
}
