package repositories

import (
	"gorm.io/gorm"

	"github.com/sendbyop/sendbyop-backend/models"
)

// SettingsRepository manages the single platform-settings row.
type SettingsRepository interface {
	Get() (*models.PlatformSettings, error)
	Create(settings *models.PlatformSettings) error
	Save(settings *models.PlatformSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get() (*models.PlatformSettings, error) {
	var settings models.PlatformSettings
	if err := r.db.First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Create(settings *models.PlatformSettings) error {
	return r.db.Create(settings).Error
}

func (r *settingsRepository) Save(settings *models.PlatformSettings) error {
	return r.db.Save(settings).Error
}
