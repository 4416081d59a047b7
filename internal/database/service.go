package database

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrTokenNotFound = errors.New("no stored token")

type Service struct {
	db *gorm.DB
}

// NewService opens the token store described by config and migrates it
func NewService(config *Config) (*Service, error) {
	if config == nil {
		return nil, fmt.Errorf("token store configuration is required")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid token store configuration: %w", err)
	}

	var dialector gorm.Dialector
	switch config.Driver {
	case DriverMySQL:
		dialector = mysql.Open(config.DSN())
	default:
		dialector = sqlite.Open(config.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s token store: %w", config.Driver, err)
	}

	if config.Driver != DriverMySQL {
		// every connection to :memory: opens a separate database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Service{db: db}, nil
}

// SaveTokenConfig saves or updates the token for config.ClientID
func (s *Service) SaveTokenConfig(config *TokenConfig) error {
	var existing TokenConfig
	if err := s.db.Where("client_id = ?", config.ClientID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.db.Create(config).Error
		}
		return err
	}

	config.ID = existing.ID
	config.CreatedAt = existing.CreatedAt
	return s.db.Save(config).Error
}

// GetTokenConfig retrieves the token stored for a client ID
func (s *Service) GetTokenConfig(clientID string) (*TokenConfig, error) {
	var config TokenConfig
	if err := s.db.Where("client_id = ?", clientID).First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %s: %w", clientID, ErrTokenNotFound)
		}
		return nil, err
	}

	return &config, nil
}

// DeleteTokenConfig removes the token stored for a client ID
func (s *Service) DeleteTokenConfig(clientID string) error {
	return s.db.Where("client_id = ?", clientID).Delete(&TokenConfig{}).Error
}

// Close closes the database connection
func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
