package database

import (
	"net"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// TokenConfig stores the OAuth2 token issued to a client ID
type TokenConfig struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	ClientID     string    `json:"client_id" gorm:"not null;uniqueIndex;size:255"`
	AccessToken  string    `json:"access_token" gorm:"not null"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type" gorm:"default:Bearer"`
	Expiry       time.Time `json:"expiry"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (TokenConfig) TableName() string {
	return "demo_token_configs"
}

// Config selects the token store backend. The default in-memory SQLite store keeps
// nothing once the process exits.
type Config struct {
	Driver   string `json:"driver" yaml:"driver"`
	Path     string `json:"path" yaml:"path"`
	Host     string `json:"host" yaml:"host"`
	Port     string `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
}

// DefaultConfig returns an in-memory SQLite configuration
func DefaultConfig() Config {
	return Config{
		Driver: DriverSQLite,
		Path:   ":memory:",
	}
}

// Validate validates the token store configuration
func (c Config) Validate() error {
	mysql := validation.When(c.Driver == DriverMySQL, validation.Required)

	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverSQLite, DriverMySQL)),
		validation.Field(&c.Path, validation.When(c.Driver == DriverSQLite, validation.Required)),
		validation.Field(&c.Host, mysql),
		validation.Field(&c.Port, mysql),
		validation.Field(&c.User, mysql),
		validation.Field(&c.Database, mysql),
	)
}

// DSN returns the driver specific data source name
func (c Config) DSN() string {
	if c.Driver == DriverMySQL {
		dsn := mysql.NewConfig()
		dsn.User = c.User
		dsn.Passwd = c.Password
		dsn.Net = "tcp"
		dsn.Addr = net.JoinHostPort(c.Host, c.Port)
		dsn.DBName = c.Database
		dsn.ParseTime = true
		dsn.Params = map[string]string{"charset": "utf8mb4"}

		return dsn.FormatDSN()
	}

	return c.Path
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&TokenConfig{})
}
