package projects

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates no project row has the requested ID.
	ErrNotFound = errors.New("project not found")
	// ErrParse indicates a project config could not be decoded.
	ErrParse = errors.New("could not parse project config")
)

// Project is a row of the projects table.
type Project struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Config rawConfig `gorm:"type:jsonb;not null"`
}

// TableName pins the table name.
func (Project) TableName() string {
	return "projects"
}

// rawConfig holds the config column undecoded so that a malformed value
// surfaces as ErrParse rather than a scan failure.
type rawConfig []byte

// Value implements driver.Valuer.
func (r rawConfig) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	return []byte(r), nil
}

// Scan implements sql.Scanner.
func (r *rawConfig) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*r = nil
	case []byte:
		*r = append((*r)[0:0], v...)
	case string:
		*r = rawConfig(v)
	default:
		return fmt.Errorf("unsupported config column type %T", value)
	}
	return nil
}

// Store reads and writes project configs.
type Store struct {
	db     *gorm.DB
	logger *log.Logger
}

// NewStore wraps an open database.
func NewStore(db *gorm.DB, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{db: db, logger: logger}
}

// Open connects to the Postgres database at dsn.
func Open(dsn string, logger *log.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewStore(db, logger), nil
}

// Migrate creates the projects table if needed.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Project{})
}

// Get returns the config of project id.
// A missing row yields ErrNotFound and an undecodable config ErrParse.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Config, error) {
	var p Project
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("Failed to fetch project", "id", id, "err", err)
		return nil, fmt.Errorf("failed to fetch project %s: %w", id, err)
	}

	var cfg Config
	if err := json.Unmarshal(p.Config, &cfg); err != nil {
		s.logger.Error("Failed to parse config", "id", id, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &cfg, nil
}

// Put stores cfg as the config of project id, creating the row if needed.
func (s *Store) Put(ctx context.Context, id uuid.UUID, cfg *Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := s.db.WithContext(ctx).Save(&Project{ID: id, Config: data}).Error; err != nil {
		return fmt.Errorf("failed to save project %s: %w", id, err)
	}
	return nil
}
