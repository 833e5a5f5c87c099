package projects

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "projects.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s := NewStore(db, log.New(io.Discard))
	require.NoError(t, s.Migrate())
	return s, db
}

func createTestConfig() *Config {
	return &Config{
		Project: &ProjectConfig{
			Name:       "mosaic",
			Repository: "robby/mosaic",
		},
		Readme: &ReadmeConfig{Path: "README.md"},
		Packages: []PackageConfig{
			{Name: "mosaic-cli", Type: PackageTypeCargo, Path: "crates/cli"},
		},
	}
}

func TestStore_PutAndGet(t *testing.T) {
	s, _ := newTestStore(t)
	id := uuid.New()

	require.NoError(t, s.Put(context.Background(), id, createTestConfig()))

	cfg, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, createTestConfig(), cfg)
}

func TestStore_PutOverwrites(t *testing.T) {
	s, _ := newTestStore(t)
	id := uuid.New()
	require.NoError(t, s.Put(context.Background(), id, createTestConfig()))

	updated := createTestConfig()
	updated.Project.Description = "Project pages from your repositories"
	require.NoError(t, s.Put(context.Background(), id, updated))

	cfg, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Project pages from your repositories", cfg.Project.Description)
}

func TestStore_GetNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	cfg, err := s.Get(context.Background(), uuid.New())

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_GetMalformedConfig(t *testing.T) {
	s, db := newTestStore(t)
	id := uuid.New()
	require.NoError(t, db.Exec("INSERT INTO projects (id, config) VALUES (?, ?)", id.String(), `{"packages": "not a list"}`).Error)

	cfg, err := s.Get(context.Background(), id)

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestStore_GetStorageFailure(t *testing.T) {
	s, db := newTestStore(t)
	require.NoError(t, db.Migrator().DropTable(&Project{}))

	_, err := s.Get(context.Background(), uuid.New())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrParse)
}
