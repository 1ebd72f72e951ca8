package store

import (
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kihw/draftlens/internal/config"
)

// Store wraps the gorm connection the server process uses to persist
// run history and dataset registrations.
type Store struct {
	DB *gorm.DB
}

// Open connects to the configured driver, runs AutoMigrate over every
// model, and tunes the connection pool for a long-lived server
// process.
func Open(cfg *config.Config) (*Store, error) {
	var db *gorm.DB
	var err error

	switch cfg.Database.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{})
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.GetDatabaseDSN()), &gorm.Config{})
	default:
		return nil, errors.New("store: unknown database driver " + cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&PrecomputeRun{}, &DatasetView{}); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping reports whether the database is reachable, used by /healthz.
func (s *Store) Ping() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// RecordRunStart inserts a pending PrecomputeRun and returns it.
func (s *Store) RecordRunStart(patch string, sampleSize int) (*PrecomputeRun, error) {
	run := &PrecomputeRun{
		Patch:      patch,
		SampleSize: sampleSize,
		Status:     "pending",
		StartedAt:  time.Now(),
	}
	if err := s.DB.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// RecordRunSuccess marks a run complete with its artifact's storage key.
func (s *Store) RecordRunSuccess(run *PrecomputeRun, artifactPath string) error {
	now := time.Now()
	return s.DB.Model(run).Updates(map[string]interface{}{
		"status":        "succeeded",
		"artifact_path": artifactPath,
		"completed_at":  &now,
	}).Error
}

// RecordRunFailure marks a run failed with the error that stopped it.
func (s *Store) RecordRunFailure(run *PrecomputeRun, cause error) error {
	now := time.Now()
	return s.DB.Model(run).Updates(map[string]interface{}{
		"status":        "failed",
		"error_message": cause.Error(),
		"completed_at":  &now,
	}).Error
}

// ActiveDataset returns the currently active dataset registration by
// name, or gorm.ErrRecordNotFound if none matches.
func (s *Store) ActiveDataset(name string) (*DatasetView, error) {
	var view DatasetView
	if err := s.DB.Where("name = ? AND is_active = ?", name, true).First(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

// ActivateDataset upserts a DatasetView by name and marks it active,
// deactivating every view with a different name. Used by
// the precompute endpoint to register which dataset a freshly loaded
// artifact should be served against.
func (s *Store) ActivateDataset(name, sourceKey, patchScope string) (*DatasetView, error) {
	return activateDataset(s.DB, name, sourceKey, patchScope)
}

func activateDataset(db *gorm.DB, name, sourceKey, patchScope string) (*DatasetView, error) {
	var view DatasetView
	err := db.Where("name = ?", name).First(&view).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		view = DatasetView{Name: name, SourceKey: sourceKey, PatchScope: patchScope, IsActive: true}
		if err := db.Create(&view).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		view.SourceKey = sourceKey
		view.PatchScope = patchScope
		view.IsActive = true
		if err := db.Save(&view).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Model(&DatasetView{}).Where("name <> ?", name).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

// LatestSucceededRun returns the most recently completed successful
// precompute run for a patch, or gorm.ErrRecordNotFound if none exist.
func (s *Store) LatestSucceededRun(patch string) (*PrecomputeRun, error) {
	var run PrecomputeRun
	if err := s.DB.Where("patch = ? AND status = ?", patch, "succeeded").
		Order("completed_at desc").First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
