package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stretchr/testify/assert"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&PrecomputeRun{}, &DatasetView{}))
	return db
}

// TestActivateDatasetInsertsAndActivates covers the no-prior-row case:
// ActivateDataset must create a new DatasetView and mark it active.
func TestActivateDatasetInsertsAndActivates(t *testing.T) {
	db := newTestDB(t)

	view, err := activateDataset(db, "patch-15-20", "blob://patch-15-20.json", "15.20")
	require.NoError(t, err)
	assert.Equal(t, "patch-15-20", view.Name)
	assert.True(t, view.IsActive)
}

// TestActivateDatasetDeactivatesPreviousActiveView covers the
// singleton invariant: activating a second dataset must flip the first
// one's IsActive back to false.
func TestActivateDatasetDeactivatesPreviousActiveView(t *testing.T) {
	db := newTestDB(t)

	first, err := activateDataset(db, "patch-15-19", "blob://a.json", "15.19")
	require.NoError(t, err)
	require.True(t, first.IsActive)

	_, err = activateDataset(db, "patch-15-20", "blob://b.json", "15.20")
	require.NoError(t, err)

	var reloaded DatasetView
	require.NoError(t, db.First(&reloaded, "name = ?", "patch-15-19").Error)
	assert.False(t, reloaded.IsActive)
}

// TestActivateDatasetUpsertsExistingName covers re-activating a name
// that already has a row: it must update in place, not duplicate it.
func TestActivateDatasetUpsertsExistingName(t *testing.T) {
	db := newTestDB(t)

	_, err := activateDataset(db, "patch-15-20", "blob://old.json", "15.20")
	require.NoError(t, err)

	updated, err := activateDataset(db, "patch-15-20", "blob://new.json", "15.20")
	require.NoError(t, err)
	assert.Equal(t, "blob://new.json", updated.SourceKey)

	var count int64
	db.Model(&DatasetView{}).Where("name = ?", "patch-15-20").Count(&count)
	assert.Equal(t, int64(1), count)
}
