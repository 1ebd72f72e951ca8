// Package store holds the gorm-backed persistence layer: one row per
// precompute run (C1-C5) and one row per dataset made available for
// draft evaluation, with uuid primary keys, gorm tags, and embedded
// timestamps throughout.
package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrecomputeRun records one execution of the C1-C5 pipeline: which
// patch it covered, how many games fed it, where its artifact lives,
// and whether it succeeded.
type PrecomputeRun struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Patch        string `json:"patch" gorm:"index;not null"`
	SampleSize   int    `json:"sample_size"`
	ArtifactPath string `json:"artifact_path" gorm:"not null"` // blobstore key of the generated artifact

	Status       string `json:"status" gorm:"not null;default:'pending'"` // pending, succeeded, failed
	ErrorMessage string `json:"error_message"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// DatasetView registers a dataset backing draftresult.Analyzer calls:
// the draft engine never reads match rows directly, only through the
// opaque Dataset/Analyzer boundary this row identifies.
type DatasetView struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name       string `json:"name" gorm:"uniqueIndex;not null"`
	SourceKey  string `json:"source_key" gorm:"not null"` // blobstore key of the underlying rows
	PatchScope string `json:"patch_scope"`

	IsActive bool `json:"is_active" gorm:"default:true"`
}

// DatasetHandle adapts a DatasetView row to draftresult.Dataset
// without colliding gorm's Name column with an interface method.
type DatasetHandle struct {
	View DatasetView
}

// Name implements draftresult.Dataset.
func (h DatasetHandle) Name() string { return h.View.Name }

// BeforeCreate assigns a uuid before insert on drivers (sqlite) whose
// column default can't evaluate postgres's gen_random_uuid().
func (r *PrecomputeRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate assigns a uuid before insert on drivers (sqlite) whose
// column default can't evaluate postgres's gen_random_uuid().
func (v *DatasetView) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
