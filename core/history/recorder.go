package history

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DefaultLimit caps Recent when no positive limit is given.
const DefaultLimit = 100

// Recorder stores and queries reconcile records.
type Recorder interface {
	// Record stores rec.
	Record(ctx context.Context, rec *Record) error
	// Recent returns the newest records first.
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// New returns a GORM recorder for db, or Nop when db is nil.
func New(db *gorm.DB) Recorder {
	if db == nil {
		return Nop{}
	}
	return NewGormRecorder(db)
}

// GormRecorder stores records through GORM.
type GormRecorder struct {
	db *gorm.DB
}

// NewGormRecorder creates a recorder on db.
func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{db: db}
}

// Migrate creates or updates the history table.
func (r *GormRecorder) Migrate() error {
	if err := r.db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate history table: %w", err)
	}
	return nil
}

// Record implements Recorder.
func (r *GormRecorder) Record(ctx context.Context, rec *Record) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to record %s %s/%s: %w", rec.Action, rec.Kind, rec.Name, err)
	}
	return nil
}

// Recent implements Recorder.
func (r *GormRecorder) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var records []Record
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return records, nil
}

// Nop discards records.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, *Record) error { return nil }

// Recent implements Recorder.
func (Nop) Recent(context.Context, int) ([]Record, error) { return []Record{}, nil }
