package history

import "time"

// Status values of a Record.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Record is one reconcile action on one resource.
type Record struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	RunID      string    `gorm:"column:run_id;size:36;index" json:"run_id"`
	Namespace  string    `gorm:"column:namespace;size:255" json:"namespace"`
	Kind       string    `gorm:"column:kind;size:64" json:"kind"`
	Name       string    `gorm:"column:name;size:255" json:"name"`
	Action     string    `gorm:"column:action;size:16" json:"action"`
	Status     string    `gorm:"column:status;size:16" json:"status"`
	Error      string    `gorm:"column:error;type:text" json:"error,omitempty"`
	DurationMs int64     `gorm:"column:duration_ms" json:"duration_ms"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name.
func (Record) TableName() string {
	return "reconcile_history"
}
