package models

import (
	"time"

	"gorm.io/datatypes"
)

// ImportRun records one import invocation with its summary counters, so
// operators can audit what a given file actually did.
type ImportRun struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind        string         `gorm:"size:20;not null;index" json:"kind"` // "products", "relations", "vehicles"
	Target      string         `gorm:"size:50" json:"target"`              // product type tag or file set
	Source      string         `gorm:"size:255" json:"source"`             // file path as given
	DryRun      bool           `gorm:"default:false" json:"dryRun"`
	StartedAt   time.Time      `gorm:"not null" json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt"`
	Counters    datatypes.JSON `gorm:"type:jsonb" json:"counters"`
}

func (ImportRun) TableName() string { return "import_runs" }
