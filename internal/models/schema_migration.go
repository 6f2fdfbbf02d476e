package models

import "time"

// SchemaMigration marks a one-time data migration as applied.
type SchemaMigration struct {
	Name      string    `gorm:"size:100;primaryKey" json:"name"`
	AppliedAt time.Time `json:"applied_at"`
}
