// Package model contains the GORM-specific structs of the persistence layer.
package model

import "time"

// PreferenceModel is the GORM-specific struct for the 'preferences' table.
// Value holds the serialized preference blob as jsonb.
type PreferenceModel struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName overrides the table name used by PreferenceModel.
func (PreferenceModel) TableName() string {
	return "preferences"
}
