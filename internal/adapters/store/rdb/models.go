package rdb

import "time"

// ApplicationRecord is the RDB persistence model for domain Application.
// Table name: applications
type ApplicationRecord struct {
	ID                  string    `gorm:"primaryKey;type:text;not null"`
	Slug                string    `gorm:"type:text;not null;uniqueIndex"`
	Name                string    `gorm:"type:text;not null"`
	Description         string    `gorm:"type:text"`
	Status              string    `gorm:"type:text;not null"`
	DefaultLaunchConfig string    `gorm:"type:text"` // YAML document
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

func (ApplicationRecord) TableName() string { return "applications" }
