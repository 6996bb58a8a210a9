package models

import (
	"time"

	"gorm.io/datatypes"
)

type ImportJob struct {
	ID               string `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FileName         string `gorm:"type:text;not null"`
	SourcePath       string `gorm:"type:text;not null"`
	ImportType       string `gorm:"type:text;not null"`
	Status           string `gorm:"type:text;not null;index"`
	RecordsProcessed int64  `gorm:"not null;default:0"`
	Errors           datatypes.JSON
	ErrorMessage     *string `gorm:"type:text"`
	StartedAt        *time.Time
	FinishedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ImportJob) TableName() string {
	return "import_jobs"
}
