package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskModel mirrors the 'tasks' table.
type TaskModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	DueDate     *time.Time `gorm:"type:timestamptz"`
	Priority    string     `gorm:"type:varchar(16);not null;default:'Medium'"`
	Status      string     `gorm:"type:varchar(16);not null;default:'Pending'"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;index"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
