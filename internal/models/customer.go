package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Customer is the minimal directory record tasks reference. The reference is
// weak: tasks keep a nullable id and render an empty name when the customer
// is gone.
type Customer struct {
	ID       uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	HubID    uuid.UUID `json:"hub_id" gorm:"type:uuid;not null;index"`
	Name     string    `json:"name" gorm:"not null"`
	IsActive bool      `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Customer) TableName() string {
	return "customers"
}
