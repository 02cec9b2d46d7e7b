package services

import (
	"errors"

	"business-hub/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// CustomerDirectory resolves weak customer references. A nil result with a
// nil error means the customer does not exist in the hub's scope.
type CustomerDirectory interface {
	Lookup(db *gorm.DB, hubID, customerID uuid.UUID) (*models.Customer, error)
	ListActive(db *gorm.DB, hubID uuid.UUID) ([]models.Customer, error)
}

type CustomerDirectoryImpl struct{}

func NewCustomerDirectory() *CustomerDirectoryImpl {
	return &CustomerDirectoryImpl{}
}

func (d *CustomerDirectoryImpl) Lookup(db *gorm.DB, hubID, customerID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := db.Where("hub_id = ? AND id = ?", hubID, customerID).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (d *CustomerDirectoryImpl) ListActive(db *gorm.DB, hubID uuid.UUID) ([]models.Customer, error) {
	var customers []models.Customer
	err := db.Where("hub_id = ? AND is_active = ?", hubID, true).
		Order("name").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
