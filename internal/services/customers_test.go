package services_test

import (
	"testing"

	"business-hub/backend/internal/models"
	"business-hub/backend/internal/services"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerLookup_MissingIsNilNil(t *testing.T) {
	db := setupTestDB(t)
	dir := services.NewCustomerDirectory()

	customer, err := dir.Lookup(db, uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
	require.NoError(t, err)
	assert.Nil(t, customer)
}

func TestCustomerLookup_HubScoped(t *testing.T) {
	db := setupTestDB(t)
	dir := services.NewCustomerDirectory()
	hubA := uuid.Must(uuid.NewV4())
	hubB := uuid.Must(uuid.NewV4())

	customer := models.Customer{ID: uuid.Must(uuid.NewV4()), HubID: hubA, Name: "Acme", IsActive: true}
	require.NoError(t, db.Create(&customer).Error)

	found, err := dir.Lookup(db, hubA, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Acme", found.Name)

	leaked, err := dir.Lookup(db, hubB, customer.ID)
	require.NoError(t, err)
	assert.Nil(t, leaked)
}

func TestCustomerListActive(t *testing.T) {
	db := setupTestDB(t)
	dir := services.NewCustomerDirectory()
	hubID := uuid.Must(uuid.NewV4())

	for _, c := range []models.Customer{
		{ID: uuid.Must(uuid.NewV4()), HubID: hubID, Name: "Zeta", IsActive: true},
		{ID: uuid.Must(uuid.NewV4()), HubID: hubID, Name: "Alpha", IsActive: true},
		{ID: uuid.Must(uuid.NewV4()), HubID: hubID, Name: "Dormant", IsActive: false},
	} {
		require.NoError(t, db.Create(&c).Error)
	}

	active, err := dir.ListActive(db, hubID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Alpha", active[0].Name)
	assert.Equal(t, "Zeta", active[1].Name)
}
