package database

import (
	"testing"

	"rmclub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	db, err := Open("sqlite::memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	require.NoError(t, Ping(db))

	c := domain.Customer{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Status: domain.CustomerActive}
	require.NoError(t, db.Create(&c).Error)

	var got domain.Customer
	require.NoError(t, db.First(&got, "customer_id = ?", c.CustomerID).Error)
	assert.Equal(t, "Asha Rao", got.FullName())
}
