package config

import (
	"path/filepath"
	"testing"

	"restaurant-api/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDBInstallsSlotIndex(t *testing.T) {
	db, err := OpenDB(DBConfig{Driver: "sqlite", Source: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)

	user := models.User{Email: "a@example.com", Username: "a", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	table := 5
	first := models.Reservation{UserID: user.ID, ReservationDate: "2030-01-01", ReservationTime: "18:00",
		PartySize: 2, TableNumber: &table, Status: models.ReservationConfirmed}
	require.NoError(t, db.Create(&first).Error)

	// a pending reservation on the same slot does not hold the table
	pending := first
	pending.ID = 0
	pending.Status = models.ReservationPending
	require.NoError(t, db.Create(&pending).Error)

	seated := first
	seated.ID = 0
	seated.Status = models.ReservationSeated
	assert.Error(t, db.Create(&seated).Error)
}

func TestOpenDBUnknownDriver(t *testing.T) {
	_, err := OpenDB(DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestSeedMenuIdempotent(t *testing.T) {
	db, err := OpenDB(DBConfig{Source: filepath.Join(t.TempDir(), "seed.db")})
	require.NoError(t, err)

	n, err := SeedMenu(db)
	require.NoError(t, err)
	assert.Equal(t, len(sampleMenu), n)

	n, err = SeedMenu(db)
	require.NoError(t, err)
	assert.Zero(t, n)

	var pizza models.MenuItem
	require.NoError(t, db.Where("name = ?", "Margherita Pizza").First(&pizza).Error)
	assert.True(t, pizza.Price.Equal(decimal.RequireFromString("12.99")))
}

func TestSeedAdmin(t *testing.T) {
	db, err := OpenDB(DBConfig{Source: filepath.Join(t.TempDir(), "admin.db")})
	require.NoError(t, err)

	require.NoError(t, SeedAdmin(db, AdminSeed{}))
	require.NoError(t, SeedAdmin(db, AdminSeed{Email: "root@example.com", Password: "secret123"}))
	require.NoError(t, SeedAdmin(db, AdminSeed{Email: "root@example.com", Password: "secret123"}))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin())
}
