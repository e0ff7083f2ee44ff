package services

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"restaurant-api/apperr"
	"restaurant-api/config"
	"restaurant-api/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.DBConfig{Driver: "sqlite", Source: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, staff bool) *models.User {
	t.Helper()
	u := models.User{Email: name + "@example.com", Username: name, PasswordHash: "x", IsActive: true, IsStaff: staff}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func createItem(t *testing.T, db *gorm.DB, name, price string) *models.MenuItem {
	t.Helper()
	it := models.MenuItem{Name: name, Price: decimal.RequireFromString(price), IsAvailable: true}
	require.NoError(t, db.Create(&it).Error)
	return &it
}

func scopeFor(t *testing.T, u *models.User) AdminScope {
	t.Helper()
	scope, err := AuthorizeAdmin(Principal{UserID: u.ID, Email: u.Email, IsStaff: u.IsStaff, IsSuperuser: u.IsSuperuser})
	require.NoError(t, err)
	return scope
}

func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func requireKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err), err.Error())
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	return e
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestAuthorizeAdmin(t *testing.T) {
	_, err := AuthorizeAdmin(Principal{UserID: 1})
	requireKind(t, err, apperr.KindForbidden)

	_, err = AuthorizeAdmin(Principal{IsStaff: true})
	requireKind(t, err, apperr.KindForbidden)

	scope, err := AuthorizeAdmin(Principal{UserID: 7, IsSuperuser: true})
	require.NoError(t, err)
	assert.Equal(t, uint(7), scope.ActorID())
	assert.NoError(t, scope.check())

	// the zero scope never passes
	requireKind(t, AdminScope{}.check(), apperr.KindForbidden)
}

func TestNewPage(t *testing.T) {
	p := newPage([]int{1, 2}, 5, 1, 2)
	require.NotNil(t, p.Next)
	assert.Equal(t, 2, *p.Next)
	assert.Nil(t, p.Previous)

	p = newPage([]int{5}, 5, 3, 2)
	assert.Nil(t, p.Next)
	require.NotNil(t, p.Previous)
	assert.Equal(t, 2, *p.Previous)

	empty := newPage[int](nil, 0, 1, 10)
	assert.NotNil(t, empty.Results)

	page, size := normalizePage(0, 1000)
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxPageSize, size)

	page, size = normalizePage(math.MaxInt, MaxPageSize)
	assert.Equal(t, MaxPage, page)
	assert.Equal(t, MaxPageSize, size)

	far := newPage[int](nil, 5, MaxPage, MaxPageSize)
	assert.Nil(t, far.Next)
	require.NotNil(t, far.Previous)
	assert.Equal(t, MaxPage-1, *far.Previous)
}
