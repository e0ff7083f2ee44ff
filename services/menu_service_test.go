package services

import (
	"context"
	"strings"
	"testing"

	"restaurant-api/apperr"
	"restaurant-api/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	keys []string
}

func (m *memStore) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	m.keys = append(m.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func TestMenuCreateAndList(t *testing.T) {
	db := newTestDB(t)
	scope := scopeFor(t, createUser(t, db, "boss", true))
	images := &memStore{}
	svc := NewMenuService(db, images)
	ctx := context.Background()

	_, err := svc.Create(ctx, AdminScope{}, CreateMenuItemInput{Name: "Tea", Price: decimal.NewFromInt(2)})
	requireKind(t, err, apperr.KindForbidden)
	_, err = svc.Create(ctx, scope, CreateMenuItemInput{Name: "Tea", Price: decimal.Zero})
	requireKind(t, err, apperr.KindValidation)
	_, err = svc.Create(ctx, scope, CreateMenuItemInput{Name: "Mint", Price: decimal.RequireFromString("0.004")})
	requireKind(t, err, apperr.KindValidation)
	_, err = svc.Create(ctx, scope, CreateMenuItemInput{Name: "Tea", Price: decimal.NewFromInt(2), Image: "not-a-data-url"})
	requireKind(t, err, apperr.KindValidation)

	off := false
	_, err = svc.Create(ctx, scope, CreateMenuItemInput{Name: "Secret Dish", Price: decimal.NewFromInt(30), IsAvailable: &off})
	require.NoError(t, err)
	item, err := svc.Create(ctx, scope, CreateMenuItemInput{
		Name:  "Apple Pie",
		Price: decimal.RequireFromString("4.5"),
		Image: "data:image/png;base64,iVBORw0KGgo=",
	})
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)
	require.Len(t, images.keys, 1)
	assert.True(t, strings.HasPrefix(item.ImageURL, "https://cdn.example.com/menu_images/"))

	public, err := svc.ListAvailable()
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Apple Pie", public[0].Name)

	all, err := svc.ListAll(scope)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMenuUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	scope := scopeFor(t, createUser(t, db, "boss", true))
	alice := createUser(t, db, "alice", false)
	svc := NewMenuService(db, nil)
	used := createItem(t, db, "Burger", "12.99")
	spare := createItem(t, db, "Salad", "7.00")

	negative := decimal.NewFromInt(-1)
	_, err := svc.Update(scope, used.ID, UpdateMenuItemInput{Price: &negative})
	requireKind(t, err, apperr.KindValidation)
	// rounds to 0.00
	tiny := decimal.RequireFromString("0.004")
	_, err = svc.Update(scope, used.ID, UpdateMenuItemInput{Price: &tiny})
	requireKind(t, err, apperr.KindValidation)
	_, err = svc.Update(scope, used.ID, UpdateMenuItemInput{})
	requireKind(t, err, apperr.KindBadRequest)

	price, off := decimal.RequireFromString("13.49"), false
	updated, err := svc.Update(scope, used.ID, UpdateMenuItemInput{Price: &price, IsAvailable: &off})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.False(t, updated.IsAvailable)

	on := true
	_, err = svc.Update(scope, used.ID, UpdateMenuItemInput{IsAvailable: &on})
	require.NoError(t, err)
	_, err = NewOrderService(db).PlaceOrder(alice.ID, []LineRequest{{used.ID, 1}}, "")
	require.NoError(t, err)

	err = svc.Delete(scope, used.ID)
	requireKind(t, err, apperr.KindConflict)

	require.NoError(t, svc.Delete(scope, spare.ID))
	requireKind(t, svc.Delete(scope, spare.ID), apperr.KindNotFound)
	assert.Equal(t, int64(1), count(t, db, &models.MenuItem{}))

	_, err = svc.Create(context.Background(), scope, CreateMenuItemInput{Name: "Pic", Price: price, Image: "data:image/png;base64,iVBORw0KGgo="})
	requireKind(t, err, apperr.KindBadRequest)
}
